package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/forevo/internal/common"
	"github.com/dmitrijs2005/forevo/internal/dbx"
	"github.com/dmitrijs2005/forevo/internal/server/models"
)

// PostgresRepository is the Postgres-backed user collection. Uniqueness is
// checked inside the insert transaction, with the table's unique constraints
// as a backstop.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const pgUniqueViolation = "23505"

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return common.ErrDuplicateEmail
		}
		return common.ErrDuplicateUsername
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		var emailTaken, usernameTaken bool
		query :=
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1),
			        EXISTS(SELECT 1 FROM users WHERE username = $2)
			 `
		if err := tx.QueryRowContext(ctx, query, user.Email, user.UserName).
			Scan(&emailTaken, &usernameTaken); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if emailTaken {
			return common.ErrDuplicateEmail
		}
		if usernameTaken {
			return common.ErrDuplicateUsername
		}

		insert :=
			`INSERT INTO users (id, email, password, display_name, username, avatar_color, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 `
		if _, err := tx.ExecContext(ctx, insert,
			user.ID, user.Email, user.Password, user.DisplayName,
			user.UserName, user.AvatarColor, user.CreatedAt); err != nil {
			if dup := mapUniqueViolation(err); dup != nil {
				return dup
			}
			return fmt.Errorf("db error: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.User, error) {
	query :=
		`SELECT id, email, password, display_name, username, avatar_color, created_at
		 FROM users
		 ORDER BY seq
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName,
			&u.UserName, &u.AvatarColor, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	return users, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password, display_name, username, avatar_color, created_at
		 FROM users
		 WHERE email = $1
		 `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email,
		&user.Password, &user.DisplayName, &user.UserName, &user.AvatarColor, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
