package messages

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/forevo/internal/common"
	"github.com/dmitrijs2005/forevo/internal/server/models"
)

// PostgresRepository is the Postgres-backed message log.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {

	query :=
		`INSERT INTO messages (id, sender, recipient, text, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.From, message.To, message.Text, message.Timestamp)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	return message, nil
}

func (r *PostgresRepository) queryMessages(ctx context.Context, query string, args ...any) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}
	defer rows.Close()

	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.From, &m.To, &m.Text, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	return msgs, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Message, error) {
	query :=
		`SELECT id, sender, recipient, text, created_at
		 FROM messages
		 ORDER BY seq
		 `
	return r.queryMessages(ctx, query)
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]models.Message, error) {
	query :=
		`SELECT id, sender, recipient, text, created_at
		 FROM messages
		 WHERE sender = $1 OR recipient = $1
		 ORDER BY seq
		 `
	return r.queryMessages(ctx, query, userID)
}
