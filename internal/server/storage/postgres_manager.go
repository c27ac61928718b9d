package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/forevo/internal/server/messages"
	"github.com/dmitrijs2005/forevo/internal/server/storage/migrations"
	"github.com/dmitrijs2005/forevo/internal/server/users"
)

type PostgresManager struct {
	db       *sql.DB
	users    users.Repository
	messages messages.Repository
}

func (m *PostgresManager) Users() users.Repository {
	return m.users
}

func (m *PostgresManager) Messages() messages.Repository {
	return m.messages
}

func (m *PostgresManager) Close() error {
	return m.db.Close()
}

func (m *PostgresManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresManager(dsn string) (*PostgresManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresManager{
		db:       db,
		users:    users.NewPostgresRepository(db),
		messages: messages.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
