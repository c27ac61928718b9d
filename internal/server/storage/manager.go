// Package storage bundles the per-aggregate repositories behind a single
// manager and selects the backend from configuration: the JSON file store by
// default, PostgreSQL when a DSN is configured.
package storage

import (
	"github.com/dmitrijs2005/forevo/internal/server/config"
	"github.com/dmitrijs2005/forevo/internal/server/messages"
	"github.com/dmitrijs2005/forevo/internal/server/users"
)

type Manager interface {
	Users() users.Repository
	Messages() messages.Repository
	Close() error
}

func NewManager(cfg *config.Config) (Manager, error) {
	if cfg.DatabaseDSN != "" {
		return NewPostgresManager(cfg.DatabaseDSN)
	}
	return NewFileManager(cfg.DataDir)
}
