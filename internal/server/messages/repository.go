package messages

import (
	"context"

	"github.com/dmitrijs2005/forevo/internal/server/models"
)

// Repository is the durable append-only message log. ListForUser returns the
// messages where the given id is either sender or recipient, in insertion
// order; no match yields an empty slice, not an error.
type Repository interface {
	Create(ctx context.Context, message *models.Message) (*models.Message, error)
	ListAll(ctx context.Context) ([]models.Message, error)
	ListForUser(ctx context.Context, userID string) ([]models.Message, error)
}
