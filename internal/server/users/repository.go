package users

import (
	"context"

	"github.com/dmitrijs2005/forevo/internal/server/models"
)

// Repository is the durable user collection. Create enforces the uniqueness
// of email and username and returns common.ErrDuplicateEmail or
// common.ErrDuplicateUsername on violation.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
