package messages

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/forevo/internal/common"
	"github.com/dmitrijs2005/forevo/internal/server/models"
)

// Service implements sending and participant queries on top of a message
// Repository. From and to are deliberately not checked against the user
// store; a message may reference an id that was never registered.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Send stores a new message with a generated id and timestamp.
func (s *Service) Send(ctx context.Context, from, to, text string) (*models.Message, error) {
	message := &models.Message{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	return s.repo.Create(ctx, message)
}

// ListForUser returns every message the given user sent or received, in
// insertion order. An empty userID is a caller error.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Message, error) {
	if userID == "" {
		return nil, common.ErrMissingParameter
	}

	return s.repo.ListForUser(ctx, userID)
}
