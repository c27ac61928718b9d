package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/forevo/internal/common"
	"github.com/dmitrijs2005/forevo/internal/server/auth"
	"github.com/dmitrijs2005/forevo/internal/server/config"
	"github.com/dmitrijs2005/forevo/internal/server/models"
)

// Service implements registration, public listing and login on top of a
// user Repository. Everything it returns outward is the public projection;
// the stored password hash never leaves this package.
type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// dummyHash is compared against when login hits an unknown email, so the
// response time does not reveal whether the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("forevo-dummy"), bcrypt.DefaultCost)

// Register creates a new user. The id is a random UUID, the password is
// stored as a bcrypt hash, and avatarColor falls back to the default when
// empty. Duplicate email/username errors come straight from the repository.
func (s *Service) Register(ctx context.Context, email, password, displayName, username, avatarColor string) (*models.PublicUser, error) {

	if email == "" || password == "" || displayName == "" || username == "" {
		return nil, common.ErrMissingParameter
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if avatarColor == "" {
		avatarColor = models.DefaultAvatarColor
	}

	user := &models.User{
		ID:          uuid.NewString(),
		Email:       email,
		Password:    string(hash),
		DisplayName: displayName,
		UserName:    username,
		AvatarColor: avatarColor,
		CreatedAt:   time.Now().UTC(),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user.Public(), nil
}

// List returns every stored user as a public projection, in insertion order.
func (s *Service) List(ctx context.Context) ([]*models.PublicUser, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]*models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	return public, nil
}

// Login verifies the credentials and returns a signed access token together
// with the public projection of the account. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.PublicUser, error) {

	if email == "" || password == "" {
		return "", nil, common.ErrMissingParameter
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, common.ErrUnauthorized
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrInternal
	}

	return token, user.Public(), nil
}
