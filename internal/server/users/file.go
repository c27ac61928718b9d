package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrijs2005/forevo/internal/common"
	"github.com/dmitrijs2005/forevo/internal/filex"
	"github.com/dmitrijs2005/forevo/internal/server/models"
)

// FileRepository stores the user collection as a single JSON array file.
// Every mutation rewrites the whole file; the mutex serializes mutations so
// two concurrent creates cannot base their rewrite on the same stale
// snapshot (lost update).
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates the backing file containing an empty array if it
// does not exist yet. An existing file is left untouched.
func NewFileRepository(path string) (*FileRepository, error) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := filex.WriteFileAtomic(path, []byte("[]"), 0o660); err != nil {
			return nil, fmt.Errorf("init %s: %w", path, err)
		}
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) load() ([]models.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	return users, nil
}

func (r *FileRepository) persist(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	if err := filex.WriteFileAtomic(r.path, data, 0o660); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	return nil
}

func (r *FileRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	// email is checked against every record before usernames are, so an
	// email collision always wins regardless of record order
	for _, u := range users {
		if u.Email == user.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	for _, u := range users {
		if u.UserName == user.UserName {
			return nil, common.ErrDuplicateUsername
		}
	}

	users = append(users, *user)

	if err := r.persist(users); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *FileRepository) ListAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}

	return nil, common.ErrNotFound
}
