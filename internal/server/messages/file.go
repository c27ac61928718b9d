package messages

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

// FileRepository stores the message log as a single JSON array file. Like
// the user store, every append rewrites the whole file under a mutex.
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

func (r *FileRepository) load() ([]models.Message, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	var msgs []models.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageRead, err)
	}

	return msgs, nil
}

func (r *FileRepository) persist(msgs []models.Message) error {
	if msgs == nil {
		msgs = []models.Message{}
	}

	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	if err := filex.WriteFileAtomic(r.path, data, 0o660); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageWrite, err)
	}

	return nil
}

func (r *FileRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs, err := r.load()
	if err != nil {
		return nil, err
	}

	msgs = append(msgs, *message)

	if err := r.persist(msgs); err != nil {
		return nil, err
	}

	return message, nil
}

func (r *FileRepository) ListAll(ctx context.Context) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

func (r *FileRepository) ListForUser(ctx context.Context, userID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs, err := r.load()
	if err != nil {
		return nil, err
	}

	matched := []models.Message{}
	for _, m := range msgs {
		if m.From == userID || m.To == userID {
			matched = append(matched, m)
		}
	}

	return matched, nil
}
