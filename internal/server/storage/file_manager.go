package storage

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/forevo/internal/filex"
	"github.com/dmitrijs2005/forevo/internal/server/messages"
	"github.com/dmitrijs2005/forevo/internal/server/users"
)

const (
	usersFileName    = "users.json"
	messagesFileName = "messages.json"
)

type FileManager struct {
	users    *users.FileRepository
	messages *messages.FileRepository
}

func (m *FileManager) Users() users.Repository {
	return m.users
}

func (m *FileManager) Messages() messages.Repository {
	return m.messages
}

func (m *FileManager) Close() error {
	return nil
}

// NewFileManager ensures the data directory and both collection files exist
// and wires up the file repositories.
func NewFileManager(dataDir string) (*FileManager, error) {

	if err := filex.EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("data dir init error: %w", err)
	}

	userRepo, err := users.NewFileRepository(filepath.Join(dataDir, usersFileName))
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	messageRepo, err := messages.NewFileRepository(filepath.Join(dataDir, messagesFileName))
	if err != nil {
		return nil, fmt.Errorf("message repo creation error: %w", err)
	}

	return &FileManager{users: userRepo, messages: messageRepo}, nil
}
