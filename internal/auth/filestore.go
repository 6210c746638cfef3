package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ldurand/paydash/backend/internal/domain"
)

// FileStore persists session state as a small JSON document. The keys mirror
// the browser storage names the dashboard front-end uses.
type FileStore struct {
	path string
}

type sessionState struct {
	CurrentUser *domain.User `json:"currentUser,omitempty"`
	Token       string       `json:"token,omitempty"`
}

// NewFileStore creates a store backed by the file at path. The file is
// created lazily on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted identity and token. A missing file is an empty
// session, not an error.
func (f *FileStore) Load() (*domain.User, string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("read session state: %w", err)
	}

	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, "", fmt.Errorf("parse session state: %w", err)
	}
	return state.CurrentUser, state.Token, nil
}

// Save writes the identity and token, creating parent directories as needed.
func (f *FileStore) Save(user domain.User, token string) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session state dir: %w", err)
		}
	}

	data, err := json.Marshal(sessionState{CurrentUser: &user, Token: token})
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}

// Clear removes the persisted state. Clearing an absent file is a no-op.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session state: %w", err)
	}
	return nil
}
