package apiclient

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoToken is returned by Get when no token is stored.
var ErrNoToken = errors.New("no stored token")

// TokenStore persists exactly one opaque token string between runs. It never
// inspects the token; validity is the server's call.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a single file, the CLI analogue of the
// browser's well-known storage key.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileTokenStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ TokenStore = (*FileTokenStore)(nil)
