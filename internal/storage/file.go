// Package storage provides the durable session stores backing the credential
// store: a file-based store mirroring the two-entry contract the browser
// applications used (token + serialized profile under distinct keys), and a
// Redis-backed variant for shared or ephemeral hosts.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage keeps the session in two files under dir:
// <prefix>_token and <prefix>_user. Both are written atomically and removed
// together on Clear.
type FileStorage struct {
	dir    string
	prefix string
}

// NewFileStorage creates dir if needed. prefix separates applications
// sharing a home directory ("ecodeli" for the portal, "admin" for the
// console), exactly as the browser apps keyed their local storage.
func NewFileStorage(dir, prefix string) (*FileStorage, error) {
	if prefix == "" {
		prefix = "ecodeli"
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStorage{dir: dir, prefix: prefix}, nil
}

func (s *FileStorage) tokenPath() string { return filepath.Join(s.dir, s.prefix+"_token") }
func (s *FileStorage) userPath() string  { return filepath.Join(s.dir, s.prefix+"_user") }

// Save persists both entries. The token is written last so a crash between
// the two writes leaves no token without its profile.
func (s *FileStorage) Save(token string, user []byte) error {
	if err := writeAtomic(s.userPath(), user); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	if err := writeAtomic(s.tokenPath(), []byte(token)); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Load returns ok=false when either entry is missing.
func (s *FileStorage) Load() (string, []byte, bool, error) {
	token, err := os.ReadFile(s.tokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, false, nil
		}
		return "", nil, false, fmt.Errorf("read token: %w", err)
	}
	user, err := os.ReadFile(s.userPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, false, nil
		}
		return "", nil, false, fmt.Errorf("read user: %w", err)
	}
	if len(token) == 0 || len(user) == 0 {
		return "", nil, false, nil
	}
	return string(token), user, true, nil
}

// Clear removes both entries; missing files are not an error.
func (s *FileStorage) Clear() error {
	var firstErr error
	for _, p := range []string{s.tokenPath(), s.userPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) && firstErr == nil {
			firstErr = fmt.Errorf("clear session: %w", err)
		}
	}
	return firstErr
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
