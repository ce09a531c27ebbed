// Package reportstore keeps generated commission reports on local disk.
package reportstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidName = errors.New("invalid report file name")

type Store struct{ dir string }

func New(dir string) *Store { return &Store{dir: dir} }

func (s *Store) Dir() string { return s.dir }

// Write creates the directory on first use and returns the absolute path and
// size of the written file.
func (s *Store) Write(name string, content []byte) (string, int64, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create reports dir: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(s.dir, name))
	if err != nil {
		return "", 0, err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", 0, fmt.Errorf("write report: %w", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		return "", 0, err
	}
	return path, st.Size(), nil
}

// Read returns a previously written report.
func (s *Store) Read(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}
