package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStore writes submission bytes under a root directory, mirroring
// the courses/<course>/<assignment>/... layout the ledger computes.
type LocalFileStore struct {
	root string
}

func NewLocalFileStore(root string) (*LocalFileStore, error) {
	if root == "" {
		return nil, fmt.Errorf("file store root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileStore{root: abs}, nil
}

func (s *LocalFileStore) Put(ctx context.Context, path string, contents io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, contents); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// resolve rejects paths that would land outside the root.
func (s *LocalFileStore) resolve(path string) (string, error) {
	target := filepath.Join(s.root, filepath.FromSlash(path))
	if target != s.root && !strings.HasPrefix(target, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes store root", path)
	}
	return target, nil
}
