package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// File stores each key as one file under Dir. Writes replace the file atomically.
type File struct {
	Dir string
}

// NewFile creates dir if needed and returns a file-backed provider.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &File{Dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.Dir, url.PathEscape(key)+".json")
}

// Read returns the file contents for key.
func (f *File) Read(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), true, nil
}

// Write writes value to a temp file and renames it over the key's file.
func (f *File) Write(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	tmp, err := os.CreateTemp(f.Dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(name, f.path(key)); err != nil {
		os.Remove(name)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}
