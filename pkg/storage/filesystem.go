package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Spool keeps transient file objects on disk under a base directory until
// they are released.
type Spool struct {
	baseDir string
}

// NewSpool ensures the base directory exists and returns a handle.
func NewSpool(baseDir string) (*Spool, error) {
	if baseDir == "" {
		baseDir = "./spool"
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create spool directory: %w", err)
	}
	return &Spool{baseDir: baseDir}, nil
}

// Save writes data under name and returns the stored size.
func (s *Spool) Save(name string, data []byte) (int64, error) {
	path, err := s.resolve(name)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return 0, fmt.Errorf("write spool object: %w", err)
	}
	return int64(len(data)), nil
}

// Open returns a read-only handle for the stored object.
func (s *Spool) Open(name string) (*os.File, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spool object: %w", err)
	}
	return file, nil
}

// Delete removes a stored object if present.
func (s *Spool) Delete(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete spool object: %w", err)
	}
	return nil
}

// CleanupOlderThan removes objects older than ttl and returns their names.
func (s *Spool) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("cleanup spool: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return deleted, fmt.Errorf("cleanup spool: %w", err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.baseDir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return deleted, fmt.Errorf("cleanup spool: %w", err)
		}
		deleted = append(deleted, entry.Name())
	}
	return deleted, nil
}

// objects are flat; names never leave the base directory.
func (s *Spool) resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid spool object name %q", name)
	}
	return filepath.Join(s.baseDir, name), nil
}
