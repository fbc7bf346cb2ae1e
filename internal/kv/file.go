package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// DefaultDirName is the directory created under the user config dir.
	DefaultDirName = "spin"

	fileExt = ".json"
)

// FileStore keeps one JSON file per key inside a directory.
type FileStore struct {
	dir    string
	logger *log.Logger
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithLogger sets the logger used for debug tracing of reads and writes.
func WithLogger(l *log.Logger) FileOption {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore creates a store rooted at dir.
// If dir is empty, uses the default location (~/.config/spin).
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		dir = filepath.Join(configDir, DefaultDirName)
	}

	s := &FileStore{
		dir:    dir,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get reads and decodes the file for key.
func (s *FileStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.path(key)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("key absent", "key", key)
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w: %w", key, ErrCorrupt, err)
	}

	s.logger.Debug("read key", "key", key, "bytes", len(data))
	return true, nil
}

// Set encodes value and writes it to the file for key.
func (s *FileStore) Set(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := writeFileAtomic(s.dir, path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.logger.Debug("wrote key", "key", key, "bytes", len(data))
	return nil
}

// Delete removes the file for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.logger.Debug("deleted key", "key", key)
	return nil
}

// Dir returns the directory the store writes to.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file that holds key.
func (s *FileStore) Path(key string) (string, error) {
	return s.path(key)
}

func (s *FileStore) path(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	// PathEscape keeps separators out of the file name.
	return filepath.Join(s.dir, url.PathEscape(key)+fileExt), nil
}

// writeFileAtomic replaces path through a temp file in dir, so an interrupted
// write leaves the previous value intact. The file is owner-only.
func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*"+fileExt)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
