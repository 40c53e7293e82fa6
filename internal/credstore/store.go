// File: internal/credstore/store.go

// Package credstore persists per-platform browser session state on disk.
// Blobs are opaque serialized storage-state snapshots; nothing here parses
// them.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrNotFound is returned by Load when no session has been saved for the
// platform.
var ErrNotFound = errors.New("session blob not found")

// StorageError wraps an I/O failure while reading or writing a session blob.
// Storage failures are fatal to the calling operation; there is no retry.
type StorageError struct {
	Platform string
	Op       string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("credential storage %s failed for %s: %v", e.Op, e.Platform, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store maps a platform identifier to a session blob file under
// {base}/{platform}_uploader/account.json.
type Store struct {
	baseDir string
	log     *zap.Logger
}

// New creates a store rooted at baseDir (the cookies directory).
func New(baseDir string, logger *zap.Logger) *Store {
	return &Store{
		baseDir: baseDir,
		log:     logger.Named("credstore"),
	}
}

// Path returns the account file path for a platform.
func (s *Store) Path(platform string) string {
	return filepath.Join(s.baseDir, platform+"_uploader", "account.json")
}

// Exists reports whether a session blob has been saved for the platform.
func (s *Store) Exists(platform string) bool {
	_, err := os.Stat(s.Path(platform))
	return err == nil
}

// Load reads the session blob for a platform. Returns ErrNotFound when the
// file does not exist and a *StorageError on any other I/O failure.
func (s *Store) Load(platform string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(platform))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, platform)
		}
		return nil, &StorageError{Platform: platform, Op: "load", Err: err}
	}
	return data, nil
}

// Save writes the session blob for a platform, creating parent directories
// as needed. The write goes to a temp file in the same directory and is
// renamed into place so the account file is never partially written.
func (s *Store) Save(platform string, blob []byte) error {
	path := s.Path(platform)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Platform: platform, Op: "save", Err: err}
	}

	tmp, err := os.CreateTemp(dir, "account-*.json.tmp")
	if err != nil {
		return &StorageError{Platform: platform, Op: "save", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Platform: platform, Op: "save", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Platform: platform, Op: "save", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Platform: platform, Op: "save", Err: err}
	}

	s.log.Debug("Session blob saved.",
		zap.String("platform", platform),
		zap.String("path", path),
		zap.Int("bytes", len(blob)),
	)
	return nil
}
