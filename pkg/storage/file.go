package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/inspectd/faultserve/internal/utils"
)

// FileStore persists each key as a JSON file inside a directory. It is the
// default backend for single-workstation installs.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get reads the blob for key; "" when the file does not exist.
func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// Set writes the blob for key atomically (temp file + rename), so a crash
// mid-write never leaves a truncated blob behind.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		log.Warnf("Failed to finalize write for %s: %v", target, err)
		os.Remove(tmp)
		return err
	}
	return nil
}

// path maps a key to a filename, folding separators so keys like
// "learned/issues" stay inside the store directory.
func (f *FileStore) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, key)
	return filepath.Join(f.dir, safe+".json")
}
