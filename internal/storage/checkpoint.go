package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// CheckpointDir keeps one TOML file per key in Dir, e.g. active_session.toml. A missing file
// means the key is absent.
type CheckpointDir struct {
	Dir string
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func (c CheckpointDir) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("Invalid checkpoint key %q", key)
	}
	return filepath.Join(c.Dir, key+".toml"), nil
}

func (c CheckpointDir) Load(key string, v any) (bool, error) {
	path, err := c.path(key)
	if err != nil {
		return false, err
	}
	if _, err := toml.DecodeFile(path, v); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return true, fmt.Errorf("Failed to read %s: %w", path, err)
	}
	return true, nil
}

// Save replaces the file atomically through a temporary file and a rename.
func (c CheckpointDir) Save(key string, v any) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(c.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("Failed to encode %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

func (c CheckpointDir) Delete(key string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
