package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// tokenCache mirrors the current session to a file so a restart does
// not force a fresh sign-in. This file is the app's only persisted
// state; everything else is refetched.
type tokenCache struct {
	path string
}

func newTokenCache(path string) *tokenCache {
	return &tokenCache{path: path}
}

func (t *tokenCache) load() (*session, error) {
	if t.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token cache: %w", err)
	}

	var sess session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parsing token cache: %w", err)
	}
	return &sess, nil
}

func (t *tokenCache) save(sess *session) error {
	if t.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	// Tokens grant account access; keep the file owner-only.
	if err := os.WriteFile(t.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token cache: %w", err)
	}
	return nil
}

func (t *tokenCache) clear() error {
	if t.path == "" {
		return nil
	}
	if err := os.Remove(t.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token cache: %w", err)
	}
	return nil
}
