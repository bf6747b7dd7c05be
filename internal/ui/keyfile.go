package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultKeyPath returns where the API key persists between sessions.
func DefaultKeyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".taskboard", "key"), nil
}

// LoadKey reads a stored API key. A missing file is not an error; it just
// means the auth prompt is shown.
func LoadKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveKey persists an accepted API key for the next session.
func SaveKey(path, apiKey string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(apiKey+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// ClearKey removes a stored key after the server rejects it.
func ClearKey(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key file: %w", err)
	}
	return nil
}
