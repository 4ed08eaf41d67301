// Package state persists the small bits of winring state that survive
// restarts; today that is the floating button's last on-screen position.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const positionFileName = "position.json"

// Position is a button location in root coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Store reads and writes persisted state under a directory. The zero
// directory means the standard ~/.config/winring location.
type Store struct {
	Dir string
}

func (s *Store) dir() (string, error) {
	if s.Dir != "" {
		return s.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winring"), nil
}

// LoadPosition returns the saved button position. The second return is false
// when nothing has been saved yet.
func (s *Store) LoadPosition() (Position, bool, error) {
	dir, err := s.dir()
	if err != nil {
		return Position{}, false, err
	}

	data, err := os.ReadFile(filepath.Join(dir, positionFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Position{}, false, nil
		}
		return Position{}, false, fmt.Errorf("failed to read position: %w", err)
	}

	var pos Position
	if err := json.Unmarshal(data, &pos); err != nil {
		return Position{}, false, fmt.Errorf("failed to decode position: %w", err)
	}
	return pos, true, nil
}

// SavePosition writes the button position, creating the state directory on
// first use.
func (s *Store) SavePosition(pos Position) error {
	dir, err := s.dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode position: %w", err)
	}
	path := filepath.Join(dir, positionFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write position: %w", err)
	}
	return nil
}
