// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipedb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no recipe has been stored yet.
var ErrNotFound = errors.New("recipedb: recipe not found")

// Store reads and writes a single recipe as a JSON file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Path returns the location of the recipe file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (*Recipe, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recipedb: reading recipe file: %w", err)
	}
	var recipe Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("recipedb: decoding recipe file %s: %w", s.path, err)
	}
	return &recipe, nil
}

func (s *Store) Save(recipe *Recipe) error {
	data, err := recipe.JSON()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("recipedb: creating recipe directory: %w", err)
		}
	}
	// Write to a sibling file first so a failed write never leaves a
	// truncated recipe behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(data+"\n"), 0o644); err != nil {
		return fmt.Errorf("recipedb: writing recipe file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("recipedb: replacing recipe file: %w", err)
	}
	return nil
}
