package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// File names inside the data directory. The two collections are
// persisted independently, so corruption of one never takes out the
// other.
const (
	recipesFile    = "recipes.json"
	categoriesFile = "categories.json"
)

// Compile-time interface check.
var _ domain.CollectionStore = (*FileStore)(nil)

// FileStore persists the collection as JSON documents in a data
// directory. Every mutation is written through immediately. Load is
// best-effort: a missing or unparseable file falls back to the bundled
// seed data with a log line, never a user-facing error.
type FileStore struct {
	mu  sync.Mutex
	dir string
	log *logger.Logger
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// Load reads both collections, substituting seed data for anything that
// is missing or corrupt.
func (s *FileStore) Load(ctx context.Context) ([]domain.Recipe, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recipes []domain.Recipe
	if err := s.read(recipesFile, &recipes); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("storage: recipes unreadable, using seed data: %v", err)
		}
		recipes = SeedRecipes()
	}

	var categories []string
	if err := s.read(categoriesFile, &categories); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("storage: categories unreadable, using seed data: %v", err)
		}
		categories = SeedCategories()
	}

	s.log.Debug("loaded %d recipes, %d categories from %s", len(recipes), len(categories), s.dir)
	return recipes, categories, nil
}

// SaveRecipes writes the recipe list.
func (s *FileStore) SaveRecipes(ctx context.Context, recipes []domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(recipesFile, recipes)
}

// SaveCategories writes the category list.
func (s *FileStore) SaveCategories(ctx context.Context, categories []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(categoriesFile, categories)
}

func (s *FileStore) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// write replaces the file atomically via a temp file in the same dir.
func (s *FileStore) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage: replace %s: %w", name, err)
	}

	s.log.Debug("wrote %s (%d bytes)", name, len(data))
	return nil
}
