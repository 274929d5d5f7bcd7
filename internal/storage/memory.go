// Package storage provides collection store implementations.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Compile-time interface check.
var _ domain.CollectionStore = (*MemoryStore)(nil)

// MemoryStore keeps the collection in memory. Safe for concurrent access.
// Used by tests and as a fallback when no data directory is writable.
type MemoryStore struct {
	mu         sync.RWMutex
	recipes    []domain.Recipe
	categories []string
	log        *logger.Logger
}

// NewMemoryStore creates a store preloaded with the built-in seed data.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		recipes:    SeedRecipes(),
		categories: SeedCategories(),
		log:        log,
	}
}

// Load returns copies of the current recipe and category lists.
func (s *MemoryStore) Load(ctx context.Context) ([]domain.Recipe, []string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("memory load: %d recipes, %d categories", len(s.recipes), len(s.categories))
	return append([]domain.Recipe(nil), s.recipes...), append([]string(nil), s.categories...), nil
}

// SaveRecipes replaces the recipe list.
func (s *MemoryStore) SaveRecipes(ctx context.Context, recipes []domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes = append([]domain.Recipe(nil), recipes...)
	s.log.Debug("memory save: %d recipes", len(recipes))
	return nil
}

// SaveCategories replaces the category list.
func (s *MemoryStore) SaveCategories(ctx context.Context, categories []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = append([]string(nil), categories...)
	s.log.Debug("memory save: %d categories", len(categories))
	return nil
}
