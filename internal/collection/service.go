// Package collection manages the recipe list and the category set on top
// of a CollectionStore. All mutations go through the service so that the
// two persisted lists stay consistent: saving a recipe registers its
// category, deleting a category migrates every recipe that used it.
package collection

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Service owns the in-memory working copy of the collection and writes
// through the store on every mutation.
type Service struct {
	store      domain.CollectionStore
	log        *logger.Logger
	recipes    []domain.Recipe
	categories []string
}

// New loads the collection from the store. The sentinel category is
// guaranteed to be present afterwards, whatever the store returned.
func New(ctx context.Context, store domain.CollectionStore, log *logger.Logger) (*Service, error) {
	recipes, categories, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("collection: load: %w", err)
	}

	s := &Service{store: store, log: log, recipes: recipes, categories: categories}
	s.ensureSentinel()
	return s, nil
}

// Recipes returns the recipes in stored order.
func (s *Service) Recipes() []domain.Recipe {
	return append([]domain.Recipe(nil), s.recipes...)
}

// Categories returns the category set, sorted, sentinel first.
func (s *Service) Categories() []string {
	return append([]string(nil), s.categories...)
}

// Get returns a recipe by ID.
func (s *Service) Get(id string) (*domain.Recipe, error) {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return s.recipes[i].Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

// At returns the recipe at a 0-based list position.
func (s *Service) At(idx int) (*domain.Recipe, error) {
	if idx < 0 || idx >= len(s.recipes) {
		return nil, domain.ErrNotFound
	}
	return s.recipes[idx].Clone(), nil
}

// Len returns the number of recipes.
func (s *Service) Len() int { return len(s.recipes) }

// NewRecipe returns the minimal editing seed: a generated ID, one empty
// ingredient row, one empty instruction, and the sentinel category.
func (s *Service) NewRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:           uuid.NewString(),
		Category:     domain.SentinelCategory,
		ImageRef:     fmt.Sprintf("https://picsum.photos/seed/%s/600/400", uuid.NewString()[:8]),
		Ingredients:  []domain.Ingredient{{ID: uuid.NewString()}},
		Instructions: []string{""},
	}
}

// Save upserts a recipe and persists. An unknown category on the recipe
// is registered as a side effect. The instructions are stored exactly as
// given — raw markup, never display text.
func (s *Service) Save(ctx context.Context, recipe *domain.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.Category == "" {
		recipe.Category = domain.SentinelCategory
	}

	if err := s.registerCategory(ctx, recipe.Category); err != nil {
		return err
	}

	replaced := false
	for i := range s.recipes {
		if s.recipes[i].ID == recipe.ID {
			s.recipes[i] = *recipe.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		s.recipes = append(s.recipes, *recipe.Clone())
	}

	s.log.Info("recipe saved: %s (%s)", recipe.Title, recipe.ID)
	return s.store.SaveRecipes(ctx, s.recipes)
}

// Delete removes a recipe by ID and persists immediately.
func (s *Service) Delete(ctx context.Context, id string) error {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			s.log.Info("recipe deleted: %s", id)
			return s.store.SaveRecipes(ctx, s.recipes)
		}
	}
	return domain.ErrNotFound
}

// AddCategory validates and adds a category. Empty names and
// case-insensitive duplicates are rejected synchronously.
func (s *Service) AddCategory(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.ErrCategoryEmpty
	}
	for _, c := range s.categories {
		if strings.EqualFold(c, trimmed) {
			return domain.ErrCategoryExists
		}
	}

	s.categories = append(s.categories, trimmed)
	s.sortCategories()
	s.log.Info("category added: %s", trimmed)
	return s.store.SaveCategories(ctx, s.categories)
}

// DeleteCategory removes a category and migrates every recipe that
// referenced it to the sentinel default. The in-memory migration is a
// single list replacement, so callers never observe a partial state.
func (s *Service) DeleteCategory(ctx context.Context, name string) error {
	if name == domain.SentinelCategory {
		return domain.ErrSentinelCategory
	}

	found := false
	kept := s.categories[:0:0]
	for _, c := range s.categories {
		if c == name {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return domain.ErrNotFound
	}
	s.categories = kept

	migrated := 0
	for i := range s.recipes {
		if s.recipes[i].Category == name {
			s.recipes[i].Category = domain.SentinelCategory
			migrated++
		}
	}
	s.log.Info("category deleted: %s (%d recipes migrated)", name, migrated)

	if err := s.store.SaveCategories(ctx, s.categories); err != nil {
		return err
	}
	return s.store.SaveRecipes(ctx, s.recipes)
}

// registerCategory adds the category if it is new. Unlike AddCategory it
// tolerates existing names, since saving a recipe into an existing
// category is the common path.
func (s *Service) registerCategory(ctx context.Context, name string) error {
	for _, c := range s.categories {
		if c == name {
			return nil
		}
	}
	s.categories = append(s.categories, name)
	s.sortCategories()
	return s.store.SaveCategories(ctx, s.categories)
}

// ensureSentinel guarantees the default category exists.
func (s *Service) ensureSentinel() {
	for _, c := range s.categories {
		if c == domain.SentinelCategory {
			return
		}
	}
	s.categories = append(s.categories, domain.SentinelCategory)
	s.sortCategories()
}

// sortCategories keeps the set alphabetical with the sentinel pinned first.
func (s *Service) sortCategories() {
	sort.Slice(s.categories, func(i, j int) bool {
		a, b := s.categories[i], s.categories[j]
		if a == domain.SentinelCategory {
			return true
		}
		if b == domain.SentinelCategory {
			return false
		}
		return a < b
	})
}
