package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/storage"
)

func newService(t *testing.T) *Service {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	svc, err := New(context.Background(), storage.NewMemoryStore(log), log)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSaveAssignsIDAndPersistsRawMarkup(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	r := &domain.Recipe{
		Title:        "Bread",
		Category:     "Baking",
		Instructions: []string{"Knead the {{Flour}}."},
	}
	if err := svc.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}
	if r.ID == "" {
		t.Error("save did not assign an ID")
	}

	got, err := svc.Get(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Instructions[0] != "Knead the {{Flour}}." {
		t.Errorf("instructions were transformed on save: %q", got.Instructions[0])
	}

	// The unknown category was registered as a side effect.
	found := false
	for _, c := range svc.Categories() {
		if c == "Baking" {
			found = true
		}
	}
	if !found {
		t.Errorf("category %q was not registered on save, have %v", "Baking", svc.Categories())
	}
}

func TestSaveUpdatesExisting(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	before := svc.Len()
	r, err := svc.At(0)
	if err != nil {
		t.Fatal(err)
	}
	r.Title = "Renamed"
	if err := svc.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}
	if svc.Len() != before {
		t.Errorf("update grew the list: %d -> %d", before, svc.Len())
	}
	got, _ := svc.Get(r.ID)
	if got.Title != "Renamed" {
		t.Errorf("update lost: %q", got.Title)
	}
}

func TestDeleteRecipe(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	r, _ := svc.At(0)
	if err := svc.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(r.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestAddCategoryValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		wantErr error
	}{
		{"  ", domain.ErrCategoryEmpty},
		{"soups", domain.ErrCategoryExists}, // case-insensitive duplicate
		{"Breakfast", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddCategory(ctx, tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddCategory(%q) = %v, want %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestDeleteCategoryMigratesRecipes(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// Two recipes referencing the doomed category.
	for _, title := range []string{"Borscht", "Minestrone"} {
		r := svc.NewRecipe()
		r.Title = title
		r.Category = "Soups"
		if err := svc.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", title, err)
		}
	}

	if err := svc.DeleteCategory(ctx, "Soups"); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	for _, c := range svc.Categories() {
		if c == "Soups" {
			t.Error("deleted category still present")
		}
	}
	migrated := 0
	for _, r := range svc.Recipes() {
		if r.Category == "Soups" {
			t.Errorf("recipe %s still references the deleted category", r.Title)
		}
		if (r.Title == "Borscht" || r.Title == "Minestrone") && r.Category == domain.SentinelCategory {
			migrated++
		}
	}
	if migrated != 2 {
		t.Errorf("expected 2 recipes migrated to the sentinel, got %d", migrated)
	}
}

func TestSentinelCategoryCannotBeDeleted(t *testing.T) {
	svc := newService(t)

	err := svc.DeleteCategory(context.Background(), domain.SentinelCategory)
	if !errors.Is(err, domain.ErrSentinelCategory) {
		t.Errorf("expected ErrSentinelCategory, got %v", err)
	}
}

func TestNewRecipeSeed(t *testing.T) {
	svc := newService(t)

	r := svc.NewRecipe()
	if r.ID == "" {
		t.Error("new recipe has no ID")
	}
	if len(r.Ingredients) != 1 || r.Ingredients[0].Name != "" {
		t.Errorf("expected one empty ingredient row, got %+v", r.Ingredients)
	}
	if len(r.Instructions) != 1 || r.Instructions[0] != "" {
		t.Errorf("expected one empty instruction, got %+v", r.Instructions)
	}
	if r.Category != domain.SentinelCategory {
		t.Errorf("new recipe category = %q", r.Category)
	}
}
