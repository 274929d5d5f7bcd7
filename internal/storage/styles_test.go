package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

func TestStyleStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStyleStore(dir, logger.New(logger.LevelOff, nil))

	styles := domain.StyleSettings{
		FontFamily:   "Lora",
		PrimaryColor: "#123456",
	}
	if err := store.Save(styles); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := store.Load()
	if got.FontFamily != "Lora" || got.PrimaryColor != "#123456" {
		t.Errorf("round trip lost values: %+v", got)
	}
	// Unset fields come back filled from the defaults.
	if got.TextColor != domain.DefaultStyles().TextColor {
		t.Errorf("TextColor = %q, want default", got.TextColor)
	}
}

func TestStyleStoreMissingFileUsesDefaults(t *testing.T) {
	store := NewStyleStore(t.TempDir(), logger.New(logger.LevelOff, nil))
	if got := store.Load(); got != domain.DefaultStyles() {
		t.Errorf("missing file should yield defaults, got %+v", got)
	}
}

func TestStyleStoreCorruptFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stylesFile), []byte("fontFamily: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStyleStore(dir, logger.New(logger.LevelOff, nil))
	if got := store.Load(); got != domain.DefaultStyles() {
		t.Errorf("corrupt file should yield defaults, got %+v", got)
	}
}
