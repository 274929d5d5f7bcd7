package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// stylesFile holds the export page styling, kept as YAML so it stays
// hand-editable next to the JSON collections.
const stylesFile = "styles.yaml"

// StyleStore reads and writes the export style settings.
type StyleStore struct {
	dir string
	log *logger.Logger
}

// NewStyleStore creates a style store rooted at dir.
func NewStyleStore(dir string, log *logger.Logger) *StyleStore {
	return &StyleStore{dir: dir, log: log}
}

// Load returns the persisted styles, or the defaults when the file is
// missing or unparseable. Like the collection store, style loading
// never produces a user-facing error.
func (s *StyleStore) Load() domain.StyleSettings {
	data, err := os.ReadFile(filepath.Join(s.dir, stylesFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("storage: styles unreadable, using defaults: %v", err)
		}
		return domain.DefaultStyles()
	}

	var styles domain.StyleSettings
	if err := yaml.Unmarshal(data, &styles); err != nil {
		s.log.Warn("storage: styles unparseable, using defaults: %v", err)
		return domain.DefaultStyles()
	}
	return styles.Merged()
}

// Save writes the styles atomically via a temp file.
func (s *StyleStore) Save(styles domain.StyleSettings) error {
	data, err := yaml.Marshal(styles)
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", stylesFile, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("storage: create data dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, stylesFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", stylesFile, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage: replace %s: %w", stylesFile, err)
	}

	s.log.Debug("wrote %s (%d bytes)", stylesFile, len(data))
	return nil
}
