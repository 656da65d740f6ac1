package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olxver2025/Inline/internal/conventions"
	"github.com/olxver2025/Inline/internal/model"
	"github.com/olxver2025/Inline/internal/utils/file"
)

// sessionMetadata represents the YAML structure of the per-session record.
type sessionMetadata struct {
	CreatedAt time.Time `yaml:"created_at"`
	LastUsed  time.Time `yaml:"last_used"`
	Cwd       string    `yaml:"cwd"`
}

func (m sessionMetadata) validate() error {
	if m.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	return nil
}

func (m sessionMetadata) toModel(id, root string) model.Session {
	cwd := m.Cwd
	if cwd == "" {
		cwd = "."
	}

	return model.Session{
		ID:        id,
		Root:      root,
		Cwd:       cwd,
		CreatedAt: m.CreatedAt,
		LastUsed:  m.LastUsed,
	}
}

// loadMetadata reads and validates the metadata record inside a session dir.
// Unreadable or invalid records report model.ErrNotFound, the workspace is
// not usable as a session without one.
func loadMetadata(dir, id string) (*model.Session, error) {
	data, err := os.ReadFile(filepath.Join(dir, conventions.MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("session %s has no readable metadata: %w", id, model.ErrNotFound)
	}

	var meta sessionMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("session %s has invalid metadata: %w", id, model.ErrNotFound)
	}

	if err := meta.validate(); err != nil {
		return nil, fmt.Errorf("session %s has invalid metadata: %w", id, model.ErrNotFound)
	}

	session := meta.toModel(id, dir)

	return &session, nil
}

func (r *Repository) writeMetadata(s model.Session) error {
	meta := sessionMetadata{
		CreatedAt: s.CreatedAt,
		LastUsed:  s.LastUsed,
		Cwd:       s.Cwd,
	}

	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("could not marshal metadata: %w", err)
	}

	path := conventions.MetadataPath(r.baseDir, s.ID)
	if err := file.WriteAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write metadata: %w", err)
	}

	return nil
}
