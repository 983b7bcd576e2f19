package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metabox/pkg/model"
	"github.com/goliatone/go-metabox/pkg/panel"
)

// Panel is a loaded, validated panel definition.
type Panel struct {
	Config panel.Config
	Fields *model.Registry
	Source string
}

// Store indexes loaded panels by ID.
type Store struct {
	panels map[string]Panel
}

// Parse decodes a single document according to its format.
func Parse(doc Document) (Definition, error) {
	source := doc.Source().Location

	var (
		def Definition
		err error
	)
	switch doc.Format() {
	case FormatTOML:
		err = toml.Unmarshal(doc.raw, &def)
	case FormatJSON:
		err = json.Unmarshal(doc.raw, &def)
	case FormatYAML:
		err = yaml.Unmarshal(doc.raw, &def)
	default:
		return Definition{}, fmt.Errorf("schema: %s has no content", source)
	}
	if err != nil {
		return Definition{}, fmt.Errorf("schema: parse %s: %w", source, err)
	}
	return def, nil
}

// LoadFile parses one definition file from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	doc, err := NewDocument(SourceFromFile(path), data)
	if err != nil {
		return nil, err
	}
	store := newStore()
	if err := store.add(doc); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON/YAML/TOML file. When fsys is nil or holds
// no definition files, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		doc, err := NewDocument(SourceFromFS(path), data)
		if err != nil {
			return err
		}
		return store.add(doc)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func newStore() *Store {
	return &Store{panels: make(map[string]Panel)}
}

func (s *Store) add(doc Document) error {
	def, err := Parse(doc)
	if err != nil {
		return err
	}
	source := doc.Source().Location

	for idx, raw := range def.Panels {
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			return fmt.Errorf("schema: file %s panel %d has an empty id", source, idx)
		}
		if existing, exists := s.panels[id]; exists {
			return fmt.Errorf("schema: duplicate panel %q (files %s and %s)", id, existing.Source, source)
		}
		fields, err := raw.Registry()
		if err != nil {
			return fmt.Errorf("%w (file %s)", err, source)
		}
		cfg := raw.Config
		cfg.ID = id
		s.panels[id] = Panel{Config: cfg, Fields: fields, Source: source}
	}
	return nil
}

// Panel returns the definition for id.
func (s *Store) Panel(id string) (Panel, bool) {
	if s == nil {
		return Panel{}, false
	}
	p, ok := s.panels[id]
	return p, ok
}

// IDs lists panel IDs sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.panels))
	for id := range s.panels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Panels returns every panel sorted by ID.
func (s *Store) Panels() []Panel {
	ids := s.IDs()
	out := make([]Panel, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.panels[id])
	}
	return out
}

// Empty reports whether the store holds any panels.
func (s *Store) Empty() bool {
	return s == nil || len(s.panels) == 0
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
