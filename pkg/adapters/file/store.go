package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/flowdesk/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of definitions.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func (f Format) ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// FormatFromPath picks the format from a file extension. Unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Store implements ports.DefinitionStore using the local filesystem.
// It stores one file per definition in a configured directory.
type Store struct {
	BasePath string
	Format   Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat selects JSON (default) or YAML files.
func WithFormat(f Format) Option {
	return func(s *Store) {
		s.Format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".flowdesk/definitions".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".flowdesk", "definitions")
	}
	s := &Store{BasePath: basePath, Format: FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) path(id string) string {
	return filepath.Join(s.BasePath, id+s.Format.ext())
}

func validID(id string) error {
	if id == "" {
		return fmt.Errorf("definition id cannot be empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid definition id %q", id)
	}
	return nil
}

// Save persists the definition atomically.
func (s *Store) Save(ctx context.Context, def domain.WorkflowDefinition) error {
	if err := validID(def.ID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure definition directory: %w", err)
	}
	return writeFile(s.path(def.ID), s.Format, def)
}

// Load retrieves the definition from its file.
func (s *Store) Load(ctx context.Context, id string) (domain.WorkflowDefinition, error) {
	if err := validID(id); err != nil {
		return domain.WorkflowDefinition{}, err
	}
	def, err := ReadDefinition(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.WorkflowDefinition{}, domain.ErrDefinitionNotFound
		}
		return domain.WorkflowDefinition{}, err
	}
	return def, nil
}

// Delete removes the definition file.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete definition file: %w", err)
	}
	return nil
}

// List returns the ids of all definition files in the base path, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	ext := s.Format.ext()
	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	slices.Sort(ids)
	return ids, nil
}

// ReadDefinition decodes a definition file, choosing JSON or YAML by extension.
// The returned error satisfies os.IsNotExist for missing files.
func ReadDefinition(path string) (domain.WorkflowDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.WorkflowDefinition{}, err
		}
		return domain.WorkflowDefinition{}, fmt.Errorf("failed to read definition file: %w", err)
	}
	return Decode(data, FormatFromPath(path))
}

// Decode parses a definition in the given format.
func Decode(data []byte, f Format) (domain.WorkflowDefinition, error) {
	var def domain.WorkflowDefinition
	var err error
	if f == FormatYAML {
		err = yaml.Unmarshal(data, &def)
	} else {
		err = json.Unmarshal(data, &def)
	}
	if err != nil {
		return domain.WorkflowDefinition{}, fmt.Errorf("failed to decode %s definition: %w", f, err)
	}
	return def, nil
}

// Encode renders a definition in the given format.
func Encode(def domain.WorkflowDefinition, f Format) ([]byte, error) {
	if f == FormatYAML {
		return yaml.Marshal(def)
	}
	return json.MarshalIndent(def, "", "  ")
}

// WriteDefinition writes a definition atomically, choosing JSON or YAML by extension.
func WriteDefinition(path string, def domain.WorkflowDefinition) error {
	return writeFile(path, FormatFromPath(path), def)
}

// writeFile writes to a temporary file in the destination directory, syncs
// it and renames it over the destination.
func writeFile(destPath string, f Format, def domain.WorkflowDefinition) error {
	data, err := Encode(def, f)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	// Same directory as the destination so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), "tmp-*"+filepath.Ext(destPath))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing definition file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to definition: %w", err)
	}
	return nil
}
