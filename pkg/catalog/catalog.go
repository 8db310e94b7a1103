// Package catalog holds the node templates offered by the editor palette.
//
// A template names a node type and provides the display name and config
// defaults every new node of that type starts with. The default catalog is
// embedded; alternative catalogs can be loaded from YAML or JSON files.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/flowdesk/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Template describes how new nodes of a type are created.
type Template struct {
	Type        domain.NodeType `yaml:"type" json:"type"`
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description" json:"description"`
	Category    string          `yaml:"category" json:"category"`
	Color       string          `yaml:"color" json:"color"`
	Config      map[string]any  `yaml:"config" json:"config"`
}

// Defaults returns a fresh copy of the template config.
func (t Template) Defaults() domain.Config {
	if t.Config == nil {
		return domain.Config{}
	}
	return domain.Config(t.Config).Clone()
}

// File is the on-disk layout of a catalog.
type File struct {
	Templates []Template `yaml:"templates" json:"templates"`
}

// Catalog is an immutable, ordered set of templates keyed by node type.
type Catalog struct {
	byType map[domain.NodeType]Template
	order  []domain.NodeType
}

var defaultCatalog = mustParse(defaultTemplates)

// Default returns the embedded catalog covering every node type.
func Default() *Catalog {
	return defaultCatalog
}

// New builds a catalog from templates. Unknown or duplicated types are rejected.
func New(templates ...Template) (*Catalog, error) {
	c := &Catalog{byType: make(map[domain.NodeType]Template, len(templates))}
	for _, tpl := range templates {
		if !tpl.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, tpl.Type)
		}
		if _, dup := c.byType[tpl.Type]; dup {
			return nil, fmt.Errorf("duplicate template for node type %q", tpl.Type)
		}
		if tpl.Name == "" {
			tpl.Name = string(tpl.Type)
		}
		c.byType[tpl.Type] = tpl
		c.order = append(c.order, tpl.Type)
	}
	return c, nil
}

// Parse decodes a YAML catalog. YAML is a superset of JSON, so JSON input is accepted too.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Templates...)
}

// Load reads a catalog file (YAML or JSON, by extension).
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var f File
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse catalog json: %w", err)
		}
		return New(f.Templates...)
	}
	return Parse(data)
}

func mustParse(data []byte) *Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded templates are invalid: %v", err))
	}
	return c
}

// Lookup returns the template for t.
func (c *Catalog) Lookup(t domain.NodeType) (Template, bool) {
	tpl, ok := c.byType[t]
	return tpl, ok
}

// Templates returns the templates in declaration order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.byType[t])
	}
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.order)
}
