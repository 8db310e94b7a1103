package dsl

import (
	"fmt"
	"time"

	"github.com/aretw0/flowdesk/pkg/catalog"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/graph"
	"github.com/aretw0/flowdesk/pkg/schema"
)

// Builder manages the definition construction.
type Builder struct {
	def     domain.WorkflowDefinition
	nodes   map[string]*NodeBuilder
	order   []string
	catalog *catalog.Catalog
	now     func() time.Time
}

// New creates a new definition builder. The definition starts at version 1
// and active.
func New(name string) *Builder {
	return &Builder{
		def: domain.WorkflowDefinition{
			Name:     name,
			Version:  1,
			IsActive: true,
		},
		nodes:   make(map[string]*NodeBuilder),
		catalog: catalog.Default(),
		now:     time.Now,
	}
}

// ID sets the definition id. A random UUID is used otherwise.
func (b *Builder) ID(id string) *Builder {
	b.def.ID = id
	return b
}

// Describe sets the definition description.
func (b *Builder) Describe(description string) *Builder {
	b.def.Description = description
	return b
}

// Category sets the definition category.
func (b *Builder) Category(category string) *Builder {
	b.def.Category = category
	return b
}

// Tags appends tags to the definition.
func (b *Builder) Tags(tags ...string) *Builder {
	b.def.Tags = append(b.def.Tags, tags...)
	return b
}

// InputSchema sets the JSON schema of the workflow input.
func (b *Builder) InputSchema(s map[string]any) *Builder {
	b.def.InputSchema = s
	return b
}

// OutputSchema sets the JSON schema of the workflow output.
func (b *Builder) OutputSchema(s map[string]any) *Builder {
	b.def.OutputSchema = s
	return b
}

// Catalog replaces the templates used for default names and configs.
func (b *Builder) Catalog(c *catalog.Catalog) *Builder {
	b.catalog = c
	return b
}

// Clock replaces time.Now for the creation timestamps.
func (b *Builder) Clock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Add creates a new node in the definition.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:     id,
			Config: domain.Config{},
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Build compiles the nodes and their transitions into a definition.
// It fails when a node has no type or a transition points to an unknown node.
func (b *Builder) Build() (domain.WorkflowDefinition, error) {
	def := b.def
	if def.ID == "" {
		def.ID = graph.NewID()
	}
	now := b.now().UTC()
	def.CreatedAt, def.UpdatedAt = now, now

	def.Nodes = make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nb := b.nodes[id]
		node := nb.node.Clone()
		if node.Type == "" {
			return domain.WorkflowDefinition{}, fmt.Errorf("node %q has no type", id)
		}
		if tpl, ok := b.catalog.Lookup(node.Type); ok {
			if node.Name == "" {
				node.Name = tpl.Name
			}
			node.Config = tpl.Defaults().Merge(node.Config)
		}
		def.Nodes = append(def.Nodes, node)

		for _, tr := range nb.transitions {
			def.Edges = append(def.Edges, domain.Edge{
				ID:        fmt.Sprintf("e%d", len(def.Edges)+1),
				Source:    id,
				Target:    tr.target,
				Label:     tr.label,
				Condition: tr.condition,
				Priority:  tr.priority,
			})
		}
	}

	if err := schema.IntegrityError(schema.CheckIntegrity(def)); err != nil {
		return domain.WorkflowDefinition{}, fmt.Errorf("failed to build definition %q: %w", def.Name, err)
	}
	return def, nil
}

// MustBuild is like Build but panics on error. It is meant for templates
// whose shape is fixed at compile time.
func (b *Builder) MustBuild() domain.WorkflowDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
