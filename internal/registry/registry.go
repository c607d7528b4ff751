package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/specialistvlad/foldgraph/internal/ctxlog"
	"github.com/specialistvlad/foldgraph/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnknownKind is returned by Build for a kind nobody registered.
var ErrUnknownKind = errors.New("registry: unknown node kind")

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Attributes are the configuration values of one node instance.
type Attributes map[string]cty.Value

// Kind describes one registered node kind.
type Kind struct {
	// Name is the identifier used in patch files.
	Name string
	// Description is shown by the CLI's kind listing.
	Description string
	// NewConfig returns a pointer to a fresh config struct with `cty` tags,
	// or nil for kinds that take no attributes.
	NewConfig func() any
	// New builds a node from the decoded config returned by NewConfig.
	New func(cfg any) (graph.Node, error)
}

// Registry holds every node kind known to an application instance.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]*Kind
}

// New creates an empty Registry and registers every given module into it.
func New(modules ...Module) *Registry {
	r := &Registry{kinds: make(map[string]*Kind)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register adds a kind. Registering the same name twice is a programming
// error and panics.
func (r *Registry) Register(k *Kind) {
	if k == nil || k.Name == "" || k.New == nil {
		panic("registry: kind must have a name and a constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.kinds[k.Name]; exists {
		panic(fmt.Sprintf("node kind with name '%s' already registered", k.Name))
	}
	slog.Debug("Registering node kind.", "kind", k.Name)
	r.kinds[k.Name] = k
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (*Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// Kinds returns every registered kind, sorted by name.
func (r *Registry) Kinds() []*Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Kind, 0, len(r.kinds))
	for _, k := range r.kinds {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b *Kind) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

// Build constructs a node of the named kind from attrs.
func (r *Registry) Build(ctx context.Context, kind string, attrs Attributes) (graph.Node, error) {
	logger := ctxlog.FromContext(ctx)

	k, ok := r.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	var cfg any
	if k.NewConfig != nil {
		cfg = k.NewConfig()
		if err := Decode(attrs, cfg); err != nil {
			return nil, fmt.Errorf("kind %q: %w", kind, err)
		}
	} else if len(attrs) > 0 {
		var result *multierror.Error
		for _, name := range sortedKeys(attrs) {
			result = multierror.Append(result, fmt.Errorf("unsupported attribute %q", name))
		}
		return nil, fmt.Errorf("kind %q: %w", kind, result.ErrorOrNil())
	}

	node, err := k.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("kind %q: %w", kind, err)
	}
	logger.Debug("Built node.", "kind", kind, "title", node.Title())
	return node, nil
}

// Validate checks that every registered config struct can be described in
// cty terms, so that a broken module fails at startup instead of at load.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	kinds := r.Kinds()
	var result *multierror.Error
	for _, k := range kinds {
		if k.NewConfig == nil {
			continue
		}
		if _, err := fieldsOf(k.NewConfig()); err != nil {
			result = multierror.Append(result, fmt.Errorf("kind '%s': %w", k.Name, err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}

	logger.Debug("Registry validated.", "kinds", len(kinds))
	return nil
}

func sortedKeys(attrs Attributes) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
