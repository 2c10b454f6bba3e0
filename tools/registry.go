package tools

import (
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
)

// Registry collects the tool pages an application wants to expose and
// mounts them on a router. Two tools cannot claim the same path.
type Registry struct {
	tools []*Tool
	urls  map[string]string
}

// NewRegistry builds a registry from the given tools. It fails when two
// tools are configured with the same URL.
func NewRegistry(tools ...*Tool) (*Registry, error) {
	reg := &Registry{urls: make(map[string]string)}
	for _, t := range tools {
		if err := reg.Add(t); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Add registers one more tool, rejecting URL collisions.
func (reg *Registry) Add(t *Tool) error {
	if taken, ok := reg.urls[t.URL()]; ok {
		return errors.Errorf("tools: %s wants url %q already taken by %s", t.Name(), t.URL(), taken)
	}
	reg.urls[t.URL()] = t.Name()
	reg.tools = append(reg.tools, t)
	return nil
}

// Tools returns the registered tools in registration order.
func (reg *Registry) Tools() []*Tool {
	return reg.tools
}

// Mount attaches every registered tool to the router under its URL.
// The pages only answer GET; everything else stays with the router.
func (reg *Registry) Mount(r chi.Router) {
	for _, t := range reg.tools {
		r.Get(t.URL(), t.ServeHTTP)
	}
}
