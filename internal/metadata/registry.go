package metadata

import (
	"fmt"
	"sync"
)

// Registry holds the entity descriptors the engine serves. Descriptors are
// declared in code (the resource set is fixed), but the registry keeps the
// same lock discipline as a reloadable one so tests can swap catalogs.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]*Entity
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{entities: make(map[string]*Entity)}
}

// GetEntity returns the entity with the given URL name, or nil.
func (r *Registry) GetEntity(name string) *Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entities[name]
}

// AllEntities returns the registered entities in declaration order.
func (r *Registry) AllEntities() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entities := make([]*Entity, 0, len(r.order))
	for _, name := range r.order {
		entities = append(entities, r.entities[name])
	}
	return entities
}

// Load replaces all descriptors, compiling their check rules.
func (r *Registry) Load(entities []*Entity) error {
	compiled := make(map[string]*Entity, len(entities))
	order := make([]string, 0, len(entities))
	for _, e := range entities {
		for i := range e.Rules {
			if err := e.Rules[i].Compile(); err != nil {
				return fmt.Errorf("entity %s: %w", e.Name, err)
			}
		}
		if _, dup := compiled[e.Name]; dup {
			return fmt.Errorf("duplicate entity name %s", e.Name)
		}
		compiled[e.Name] = e
		order = append(order, e.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities = compiled
	r.order = order
	return nil
}
