package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores displays by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu       sync.RWMutex
	displays map[string]Display
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		displays: make(map[string]Display),
	}
}

// Register adds a display by its Name(). Duplicate names return an error.
func (r *Registry) Register(display Display) error {
	if display == nil {
		return fmt.Errorf("render: display is required")
	}
	name := display.Name()
	if name == "" {
		return fmt.Errorf("render: display name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.displays[name]; exists {
		return fmt.Errorf("render: display %q already registered", name)
	}

	r.displays[name] = display
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(display Display) {
	if err := r.Register(display); err != nil {
		panic(err)
	}
}

// Get retrieves a display by name.
func (r *Registry) Get(name string) (Display, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	display, ok := r.displays[name]
	if !ok {
		return nil, fmt.Errorf("render: display %q not found", name)
	}
	return display, nil
}

// List returns a sorted list of display names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.displays))
	for name := range r.displays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a display is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.displays[name]
	return ok
}
