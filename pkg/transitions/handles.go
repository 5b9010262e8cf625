package transitions

import (
	"fmt"
	"reflect"
	"sync"
)

// Handles associates opaque handler identities with operation names so
// callers can reference transitions by the function that implements them
// instead of by string. Bind during route registration, alongside building
// the catalog.
type Handles struct {
	mu   sync.RWMutex
	byFn map[uintptr]string
}

// NewHandles creates an empty handle map.
func NewHandles() *Handles {
	return &Handles{byFn: make(map[uintptr]string)}
}

// Bind records that fn implements the named operation. fn must be a function
// value; anything else is a wiring mistake and returns an error.
func (h *Handles) Bind(fn any, operation string) error {
	key, err := handleKey(fn)
	if err != nil {
		return err
	}
	if operation == "" {
		return fmt.Errorf("transitions: handle operation name is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.byFn[key] = operation
	return nil
}

// MustBind panics on bind failure. Useful for init-time route wiring.
func (h *Handles) MustBind(fn any, operation string) {
	if err := h.Bind(fn, operation); err != nil {
		panic(err)
	}
}

// Name looks up the operation bound to fn.
func (h *Handles) Name(fn any) (string, bool) {
	key, err := handleKey(fn)
	if err != nil {
		return "", false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	name, ok := h.byFn[key]
	return name, ok
}

func handleKey(fn any) (uintptr, error) {
	if fn == nil {
		return 0, fmt.Errorf("transitions: handle is nil")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return 0, fmt.Errorf("transitions: handle must be a function, got %s", v.Kind())
	}
	return v.Pointer(), nil
}
