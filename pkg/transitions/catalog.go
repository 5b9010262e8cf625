package transitions

import (
	"sort"
	"strings"
)

// Catalog is the name-indexed table of transitions built from an API
// descriptor. It is treated as immutable after construction: resolution hands
// out deep copies and never mutates an entry, so concurrent readers need no
// synchronization.
type Catalog struct {
	entries map[string]Transition
	handles *Handles
}

// Option configures a Catalog during construction.
type Option func(*Catalog)

// WithHandles attaches a handler-identity map so ResolveHandler can translate
// function values into operation names.
func WithHandles(handles *Handles) Option {
	return func(c *Catalog) {
		if handles != nil {
			c.handles = handles
		}
	}
}

// New builds a Catalog over the supplied entries.
func New(entries map[string]Transition, options ...Option) *Catalog {
	c := &Catalog{
		entries: make(map[string]Transition, len(entries)),
		handles: NewHandles(),
	}
	for name, entry := range entries {
		c.entries[name] = entry
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Handles exposes the attached handler-identity map for route wiring.
func (c *Catalog) Handles() *Handles {
	return c.handles
}

// Lookup returns a copy of the raw entry without parameter substitution.
func (c *Catalog) Lookup(name string) (Transition, bool) {
	entry, ok := c.entries[name]
	if !ok {
		return Transition{}, false
	}
	return entry.Clone(), true
}

// Names lists the catalog's operation names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Resolve looks up an operation by name and substitutes every {placeholder}
// in its href template from ctx. An unknown name yields (nil, nil): absent is
// tolerated and callers omit the transition. A placeholder without a ctx
// value is a hard failure reported as *MissingParameterError. Extra ctx keys
// are ignored.
func (c *Catalog) Resolve(name string, ctx map[string]string) (*Transition, error) {
	entry, ok := c.entries[name]
	if !ok {
		return nil, nil
	}

	resolved := entry.Clone()
	href, err := substitute(resolved.Href, ctx, name)
	if err != nil {
		return nil, err
	}
	resolved.Href = href
	return &resolved, nil
}

// ResolveHandler resolves by handler identity instead of name. A function
// that was never bound yields (nil, nil) like an unknown name.
func (c *Catalog) ResolveHandler(fn any, ctx map[string]string) (*Transition, error) {
	name, ok := c.handles.Name(fn)
	if !ok {
		return nil, nil
	}
	return c.Resolve(name, ctx)
}

// substitute replaces each {placeholder} in template with its ctx value,
// failing on the first placeholder that has none.
func substitute(template string, ctx map[string]string, operation string) (string, error) {
	if !strings.Contains(template, "{") {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		before, after, ok := strings.Cut(rest, "{")
		b.WriteString(before)
		if !ok {
			return b.String(), nil
		}
		name, tail, ok := strings.Cut(after, "}")
		if !ok {
			// Unbalanced brace: keep the remainder verbatim.
			b.WriteString("{")
			b.WriteString(after)
			return b.String(), nil
		}
		value, ok := ctx[name]
		if !ok {
			return "", &MissingParameterError{
				Param:     name,
				Operation: operation,
				Template:  template,
			}
		}
		b.WriteString(value)
		rest = tail
	}
}
