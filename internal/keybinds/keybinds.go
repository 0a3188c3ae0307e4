package keybinds

import (
	"fmt"
)

// Binding is one key with a label for the hint panel and a Run func.
type Binding struct {
	Key   int32
	Label string // e.g. "F12"
	Name  string // e.g. "save snapshot"
	Run   func() error
}

// Registry holds bindings by key. Add bindings with Register; dispatch with Execute.
type Registry struct {
	binds map[int32]*Binding
	order []int32
}

// NewRegistry returns an empty key registry.
func NewRegistry() *Registry {
	return &Registry{binds: make(map[int32]*Binding)}
}

// Register binds key. Re-registering a key replaces its binding and keeps its position.
func (r *Registry) Register(key int32, label, name string, run func() error) {
	if _, ok := r.binds[key]; !ok {
		r.order = append(r.order, key)
	}
	r.binds[key] = &Binding{Key: key, Label: label, Name: name, Run: run}
}

// Keys returns bound keys in registration order.
func (r *Registry) Keys() []int32 {
	out := make([]int32, len(r.order))
	copy(out, r.order)
	return out
}

// Execute runs the binding for key. handled is false when nothing is bound.
func (r *Registry) Execute(key int32) (handled bool, err error) {
	b, ok := r.binds[key]
	if !ok {
		return false, nil
	}
	if err := b.Run(); err != nil {
		return true, fmt.Errorf("%s: %w", b.Name, err)
	}
	return true, nil
}

// Hints returns one "label  name" line per binding, in registration order.
func (r *Registry) Hints() []string {
	out := make([]string, 0, len(r.order))
	for _, k := range r.order {
		b := r.binds[k]
		out = append(out, fmt.Sprintf("%-4s %s", b.Label, b.Name))
	}
	return out
}
