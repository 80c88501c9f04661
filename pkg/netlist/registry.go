package netlist

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Ref names a Net or a Chip either by name or by an existing handle.
// The zero value refers to nothing.
type Ref[T any] struct {
	name   string
	handle *T
	set    bool
}

// ByName refers to the entity registered under name, creating it on
// resolution if needed.
func ByName[T any](name string) Ref[T] {
	return Ref[T]{name: name, set: true}
}

// ByHandle refers to an entity that already exists.
func ByHandle[T any](handle *T) Ref[T] {
	return Ref[T]{handle: handle, set: handle != nil}
}

// ChipByName is shorthand for ByName[Chip].
func ChipByName(name string) Ref[Chip] { return ByName[Chip](name) }

// NetByName is shorthand for ByName[Net].
func NetByName(name string) Ref[Net] { return ByName[Net](name) }

// NoNet refers to no net at all; nodes created with it start detached.
func NoNet() Ref[Net] { return Ref[Net]{} }

// registry owns the one live entity per name of a kind, in registration
// order.
type registry[T any] struct {
	items  *orderedmap.OrderedMap[string, *T]
	create func(name string) *T
}

func newRegistry[T any](create func(name string) *T) *registry[T] {
	return &registry[T]{
		items:  orderedmap.New[string, *T](),
		create: create,
	}
}

func (r *registry[T]) get(name string) (*T, bool) {
	return r.items.Get(name)
}

func (r *registry[T]) getOrCreate(name string) *T {
	if item, ok := r.items.Get(name); ok {
		return item
	}
	item := r.create(name)
	r.items.Set(name, item)
	return item
}

func (r *registry[T]) len() int {
	return r.items.Len()
}

func (r *registry[T]) values() []*T {
	out := make([]*T, 0, r.items.Len())
	for pair := r.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// resolveOrCreate turns a reference into a live entity. A handle is used as
// is; a name is looked up and created on first use. The zero Ref resolves to
// nil.
func resolveOrCreate[T any](r *registry[T], ref Ref[T]) *T {
	switch {
	case !ref.set:
		return nil
	case ref.handle != nil:
		return ref.handle
	default:
		return r.getOrCreate(ref.name)
	}
}
