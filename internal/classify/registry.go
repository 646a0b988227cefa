// Package classify implements the block-classification layer: ordered
// chains of callbacks for ladder/road/passable/walkable-surface/bounding-box
// decisions (spec.md section 4.2). Each registry is process-wide for a given
// agent configuration and is treated as immutable for the duration of any
// search (spec.md section 5) — callers build one, hand it to every search
// job, and never mutate it concurrently with an in-flight search.
package classify

// Answer wraps a value the way the "ordered callback, first present wins"
// contract needs: a callback that has no opinion returns Answer{Present:
// false} rather than a zero value, so a later callback in the chain still
// gets a turn.
type Answer[T any] struct {
	Value   T
	Present bool
}

func Some[T any](v T) Answer[T] { return Answer[T]{Value: v, Present: true} }
func None[T any]() Answer[T]    { var zero T; return Answer[T]{Value: zero, Present: false} }

// Callback is one link in a Registry chain.
type Callback[Args, T any] func(Args) Answer[T]

// Registry is an ordered list of Callbacks. Resolve runs them in insertion
// order and returns the first present answer; if none answer, it falls
// back to the registry's default.
type Registry[Args, T any] struct {
	callbacks []Callback[Args, T]
	fallback  func(Args) T
}

// NewRegistry builds a Registry whose fallback is used when no registered
// callback produces an answer.
func NewRegistry[Args, T any](fallback func(Args) T) *Registry[Args, T] {
	return &Registry[Args, T]{fallback: fallback}
}

// Register appends a callback to the end of the chain. Registries are built
// once, before any search starts (spec.md section 5); callers must not call
// Register concurrently with Resolve.
func (r *Registry[Args, T]) Register(cb Callback[Args, T]) {
	r.callbacks = append(r.callbacks, cb)
}

// Resolve runs the chain in insertion order and returns the first present
// answer, or the fallback's answer if none respond.
func (r *Registry[Args, T]) Resolve(args Args) T {
	if v, ok := r.ResolveOptional(args); ok {
		return v
	}
	return r.fallback(args)
}

// ResolveOptional runs the chain without consulting the fallback, returning
// ok=false if no callback answered. Used where "nobody answered" is itself
// meaningful, such as the bounding-box producer (spec.md section 4.3): the
// oracle's own default box is not the same kind of answer as a custom one.
func (r *Registry[Args, T]) ResolveOptional(args Args) (T, bool) {
	for _, cb := range r.callbacks {
		if answer := cb(args); answer.Present {
			return answer.Value, true
		}
	}
	var zero T
	return zero, false
}
