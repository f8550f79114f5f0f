package container

import "fmt"

// ── Kinds ─────────────────────────────────────────────────────────────────────

// Kind classifies a stored binding. It is decided when the value is Set.
type Kind int

const (
	// KindValue is any plain value, nil included. Returned as-is.
	KindValue Kind = iota

	// KindSingleton is a computable invoked on first Get; its output is
	// cached and the binding freezes.
	KindSingleton

	// KindFactory is a computable invoked on every Get. Never cached.
	KindFactory

	// KindProtected is a computable handed back uninvoked on every Get.
	KindProtected
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindSingleton:
		return "singleton"
	case KindFactory:
		return "factory"
	case KindProtected:
		return "protected"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ── Computables ───────────────────────────────────────────────────────────────

// Computable is a deferred service definition. It receives the container it
// is resolved from, so it may read sibling keys while it runs.
//
//	c.Set("db", container.Computable(func(c *container.Container) (any, error) {
//	    dsn, err := container.Resolve[string](c, "dsn")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return sql.Open("postgres", dsn)
//	}))
type Computable func(c *Container) (any, error)

// Bound is a protected computable tied to the container it was read from.
type Bound func() (any, error)

// Definition is a computable tagged as a factory or as protected.
// Build one with (*Container).Factory or (*Container).Protect.
type Definition struct {
	fn   Computable
	kind Kind
}

// Kind reports the tag carried by the definition.
func (d Definition) Kind() Kind { return d.kind }

// Computable returns the wrapped computable.
func (d Definition) Computable() Computable { return d.fn }

// asComputable reports whether v is a service definition and returns it in
// canonical form.
func asComputable(v any) (Computable, bool) {
	switch fn := v.(type) {
	case Computable:
		return fn, fn != nil
	case func(*Container) (any, error):
		return fn, fn != nil
	case func(*Container) any:
		if fn == nil {
			return nil, false
		}
		return func(c *Container) (any, error) { return fn(c), nil }, true
	}
	return nil, false
}

// ── Binding record ────────────────────────────────────────────────────────────

// binding is the record stored in a slot.
type binding struct {
	kind Kind

	// plain value, or the cached output once resolved
	value any

	// definition for the computable kinds; nil once resolved
	fn Computable

	resolved bool
	frozen   bool
}

// newBinding classifies v.
func newBinding(v any) *binding {
	if d, ok := v.(Definition); ok && d.fn != nil {
		return &binding{kind: d.kind, fn: d.fn}
	}
	if fn, ok := asComputable(v); ok {
		return &binding{kind: KindSingleton, fn: fn}
	}
	return &binding{kind: KindValue, value: v}
}

// raw is what was stored, before any resolution.
func (b *binding) raw() any {
	switch {
	case b == nil:
		return nil
	case b.kind == KindValue || b.resolved:
		return b.value
	case b.kind == KindSingleton:
		return b.fn
	}
	return Definition{fn: b.fn, kind: b.kind}
}
