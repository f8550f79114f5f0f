package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/km-arc/go-gears/framework/container/slots"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a key-value store whose values may be plain data or lazily
// computed services.
//
// Reading a key holding a Computable runs it once and caches the output
// (singleton); the binding is then frozen and can no longer be Set. Factory
// definitions run on every read, protected ones are returned uninvoked.
//
// Resolution is synchronous and re-entrant: a computable may Get and Set
// other keys of the same container while it runs. A Container is not meant
// to be resolved from several goroutines at once.
type Container struct {
	slots *slots.Registry[*binding]
	log   *zap.Logger
}

// New creates a container. Declared slots are installed first, then every
// WithDefaults hook runs, then initial values are Set in order.
func New(opts ...Option) (*Container, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Container{
		slots: slots.New[*binding](),
		log:   o.logger,
	}

	for _, d := range o.slots {
		if err := c.slots.Declare(d.name, d.visibility, newBinding(d.value)); err != nil {
			return nil, fmt.Errorf("container: %w", err)
		}
	}
	for _, hook := range o.defaults {
		if err := hook(c); err != nil {
			return nil, err
		}
	}
	for _, e := range o.values {
		if err := c.Set(e.key, e.value); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ── Primitives ────────────────────────────────────────────────────────────────

// Get returns the value stored under key, resolving it first when it holds
// a service definition.
//
// A singleton's output is written back under key once its computable
// returns, so a Set of that same key made while the computable runs is
// overwritten by the output.
func (c *Container) Get(key string) (any, error) {
	switch c.slots.Probe(key) {
	case slots.Forbidden:
		return nil, c.fail("get", key, ErrPrivacyViolation)
	case slots.Absent:
		return nil, c.fail("get", key, ErrUnknownKey)
	}

	b, _ := c.slots.Read(key)
	if b == nil || b.kind == KindValue || b.resolved {
		return b.valueOrNil(), nil
	}

	switch b.kind {
	case KindProtected:
		fn := b.fn
		return Bound(func() (any, error) { return fn(c) }), nil

	case KindFactory:
		out, err := b.fn(c)
		if err != nil {
			return nil, c.resolveFailed(key, b.kind, err)
		}
		return out, nil
	}

	out, err := b.fn(c)
	if err != nil {
		return nil, c.resolveFailed(key, b.kind, err)
	}

	// The computable may have touched other slots; write back by key.
	resolved := &binding{kind: KindSingleton, value: out, resolved: true, frozen: true}
	if err := c.slots.Write(key, resolved); err != nil {
		return nil, c.fail("get", key, ErrPrivacyViolation)
	}
	c.log.Debug("resolved singleton", zap.String("key", key))
	return out, nil
}

// Set stores value under key. A Computable becomes a singleton; a Definition
// from Factory or Protect keeps its tag; anything else is a plain value.
func (c *Container) Set(key string, value any) error {
	switch c.slots.Probe(key) {
	case slots.Forbidden:
		return c.fail("set", key, ErrPrivacyViolation)
	case slots.Accessible:
		if b, _ := c.slots.Read(key); b != nil && b.frozen {
			return c.fail("set", key, ErrFrozenBinding)
		}
	}

	b := newBinding(value)
	if err := c.slots.Write(key, b); err != nil {
		return c.fail("set", key, ErrPrivacyViolation)
	}
	c.log.Debug("set", zap.String("key", key), zap.Stringer("kind", b.kind))
	return nil
}

// Has reports whether key is readable. Private and unknown keys both report
// false; use Probe to tell them apart.
func (c *Container) Has(key string) bool {
	return c.slots.Probe(key) == slots.Accessible
}

// Probe reports whether key is absent, accessible or private.
func (c *Container) Probe(key string) slots.Result {
	return c.slots.Probe(key)
}

// Remove always fails: once injected, a dependency can only be replaced
// with Set, and only until it freezes.
func (c *Container) Remove(key string) error {
	return c.fail("remove", key, ErrUnsupported)
}

// ── Tagging ───────────────────────────────────────────────────────────────────

// Factory tags fn so that every Get runs it anew.
//
//	c.Set("request", c.Factory(func(c *container.Container) (any, error) {
//	    return NewRequest(), nil
//	}))
func (c *Container) Factory(fn Computable) Definition {
	return Definition{fn: fn, kind: KindFactory}
}

// Protect tags fn so that Get hands it back as a Bound without running it.
func (c *Container) Protect(fn Computable) Definition {
	return Definition{fn: fn, kind: KindProtected}
}

// Register lets provider bind its services, then applies overrides on top.
// It returns c for chaining.
//
//	c.Register(&MailProvider{}, map[string]any{"mail.host": "smtp.local"})
func (c *Container) Register(provider Provider, overrides map[string]any) (*Container, error) {
	if err := provider.Register(c); err != nil {
		return c, err
	}
	for _, e := range sortedEntries(overrides) {
		if err := c.Set(e.key, e.value); err != nil {
			return c, err
		}
	}
	return c, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (b *binding) valueOrNil() any {
	if b == nil {
		return nil
	}
	return b.value
}

func (c *Container) fail(op, key string, err error) error {
	c.log.Debug("container "+op+" failed", zap.String("key", key), zap.Error(err))
	return &Error{Op: op, Key: key, Err: err}
}

func (c *Container) resolveFailed(key string, kind Kind, err error) error {
	c.log.Warn("service resolution failed",
		zap.String("key", key), zap.Stringer("kind", kind), zap.Error(err))
	return &ResolveError{Key: key, Kind: kind, Cause: err}
}
