package container

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-gears/framework/container/slots"
)

// Extender decorates the output of a service definition.
type Extender func(instance any, c *Container) (any, error)

// Extend wraps the definition stored under key so its output passes through
// fn. The binding keeps its kind: an extended factory still runs on every
// Get. Extending a resolved singleton fails with ErrFrozenBinding, extending
// a plain value or a protected definition with ErrNotComputable.
//
//	c.Extend("logger", func(l any, c *container.Container) (any, error) {
//	    return l.(*zap.Logger).Named("http"), nil
//	})
func (c *Container) Extend(key string, fn Extender) error {
	b, err := c.accessible("extend", key)
	if err != nil {
		return err
	}
	switch {
	case b.frozen:
		return c.fail("extend", key, ErrFrozenBinding)
	case b.kind != KindSingleton && b.kind != KindFactory:
		return c.fail("extend", key, ErrNotComputable)
	}

	inner := b.fn
	wrapped := &binding{kind: b.kind, fn: func(c *Container) (any, error) {
		instance, err := inner(c)
		if err != nil {
			return nil, err
		}
		return fn(instance, c)
	}}
	if err := c.slots.Write(key, wrapped); err != nil {
		return c.fail("extend", key, ErrPrivacyViolation)
	}
	c.log.Debug("extended", zap.String("key", key), zap.Stringer("kind", b.kind))
	return nil
}

// Raw returns what was stored under key without resolving it: a plain
// value, a Computable for an unresolved singleton, a Definition for
// factories and protected definitions, or the cached output once a
// singleton has resolved.
func (c *Container) Raw(key string) (any, error) {
	b, err := c.accessible("raw", key)
	if err != nil {
		return nil, err
	}
	return b.raw(), nil
}

// Keys returns every accessible key in declaration and creation order.
func (c *Container) Keys() []string {
	return c.slots.Keys()
}

// Frozen reports whether key holds a resolved singleton.
func (c *Container) Frozen(key string) bool {
	if c.slots.Probe(key) != slots.Accessible {
		return false
	}
	b, _ := c.slots.Read(key)
	return b != nil && b.frozen
}

// accessible probes key and reads its binding, failing on private and
// unknown keys.
func (c *Container) accessible(op, key string) (*binding, error) {
	switch c.slots.Probe(key) {
	case slots.Forbidden:
		return nil, c.fail(op, key, ErrPrivacyViolation)
	case slots.Absent:
		return nil, c.fail(op, key, ErrUnknownKey)
	}
	b, _ := c.slots.Read(key)
	if b == nil {
		b = &binding{kind: KindValue}
	}
	return b, nil
}
