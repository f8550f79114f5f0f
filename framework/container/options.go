package container

import (
	"sort"

	"go.uber.org/zap"

	"github.com/km-arc/go-gears/framework/container/slots"
)

// Option configures a Container during New.
type Option func(*options)

type entry struct {
	key   string
	value any
}

type slotDecl struct {
	name       string
	visibility slots.Visibility
	value      any
}

type options struct {
	logger   *zap.Logger
	slots    []slotDecl
	defaults []func(*Container) error
	values   []entry
}

// WithLogger sets the logger used for set/resolve tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSlot declares a slot by its physical name (see slots.Name). This is how
// a container type fixes its shape: a Private slot exists but can never be
// reached by key. New fails with slots.ErrInvalidName when no key derives
// to name.
//
//	container.New(
//	    container.WithSlot("injectDb", slots.Protected, nil),
//	    container.WithSlot("injectSecret", slots.Private, "s3cr3t"),
//	)
func WithSlot(name string, visibility slots.Visibility, value any) Option {
	return func(o *options) {
		o.slots = append(o.slots, slotDecl{name: name, visibility: visibility, value: value})
	}
}

// WithDefaults registers a hook that runs once, after slots are declared and
// before initial values are applied. Hooks run in the order given.
func WithDefaults(fn func(c *Container) error) Option {
	return func(o *options) {
		if fn != nil {
			o.defaults = append(o.defaults, fn)
		}
	}
}

// WithValue sets key after the defaults hooks. Values are applied in the
// order their options are given.
func WithValue(key string, value any) Option {
	return func(o *options) {
		o.values = append(o.values, entry{key: key, value: value})
	}
}

// WithValues is WithValue for each entry of m, in sorted key order.
func WithValues(m map[string]any) Option {
	return func(o *options) {
		o.values = append(o.values, sortedEntries(m)...)
	}
}

func sortedEntries(m map[string]any) []entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, entry{key: k, value: m[k]})
	}
	return out
}
