// Package slots provides the named, visibility-checked storage behind a
// container. Every container key maps onto one slot; slots are either
// declared up front with a visibility or created as public slots on first
// write.
package slots

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Prefix is prepended to every key to form its slot name.
const Prefix = "inject"

// ErrForbidden is returned by Write when the key maps onto a private slot.
var ErrForbidden = errors.New("slot is private")

// ErrInvalidName is returned by Declare for a name no key maps onto.
var ErrInvalidName = errors.New("slot name is not reachable by any key")

// ── Visibility ───────────────────────────────────────────────────────────────

// Visibility controls whether a slot may be reached through its key.
type Visibility int

const (
	Public Visibility = iota
	Protected
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	}
	return fmt.Sprintf("visibility(%d)", int(v))
}

// ── Probe results ────────────────────────────────────────────────────────────

// Result is the verdict of a Probe.
type Result int

const (
	Absent Result = iota
	Accessible
	Forbidden
)

func (r Result) String() string {
	switch r {
	case Absent:
		return "absent"
	case Accessible:
		return "accessible"
	case Forbidden:
		return "forbidden"
	}
	return fmt.Sprintf("result(%d)", int(r))
}

// Name derives the slot name for key: Prefix followed by key with its first
// letter upper-cased. Name("db") == "injectDb".
func Name(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return Prefix + key
	}
	return Prefix + string(unicode.ToUpper(r)) + key[size:]
}

// ── Registry ─────────────────────────────────────────────────────────────────

type slot[T any] struct {
	name       string
	key        string
	addressed  bool
	visibility Visibility
	value      T
}

// Registry maps keys onto slots holding values of type T.
//
// All methods are goroutine-safe; the lock is held only for the duration of
// a single map operation.
type Registry[T any] struct {
	mu sync.RWMutex

	// slot name → slot
	slots map[string]*slot[T]

	// slot names in declaration / creation order
	order []string

	// handle cached by the most recent Probe
	last *slot[T]
}

// New creates an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{slots: make(map[string]*slot[T])}
}

// Declare adds a slot by its physical name. Declaring an existing name
// replaces its visibility and value. The name must be one that Name
// produces, "injectDb" but not "db" or "injectdb".
func (r *Registry[T]) Declare(name string, visibility Visibility, value T) error {
	if Name(keyOf(name)) != name {
		return fmt.Errorf("declare %q: %w", name, ErrInvalidName)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[name]; ok {
		s.visibility = visibility
		s.value = value
		return nil
	}
	r.slots[name] = &slot[T]{name: name, visibility: visibility, value: value}
	r.order = append(r.order, name)
	return nil
}

// Probe reports whether key maps onto an accessible slot. On Accessible and
// Forbidden the slot handle is kept for the following Read or Write.
func (r *Registry[T]) Probe(key string) Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[Name(key)]
	if !ok {
		r.last = nil
		return Absent
	}
	r.last = s
	if s.visibility == Private {
		return Forbidden
	}
	return Accessible
}

// Read returns the content of the accessible slot behind key. The second
// result is false when the slot is absent or private.
func (r *Registry[T]) Read(key string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.lookup(key)
	if s == nil || s.visibility == Private {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Write stores value in the slot behind key, creating a public slot when
// none exists.
func (r *Registry[T]) Write(key string, value T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.lookup(key)
	if s == nil {
		name := Name(key)
		s = &slot[T]{name: name, key: key, visibility: Public}
		r.slots[name] = s
		r.order = append(r.order, name)
	}
	if s.visibility == Private {
		return fmt.Errorf("write %q: %w", key, ErrForbidden)
	}
	s.key = key
	s.addressed = true
	s.value = value
	r.last = s
	return nil
}

// Visibility returns the visibility of the slot behind key.
func (r *Registry[T]) Visibility(key string) (Visibility, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[Name(key)]
	if !ok {
		return 0, false
	}
	return s.visibility, true
}

// Keys returns the keys of all accessible slots in declaration order.
// Declared slots that have never been addressed by key are reported under
// their slot name with the prefix stripped and the first letter lowered.
func (r *Registry[T]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.order))
	for _, name := range r.order {
		s := r.slots[name]
		if s.visibility == Private {
			continue
		}
		if s.addressed {
			out = append(out, s.key)
			continue
		}
		out = append(out, keyOf(name))
	}
	return out
}

// Len returns the number of slots, private ones included.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// lookup resolves key to its slot, reusing the probed handle (must hold mu).
func (r *Registry[T]) lookup(key string) *slot[T] {
	name := Name(key)
	if r.last != nil && r.last.name == name {
		return r.last
	}
	return r.slots[name]
}

func keyOf(name string) string {
	rest := strings.TrimPrefix(name, Prefix)
	c, size := utf8.DecodeRuneInString(rest)
	if c == utf8.RuneError {
		return rest
	}
	return string(unicode.ToLower(c)) + rest[size:]
}
