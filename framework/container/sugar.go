package container

import "fmt"

// MustGet is Get that panics on failure. Meant for bootstrap code where a
// missing binding is a programming error.
func (c *Container) MustGet(key string) any {
	v, err := c.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Invoke is the call-style accessor: it resolves key and, when the result is
// a protected definition, runs it. Any other value is returned as-is.
func (c *Container) Invoke(key string) (any, error) {
	v, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	if fn, ok := v.(Bound); ok {
		return fn()
	}
	return v, nil
}

// Resolve is Get followed by a type assertion.
//
//	db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, key string) (T, error) {
	var zero T
	v, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%T]: %q resolved to %T", zero, key, v)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](c *Container, key string) T {
	v, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}
