// Package container provides a small service container: a key-value store
// whose values may be plain data or lazily computed services.
//
// # Bindings
//
// What a key resolves to depends on what was Set:
//
//	// Plain value, returned as-is
//	c.Set("db.dsn", "postgres://localhost/app")
//
//	// Singleton, computed on first Get, cached, then frozen
//	c.Set("db", container.Computable(func(c *container.Container) (any, error) {
//	    dsn, err := container.Resolve[string](c, "db.dsn")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return sql.Open("postgres", dsn)
//	}))
//
//	// Factory, computed on every Get
//	c.Set("request.id", c.Factory(func(c *container.Container) (any, error) {
//	    return newRequestID(), nil
//	}))
//
//	// Protected, handed back uninvoked as a container.Bound
//	c.Set("hasher", c.Protect(func(c *container.Container) (any, error) {
//	    return hash(container.MustResolve[string](c, "salt")), nil
//	}))
//
// Once a singleton has resolved, other services may already hold its output,
// so Set on that key fails with ErrFrozenBinding. Keys can never be removed.
//
// # Slots
//
// Every key lives in a slot named "inject" + the key with its first letter
// upper-cased (see slots.Name). A container type may declare slots up front
// with WithSlot; a Private slot exists but reading or writing it by key fails
// with ErrPrivacyViolation, which is distinct from ErrUnknownKey.
//
//	type App struct{ *container.Container }
//
//	func NewApp() (*App, error) {
//	    c, err := container.New(
//	        container.WithSlot("injectSecret", slots.Private, "s3cr3t"),
//	        container.WithDefaults(func(c *container.Container) error {
//	            return c.Set("name", "app")
//	        }),
//	    )
//	    return &App{c}, err
//	}
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) error {
//	    return c.Set("mailer", container.Computable(newMailer))
//	}
//
//	c.Register(&AppServiceProvider{}, map[string]any{"mail.host": "smtp.local"})
//
// A ProviderRegistry adds a Boot phase and deferred providers on top.
package container
