package container

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ── Provider interfaces ───────────────────────────────────────────────────────

// Provider bundles a set of bindings. Register may use any public method of
// the container and nothing more.
//
//	type MailProvider struct{ container.BaseProvider }
//
//	func (p *MailProvider) Register(c *container.Container) error {
//	    return c.Set("mailer", container.Computable(func(c *container.Container) (any, error) {
//	        host, err := container.Resolve[string](c, "mail.host")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return mail.NewSMTP(host), nil
//	    }))
//	}
type Provider interface {
	Register(c *Container) error
}

// Booter is implemented by providers that need a second phase once every
// provider of a ProviderRegistry has registered. Resolving other bindings is
// safe in Boot.
type Booter interface {
	Boot(c *Container) error
}

// Deferrer is implemented by providers whose Register should only run when
// one of the keys it provides is first read.
type Deferrer interface {
	Provides() []string
	IsDeferred() bool
}

// BaseProvider gives no-op Boot, Provides and IsDeferred. Embed it and
// implement Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ErrDeferredNotBound is returned when a deferred provider registered but
// did not bind a key it claimed to provide.
var ErrDeferredNotBound = errors.New("deferred provider did not bind the key it provides")

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry runs the two provider phases against one container:
// every Register first, then every Boot.
type ProviderRegistry struct {
	app   *Container
	eager []Provider

	// deferred providers loaded before Boot, booted along with eager ones
	loaded []Provider

	registered map[Provider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[Provider]bool),
	}
}

// Register adds provider. Eager providers register immediately, and boot
// immediately when the registry has already booted. Registering the same
// provider twice is a no-op.
func (r *ProviderRegistry) Register(provider Provider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if d, ok := provider.(Deferrer); ok && d.IsDeferred() {
		return r.registerDeferred(provider, d.Provides())
	}

	if _, err := r.app.Register(provider, nil); err != nil {
		return err
	}
	r.eager = append(r.eager, provider)
	r.app.log.Debug("provider registered", zap.String("provider", fmt.Sprintf("%T", provider)))

	if r.booted {
		return boot(r.app, provider)
	}
	return nil
}

// registerDeferred binds each provided key to a factory that loads the provider on
// first read and then hands over to whatever the provider bound.
func (r *ProviderRegistry) registerDeferred(provider Provider, keys []string) error {
	loaded := false
	load := func(c *Container) error {
		if loaded {
			return nil
		}
		if err := provider.Register(c); err != nil {
			return err
		}
		loaded = true
		c.log.Debug("deferred provider loaded", zap.String("provider", fmt.Sprintf("%T", provider)))
		if !r.booted {
			r.loaded = append(r.loaded, provider)
			return nil
		}
		return boot(c, provider)
	}

	for _, key := range keys {
		key := key
		var entered bool
		err := r.app.Set(key, r.app.Factory(func(c *Container) (any, error) {
			if entered {
				return nil, &Error{Op: "get", Key: key, Err: ErrDeferredNotBound}
			}
			entered = true
			defer func() { entered = false }()

			if err := load(c); err != nil {
				return nil, err
			}
			return c.Get(key)
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

// Boot calls Boot on every eager provider, and on every deferred provider
// already loaded, that implements Booter. Only the first call has any effect.
// Deferred providers loaded later boot as they load.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, group := range [][]Provider{r.eager, r.loaded} {
		for _, provider := range group {
			if err := boot(r.app, provider); err != nil {
				return err
			}
		}
	}
	return nil
}

// Booted reports whether Boot has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []Provider { return r.eager }

func boot(c *Container, provider Provider) error {
	if b, ok := provider.(Booter); ok {
		return b.Boot(c)
	}
	return nil
}
