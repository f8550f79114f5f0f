package providers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-gears/framework/config"
	"github.com/km-arc/go-gears/framework/container"
	"github.com/km-arc/go-gears/framework/providers"
	"github.com/km-arc/go-gears/framework/routing"
)

func testConfig(enabled bool) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Name: "Test", Env: "testing", Port: "8000"},
		Log:     config.LogConfig{Level: "info", Format: "json"},
		Inspect: config.InspectConfig{Enabled: enabled, Prefix: "/_container"},
	}
}

func boot(t *testing.T, ps ...container.Provider) *container.Container {
	t.Helper()
	c, err := container.New()
	require.NoError(t, err)
	reg := container.NewProviderRegistry(c)
	for _, p := range ps {
		require.NoError(t, reg.Register(p))
	}
	require.NoError(t, reg.Boot())
	return c
}

// ── Config ────────────────────────────────────────────────────────────────────

func TestConfigServiceProvider_Given(t *testing.T) {
	cfg := testConfig(false)
	c := boot(t, &providers.ConfigServiceProvider{Config: cfg})

	got, err := container.Resolve[*config.Config](c, "config")
	require.NoError(t, err)
	assert.Same(t, cfg, got)
	assert.Equal(t, "Test", c.MustGet("app.name"))
	assert.Equal(t, "testing", c.MustGet("app.env"))
	assert.True(t, c.Frozen("config"))
}

func TestConfigServiceProvider_LoadsLazily(t *testing.T) {
	t.Setenv("APP_NAME", "Lazy")
	c := boot(t, &providers.ConfigServiceProvider{EnvFiles: []string{"../config/testdata/empty.env"}})

	assert.False(t, c.Frozen("config"))
	assert.Equal(t, "Lazy", c.MustGet("app.name"))
	assert.True(t, c.Frozen("config"))
}

func TestConfigServiceProvider_InvalidConfig(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	c := boot(t, &providers.ConfigServiceProvider{EnvFiles: []string{"../config/testdata/empty.env"}})

	_, err := c.Get("config")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid))
	assert.False(t, c.Frozen("config"))
}

// ── Logging ───────────────────────────────────────────────────────────────────

func TestLoggingServiceProvider(t *testing.T) {
	given := zap.NewNop()
	c := boot(t, &providers.LoggingServiceProvider{Logger: given})
	got, err := container.Resolve[*zap.Logger](c, "logger")
	require.NoError(t, err)
	assert.Same(t, given, got)

	c = boot(t,
		&providers.ConfigServiceProvider{Config: testConfig(false)},
		&providers.LoggingServiceProvider{},
	)
	got, err = container.Resolve[*zap.Logger](c, "logger")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestLoggingServiceProvider_NeedsConfig(t *testing.T) {
	c := boot(t, &providers.LoggingServiceProvider{})
	_, err := c.Get("logger")
	assert.ErrorIs(t, err, container.ErrUnknownKey)
}

// ── Routing / Inspector ───────────────────────────────────────────────────────

func TestRoutingServiceProvider(t *testing.T) {
	c := boot(t,
		&providers.LoggingServiceProvider{Logger: zap.NewNop()},
		&providers.RoutingServiceProvider{},
	)
	r1, err := container.Resolve[*routing.Router](c, "router")
	require.NoError(t, err)
	r2, err := container.Resolve[*routing.Router](c, "router")
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}

func inspect(t *testing.T, enabled bool) int {
	t.Helper()
	c := boot(t,
		&providers.ConfigServiceProvider{Config: testConfig(enabled)},
		&providers.LoggingServiceProvider{Logger: zap.NewNop()},
		&providers.RoutingServiceProvider{},
		&providers.InspectorServiceProvider{},
	)
	router := container.MustResolve[*routing.Router](c, "router")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container/bindings/config", nil))
	return rr.Code
}

func TestInspectorServiceProvider(t *testing.T) {
	assert.Equal(t, http.StatusOK, inspect(t, true))
	assert.Equal(t, http.StatusNotFound, inspect(t, false))
}
