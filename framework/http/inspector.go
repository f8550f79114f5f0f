package http

import (
	"errors"
	"net/http"

	"github.com/km-arc/go-gears/framework/container"
	"github.com/km-arc/go-gears/framework/routing"
)

// Inspector serves a read-only view of a container's bindings. It reports
// kinds and freeze state but never resolves a binding.
//
//	GET /bindings                 → every accessible binding
//	GET /bindings?kind=factory    → filtered by kind
//	GET /bindings?frozen=1        → resolved singletons only
//	GET /bindings/{key}           → one binding; 403 private, 404 unknown
type Inspector struct {
	c *container.Container
}

// NewInspector creates an Inspector over c.
func NewInspector(c *container.Container) *Inspector {
	return &Inspector{c: c}
}

// Mount registers the inspector routes on r.
func (i *Inspector) Mount(r *routing.Router) {
	r.Get("/bindings", i.Index)
	r.Get("/bindings/{key}", i.Show)
}

// Index lists bindings.
func (i *Inspector) Index(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	kind := req.Query("kind")
	frozenOnly := req.QueryBool("frozen")

	out := make([]container.Info, 0)
	for _, info := range i.c.Infos() {
		if kind != "" && info.Kind != kind {
			continue
		}
		if frozenOnly && !info.Frozen {
			continue
		}
		out = append(out, info)
	}
	NewResponse(w).Success(out)
}

// Show describes a single binding.
func (i *Inspector) Show(w http.ResponseWriter, r *http.Request) {
	res := NewResponse(w)
	key := NewRequest(r).RouteParam("key")

	info, err := i.c.Inspect(key)
	switch {
	case err == nil:
		res.Success(info)
	case errors.Is(err, container.ErrPrivacyViolation):
		res.Forbidden("Binding [" + key + "] is private.")
	case errors.Is(err, container.ErrUnknownKey):
		res.NotFound("Binding [" + key + "] does not exist.")
	default:
		res.ServerError(err.Error())
	}
}
