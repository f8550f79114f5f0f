package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	gohttp "github.com/km-arc/go-gears/framework/http"
	"github.com/km-arc/go-gears/framework/routing"
)

func TestRequest_Query(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/x?kind=factory&frozen=yes&off=0", nil))

	if got := req.Query("kind"); got != "factory" {
		t.Errorf("Query(kind): got %q want factory", got)
	}
	if got := req.Query("missing", "fallback"); got != "fallback" {
		t.Errorf("Query(missing): got %q want fallback", got)
	}
	if !req.QueryBool("frozen") {
		t.Error("QueryBool(frozen): want true")
	}
	if req.QueryBool("off") || req.QueryBool("missing") {
		t.Error("QueryBool: want false for 0 and missing")
	}
	if req.Raw() == nil {
		t.Error("Raw: want the wrapped request")
	}
}

func TestRequest_RouteParam(t *testing.T) {
	var got string
	r := routing.New(nil)
	r.Get("/bindings/{key}", func(w http.ResponseWriter, req *http.Request) {
		got = gohttp.NewRequest(req).RouteParam("key")
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bindings/logger", nil))

	if got != "logger" {
		t.Errorf("RouteParam(key): got %q want logger", got)
	}
}
