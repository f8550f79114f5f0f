package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/km-arc/go-gears/framework/app"
	"github.com/km-arc/go-gears/framework/container"
	gohttp "github.com/km-arc/go-gears/framework/http"
	"github.com/km-arc/go-gears/framework/routing"
)

// counterProvider shows the three binding kinds side by side.
type counterProvider struct {
	container.BaseProvider
	hits atomic.Int64
}

func (p *counterProvider) Register(c *container.Container) error {
	// Singleton: built once on first read, then frozen.
	if err := c.Set("greeting", container.Computable(func(c *container.Container) (any, error) {
		name, err := container.Resolve[string](c, "app.name")
		if err != nil {
			return nil, err
		}
		return "Welcome to " + name + "!", nil
	})); err != nil {
		return err
	}

	// Factory: a fresh value per read.
	if err := c.Set("hit", c.Factory(func(*container.Container) (any, error) {
		return p.hits.Add(1), nil
	})); err != nil {
		return err
	}

	// Protected: the function itself is the value.
	return c.Set("shout", c.Protect(func(c *container.Container) (any, error) {
		g, err := container.Resolve[string](c, "greeting")
		if err != nil {
			return nil, err
		}
		return g + "!!", nil
	}))
}

func (p *counterProvider) Boot(c *container.Container) error {
	router, err := container.Resolve[*routing.Router](c, "router")
	if err != nil {
		return err
	}

	// Resolve before serving so handlers only read frozen values.
	greeting, err := c.Get("greeting")
	if err != nil {
		return err
	}

	router.Get("/", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		hit, _ := c.Get("hit")
		res.Success(map[string]any{"message": greeting, "hit": hit})
	})

	router.Get("/shout", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		v, err := c.Invoke("shout")
		if err != nil {
			res.ServerError(err.Error())
			return
		}
		res.Success(v)
	})
	return nil
}

func main() {
	flagSet := flag.NewFlagSet("gears", flag.ContinueOnError)
	envFiles := flagSet.StringSliceP("env-file", "e", nil, "env file to load (repeatable, default .env)")
	inspect := flagSet.Bool("inspect", false, "mount the binding inspector regardless of INSPECT_ENABLED")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	application, err := app.New(*envFiles...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	if *inspect {
		application.Config().Inspect.Enabled = true
	}

	if err := application.Register(&counterProvider{}); err != nil {
		application.Logger().Fatal("register", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Fatal("server error", zap.Error(err))
	}
}
