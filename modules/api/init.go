package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/facebookgo/inject"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	chttp "github.com/tryanzu/cart/core/http"
	cartctl "github.com/tryanzu/cart/modules/api/controller/cart"
	"github.com/tryanzu/cart/modules/cart"
	"github.com/tryanzu/cart/modules/exceptions"
)

var log = logging.MustGetLogger("api")

type Module struct {
	Cart       *cartctl.API         `inject:""`
	Exceptions *exceptions.Reporter `inject:""`
}

// Populate wires the module against an already booted cart.
func Populate(c *cart.Cart, reporter *exceptions.Reporter) (*Module, error) {
	var (
		g      inject.Graph
		module Module
	)

	if reporter == nil {
		reporter = &exceptions.Reporter{}
	}

	err := g.Provide(
		&inject.Object{Value: c, Complete: true},
		&inject.Object{Value: reporter, Complete: true},
		&inject.Object{Value: &module},
	)
	if err != nil {
		return nil, err
	}

	if err := g.Populate(); err != nil {
		return nil, err
	}
	return &module, nil
}

// Router builds the gin engine with every cart route.
func (module *Module) Router() *gin.Engine {
	router := gin.New()
	router.Use(chttp.RequestID())
	router.Use(chttp.AccessLog())
	router.Use(module.ErrorTracking())

	v1 := router.Group("/v1")
	{
		v1.GET("/cart", module.Cart.Get)
		v1.POST("/cart", module.Cart.Add)
		v1.PUT("/cart/:id/increment", module.Cart.Increment)
		v1.PUT("/cart/:id/decrement", module.Cart.Decrement)
	}
	return router
}

// Run serves the API on bindTo until ctx is done.
func (module *Module) Run(ctx context.Context, bindTo string) error {
	server := &http.Server{
		Addr:              bindTo,
		Handler:           module.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("http server listening on %s", bindTo)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// ErrorTracking reports handler panics and answers them with a 500.
func (module *Module) ErrorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rval := recover(); rval != nil {
				module.Exceptions.Capture(rval)
				c.AbortWithStatusJSON(500, gin.H{"status": "error", "message": "Internal error."})
			}
		}()

		c.Next()
	}
}
