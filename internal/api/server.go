// Package api exposes the projection engine over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/firego/internal/api/handlers"
	"github.com/rgehrsitz/firego/internal/api/middleware"
	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/output"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Options configures the router
type Options struct {
	AllowedOrigins []string
	Currency       output.Currency
	Logger         *zap.Logger
}

// NewRouter builds the gin engine with middleware and routes registered
func NewRouter(engine *calculation.CalculationEngine, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Currency == "" {
		opts.Currency = output.KRW
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))

	h := handlers.NewHandler(engine, opts.Currency, logger)

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/templates", h.ListTemplates)
		v1.GET("/presets", h.ListPresets)

		v1.POST("/calculate", h.Calculate)
		v1.POST("/compare", h.Compare)
		v1.POST("/sweep", h.Sweep)
		v1.POST("/solve", h.Solve)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}

// ListenAndServe runs handler on addr until ctx is cancelled, then drains
// in-flight requests.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
