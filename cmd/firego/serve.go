package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/firego/internal/api"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr      string
		debugMode bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.Server.Address
			}
			if !debugMode {
				gin.SetMode(gin.ReleaseMode)
			}

			router := api.NewRouter(a.engine(debugMode), api.Options{
				AllowedOrigins: a.settings.Server.AllowedOrigins,
				Currency:       a.currency,
				Logger:         a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.ListenAndServe(ctx, addr, router, a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings, :8080)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Gin debug mode and engine debug logging")
	return cmd
}
