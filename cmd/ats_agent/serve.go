package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/server"
	"github.com/jonathan/resume-ats/internal/server/ratelimit"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes resume analysis and per-user history endpoints.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd, config.WithFlag("server.port", cmd.Flags().Lookup("port")))
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			var jwtService *server.JWTService
			if cfg.Auth.JWTSecret != "" {
				jwtCfg, err := config.NewJWTConfig(cfg.Auth)
				if err != nil {
					return fmt.Errorf("failed to create JWT config: %w", err)
				}
				jwtService = server.NewJWTService(jwtCfg)
			} else {
				a.log.Warn("auth.jwtSecret is not set; history endpoints are disabled and analyses are not saved")
			}

			srv, err := server.New(server.Config{
				Addr:            cfg.Server.Addr(),
				ReadTimeout:     cfg.Server.ReadTimeout,
				WriteTimeout:    cfg.Server.WriteTimeout,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				Engine:          a.engine,
				JWT:             jwtService,
				RateLimit:       ratelimit.FromSettings(cfg.RateLimit),
				Logger:          a.log,
				Metrics:         a.metrics,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	return cmd
}
