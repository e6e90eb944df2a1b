package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/goby-auth/internal/app"
	"github.com/nfrund/goby-auth/internal/config"
	"github.com/nfrund/goby-auth/internal/logging"
	"github.com/nfrund/goby-auth/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// buildServer loads configuration and wires a server without starting it.
func buildServer() (*server.Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	deps, err := app.Resolve(app.NewInjector(cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("wire dependencies: %w", err)
	}
	return server.New(deps), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := buildServer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Start(ctx)
}
