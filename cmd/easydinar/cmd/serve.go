package cmd

import (
	"fmt"
	"log/slog"

	"github.com/rabie-karouia/EasyDinar/internal/config"
	"github.com/rabie-karouia/EasyDinar/internal/logging"
	"github.com/rabie-karouia/EasyDinar/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the web server until it receives an interrupt or terminate signal.

Configuration is read from the environment, after loading a .env file when one exists.
SESSION_SECRET is required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.New()

		cfg, err := config.New()
		if err != nil {
			return err
		}
		addr := cfg.GetAppAddr()
		if serveAddr != "" {
			addr = serveAddr
		}

		s, err := server.New(cfg)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}
		if err := s.RegisterRoutes(cmd.Context()); err != nil {
			return err
		}
		if err := s.Start(cmd.Context(), addr); err != nil {
			slog.Error("Server stopped with error", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides APP_ADDR")
	rootCmd.AddCommand(serveCmd)
}
