package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ft-manu/forethought-test-api/pkg/api"
	"github.com/ft-manu/forethought-test-api/pkg/config"
	"github.com/ft-manu/forethought-test-api/pkg/logging"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	configPath string
	port       int
	token      string
	logLevel   string
	logFormat  string
}

var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server (foreground)",
	Example: `  # Start with defaults on port 5000
  testapi serve

  # Custom port and token
  testapi serve --port 8080 --token my-secret

  # Load settings from a config file
  testapi serve --config testapi.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals)
	},
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to YAML configuration file")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", 0, "HTTP server port (overrides config)")
	serveCmd.Flags().StringVar(&f.token, "token", "", "Bearer token for authentication (overrides config)")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
}

func runServe(f *serveFlags) error {
	// A .env in the working directory feeds the environment overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.port != 0 {
		cfg.Server.Port = f.port
	}
	if f.token != "" {
		cfg.Auth.Token = f.token
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
	})

	server := api.New(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
