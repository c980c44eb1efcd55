package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wsyqhh/Accessibility-Service/internal/action"
	"github.com/wsyqhh/Accessibility-Service/internal/config"
	"github.com/wsyqhh/Accessibility-Service/internal/platform"
	"github.com/wsyqhh/Accessibility-Service/internal/server"
	"github.com/wsyqhh/Accessibility-Service/internal/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the UI bridge server",
	Long: `Run the bridge: a background feed keeps the latest UI hierarchy
snapshot current while the server answers observation and action requests.

The HTTP API binds to loopback by default. Binding any other address exposes
an unauthenticated API — put your own authentication in front of it first.

Transports:
  http   loopback HTTP API (default)
  mcp    Model Context Protocol over stdio

Examples:
  a11y-bridge serve
  a11y-bridge serve --addr 127.0.0.1:9008 --poll-interval 500
  a11y-bridge serve --config /etc/a11y-bridge.yaml --transport mcp`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
	serveCmd.Flags().String("config", "", "YAML config file")
	serveCmd.Flags().String("transport", "http", "Transport: http, mcp")
	serveCmd.Flags().Int("poll-interval", 0, "Hierarchy poll interval in milliseconds")
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if ms, _ := cmd.Flags().GetInt("poll-interval"); ms > 0 {
		cfg.PollIntervalMs = ms
	}
	if adbPath, _ := cmd.Flags().GetString("adb-path"); adbPath != "" {
		cfg.ADB.Path = adbPath
	}
	if serial, _ := cmd.Flags().GetString("adb-serial"); serial != "" {
		cfg.ADB.Serial = serial
	}

	provider, err := platform.NewProvider(platform.Options{
		ADBPath:      cfg.ADB.Path,
		Serial:       cfg.ADB.Serial,
		PollInterval: cfg.PollInterval(),
	})
	if err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	store := snapshot.NewStore()
	defer store.Close()

	exec := &action.Executor{
		Shell:     provider.Shell,
		Gestures:  provider.Gestures,
		Global:    provider.Global,
		Activator: provider.Activator,
		ExtraWait: cfg.GestureExtraWait(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The event feed runs independently of serving; a slow request never
	// blocks a publish.
	go func() {
		if err := provider.Hierarchy.Watch(ctx, store.Publish); err != nil && ctx.Err() == nil {
			log.Error("hierarchy feed stopped", "error", err)
		}
	}()

	srv := server.New(cfg.Addr, store, exec, provider.Screenshotter, log)

	transport, _ := cmd.Flags().GetString("transport")
	switch transport {
	case "mcp":
		return srv.ServeMCP()
	case "http":
	default:
		return fmt.Errorf("unsupported transport: %s (use http or mcp)", transport)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
