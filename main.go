// Command roomserver starts the multiplayer room coordination server.
//
// It serves the browser client's static assets, a room-creation HTTP
// endpoint, and the WebSocket endpoint all gameplay traffic flows over.
// Flags control the config file location, a listen-address override, and
// debug logging.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/pokioni/roomserver/api"
	"github.com/pokioni/roomserver/config"
	"github.com/pokioni/roomserver/logging"
	"github.com/pokioni/roomserver/room"
	"github.com/pokioni/roomserver/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Room Coordination Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cmd := &cli.Command{
		Name:    "roomserver",
		Usage:   "real-time room coordination server for browser multiplayer sessions",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.json",
				Usage:   "path to the server config file",
				Sources: cli.EnvVars("CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address override, e.g. :9090",
				Sources: cli.EnvVars("LISTEN_ADDR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd.String("config"), cmd.String("addr"), cmd.Bool("debug"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%s failed: %v", AppName, err)
	}
}

// run wires the store, hub, and HTTP server together and blocks until the
// process receives SIGINT/SIGTERM.
func run(ctx context.Context, configPath, addrOverride string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.LogFile, debug)
	defer logger.Sync()

	addr := cfg.Addr()
	if addrOverride != "" {
		addr = addrOverride
	}

	// Room store with its durable snapshot.
	store := room.NewStore(room.NewFilePersistence(cfg.RoomsFile), logger)
	store.LoadSnapshot()

	// Hub event loop owns all connection state.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(store, logger)
	go hub.Run(ctx)

	apiServer := api.NewServer(store, hub, cfg, logger)

	httpServer := &http.Server{
		Addr:        addr,
		Handler:     apiServer,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("%s v%s listening on %s", AppName, Version, addr)
		logger.Infof("WebSocket: ws://%s/ws", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("http server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
	return nil
}
