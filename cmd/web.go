package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/urfave/cli/v3"

	"github.com/coursexpert/coursexpert/pkg/api"
	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/config"
	"github.com/coursexpert/coursexpert/pkg/log"
	"github.com/coursexpert/coursexpert/pkg/profile"
	"github.com/coursexpert/coursexpert/pkg/realtime"
)

// WebCommand creates the web command serving the REST API
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start the API server with background catalog refresh",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on",
				Value: "8080",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to",
				Value: "localhost",
			},
			&cli.BoolFlag{
				Name:  "no-profiles",
				Usage: "Disable the profile and bookmark endpoints",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c.String("config"), c.String("host"), c.String("port"), c.Bool("no-profiles"))
		},
	}
}

// startWebServer starts the API server and keeps the catalog fresh in the
// background.
func startWebServer(ctx context.Context, configPath, host, port string, noProfiles bool) error {
	logger := log.ForComponent("web")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry := catalog.GetGlobalRegistry()

	if err := createProvidersFromConfig(registry, cfg); err != nil {
		return fmt.Errorf("creating providers: %w", err)
	}
	defer func() {
		if err := registry.Close(); err != nil {
			fmt.Printf("Warning: failed to close registry: %v\n", err)
		}
	}()

	collection := catalog.NewCollection()
	hub := realtime.NewHub(0)

	wh, err := buildWarehouse(registry, cfg, collection, hub)
	if err != nil {
		return err
	}

	apiServer := api.NewServer(registry, collection)
	apiServer.SetFirehoseHub(hub)

	if !noProfiles {
		dbPath, err := config.GetDefaultProfileDBPath()
		if err != nil {
			return fmt.Errorf("resolving profile database path: %w", err)
		}
		store, err := profile.NewStore(dbPath)
		if err != nil {
			return fmt.Errorf("opening profile database: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Printf("Warning: failed to close profile store: %v\n", err)
			}
		}()
		apiServer.SetProfileStore(store)
	}

	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)

	// Responses are JSON and compress well; WebSocket upgrades pass through
	// untouched.
	handler := api.CorsMiddleware(gzhttp.GzipHandler(mux))

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", host, port),
		Handler: handler,
	}

	warehouseCtx, warehouseCancel := context.WithCancel(ctx)
	defer warehouseCancel()

	if err := wh.Start(warehouseCtx); err != nil {
		return fmt.Errorf("starting warehouse: %w", err)
	}
	defer wh.Stop()

	go func() {
		logger.Infof("starting API server on http://%s:%s", host, port)
		logger.Infof("available endpoints:")
		logger.Infof("  GET  /api/providers - List configured providers")
		logger.Infof("  GET  /api/courses - Browse the catalog")
		logger.Infof("  GET  /api/courses/{provider} - Browse one provider's courses")
		logger.Infof("  GET  /api/search - Combined filter and text search")
		logger.Infof("  GET  /api/suggest - Search suggestions")
		logger.Infof("  POST /api/compare/toggle - Toggle a comparison selection")
		logger.Infof("  GET  /api/stats - Catalog statistics")
		logger.Infof("  GET  /api/firehose/ws - Live course event stream")
		logger.Infof("  GET  /health - Health check")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	logger.Infof("shutting down API server")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
