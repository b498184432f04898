package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/config"
	"github.com/coursexpert/coursexpert/pkg/log"
	"github.com/coursexpert/coursexpert/pkg/realtime"
	"github.com/coursexpert/coursexpert/pkg/warehouse"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the catalog refresh daemon",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"))
		},
	}
}

// serve starts the refresh daemon to continuously fetch provider catalogs
func serve(ctx context.Context, configPath string) error {
	logger := log.ForComponent("serve")

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

	warehouseCtx, warehouseCancel := context.WithCancel(ctx)
	defer warehouseCancel()

	// Signal handling includes SIGHUP for reload
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	providers := registry.ListProviders()
	logger.Infof("configuring %d providers:", len(providers))
	for _, name := range providers {
		logger.Infof("  - %s: %v", name, cfg.GetProviderInterval(name))
	}

	if err := wh.Start(warehouseCtx); err != nil {
		return fmt.Errorf("starting warehouse: %w", err)
	}

	fmt.Println("Refresh daemon started. Press Ctrl+C to stop, send SIGHUP to reload, or modify the config file for automatic reload.")

	var cfgMutex sync.RWMutex
	currentConfig := cfg

	// Filesystem watcher for config file changes
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warnf("failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				logger.Warnf("failed to close config file watcher: %v", err)
			}
		}()

		if err := watcher.Add(configPath); err != nil {
			logger.Warnf("failed to watch config file %s: %v", configPath, err)
		} else {
			logger.Infof("watching config file for changes: %s", configPath)
		}
	}

	var watcherEvents chan fsnotify.Event
	var watcherErrors chan error
	if watcher != nil {
		watcherEvents = watcher.Events
		watcherErrors = watcher.Errors
	}

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				logger.Infof("received SIGHUP, reloading configuration")
				if err := reloadConfiguration(configPath, registry, wh, &cfgMutex, &currentConfig); err != nil {
					logger.Errorf("failed to reload configuration: %v", err)
				} else {
					logger.Infof("configuration reloaded")
				}
			case syscall.SIGINT, syscall.SIGTERM:
				fmt.Println("\nShutting down...")
				warehouseCancel()
				wh.Stop()
				hub.Close()
				return nil
			}
		case event, ok := <-watcherEvents:
			if !ok {
				continue
			}
			// Editors often replace config files atomically, so rename and
			// remove events matter as much as writes.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				logger.Infof("config file changed (%s), reloading", event.Op.String())

				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					time.Sleep(200 * time.Millisecond)

					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						logger.Warnf("config file was removed and not replaced, skipping reload")
						continue
					}
					if err := watcher.Add(configPath); err != nil {
						logger.Warnf("failed to re-add config file to watcher: %v", err)
					}
				} else {
					time.Sleep(100 * time.Millisecond)
				}

				if err := reloadConfiguration(configPath, registry, wh, &cfgMutex, &currentConfig); err != nil {
					logger.Errorf("failed to reload configuration after file change: %v", err)
				} else {
					logger.Infof("configuration reloaded after file change")
				}
			}
		case err, ok := <-watcherErrors:
			if !ok {
				continue
			}
			logger.Warnf("config file watcher error: %v", err)
		}
	}
}

// reloadConfiguration swaps the provider set for the one described by the
// config file on disk.
func reloadConfiguration(configPath string, registry *catalog.Registry, wh *warehouse.Warehouse, cfgMutex *sync.RWMutex, currentConfig **config.Config) error {
	cfgMutex.Lock()
	defer cfgMutex.Unlock()

	logger := log.ForComponent("serve")

	newCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading new config: %w", err)
	}

	oldCfg := *currentConfig

	oldProviders := oldCfg.ListProviders()
	for _, name := range oldProviders {
		logger.Infof("removing provider: %s", name)
		if err := removeProviderFromWarehouse(wh, registry, name); err != nil {
			logger.Warnf("failed to remove provider %s: %v", name, err)
		}
	}

	newProviders := newCfg.ListProviders()
	for _, name := range newProviders {
		logger.Infof("adding provider: %s", name)
		if err := addProviderToWarehouse(wh, registry, newCfg, name); err != nil {
			return fmt.Errorf("adding provider %s: %w", name, err)
		}
	}

	*currentConfig = newCfg

	logger.Infof("configuration reload complete: removed %d providers, added %d providers",
		len(oldProviders), len(newProviders))

	return nil
}

// removeProviderFromWarehouse removes a provider from the warehouse and
// registry.
func removeProviderFromWarehouse(wh *warehouse.Warehouse, registry *catalog.Registry, name string) error {
	if err := wh.RemoveProvider(name); err != nil {
		return fmt.Errorf("removing provider from warehouse: %w", err)
	}
	if err := registry.RemoveProvider(name); err != nil {
		return fmt.Errorf("removing provider from registry: %w", err)
	}
	return nil
}

// addProviderToWarehouse creates a provider from config and schedules it.
func addProviderToWarehouse(wh *warehouse.Warehouse, registry *catalog.Registry, cfg *config.Config, name string) error {
	providerType, rawConfig, err := cfg.GetProviderConfig(name)
	if err != nil {
		return fmt.Errorf("getting provider config: %w", err)
	}

	if err := registry.CreateProvider(name, providerType, nil); err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}

	provider, err := registry.GetProvider(name)
	if err != nil {
		return fmt.Errorf("provider not found after creation: %w", err)
	}

	providerConfig, err := convertRawConfigToType(provider, rawConfig)
	if err != nil {
		return fmt.Errorf("converting provider config: %w", err)
	}
	if err := provider.SetConfig(providerConfig); err != nil {
		return fmt.Errorf("setting provider config: %w", err)
	}

	return wh.AddProviderWithInterval(name, provider, cfg.GetProviderInterval(name))
}
