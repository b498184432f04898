package cmd

import (
	"context"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/config"
	"github.com/coursexpert/coursexpert/pkg/realtime"
	"github.com/coursexpert/coursexpert/pkg/warehouse"
)

// createProvidersFromConfig creates and configures providers from the config
func createProvidersFromConfig(registry *catalog.Registry, cfg *config.Config) error {
	for _, name := range cfg.ListProviders() {
		providerType, rawConfig, err := cfg.GetProviderConfig(name)
		if err != nil {
			return fmt.Errorf("getting config for provider %s: %w", name, err)
		}

		// Create provider with empty config first
		if err := registry.CreateProvider(name, providerType, nil); err != nil {
			return fmt.Errorf("creating provider %s: %w", name, err)
		}

		provider, err := registry.GetProvider(name)
		if err != nil {
			return fmt.Errorf("provider %s not found after creation: %w", name, err)
		}

		// Convert the raw config to the provider's expected type
		providerConfig, err := convertRawConfigToType(provider, rawConfig)
		if err != nil {
			return fmt.Errorf("converting config for provider %s: %w", name, err)
		}

		if err := provider.SetConfig(providerConfig); err != nil {
			return fmt.Errorf("setting config for provider %s: %w", name, err)
		}
	}

	return nil
}

// convertRawConfigToType converts raw config to the provider's expected type
// by round-tripping through TOML.
func convertRawConfigToType(provider catalog.Provider, rawConfig interface{}) (interface{}, error) {
	configType := provider.ConfigType()

	if rawConfig == nil {
		return configType, nil
	}

	configData, err := toml.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("marshaling config data: %w", err)
	}

	if err := toml.Unmarshal(configData, configType); err != nil {
		return nil, fmt.Errorf("unmarshaling provider config: %w", err)
	}

	return configType, nil
}

// buildWarehouse wires every configured provider into a warehouse over the
// given collection.
func buildWarehouse(registry *catalog.Registry, cfg *config.Config, collection *catalog.Collection, hub *realtime.Hub) (*warehouse.Warehouse, error) {
	wh := warehouse.NewWarehouse(warehouse.Config{
		DefaultInterval: cfg.RefreshInterval.Duration,
	}, collection, hub)

	for name, provider := range registry.GetAllProviders() {
		interval := cfg.GetProviderInterval(name)
		if err := wh.AddProviderWithInterval(name, provider, interval); err != nil {
			return nil, fmt.Errorf("adding provider to warehouse: %w", err)
		}
	}

	return wh, nil
}

// loadCatalog is the shared setup for one-shot commands: load config, build
// providers, fetch every catalog once into a fresh collection.
func loadCatalog(ctx context.Context, configPath string) (*catalog.Collection, *catalog.Registry, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	registry := catalog.GetGlobalRegistry()

	if err := createProvidersFromConfig(registry, cfg); err != nil {
		return nil, nil, fmt.Errorf("creating providers: %w", err)
	}

	collection := catalog.NewCollection()
	wh, err := buildWarehouse(registry, cfg, collection, nil)
	if err != nil {
		return nil, nil, err
	}

	if err := wh.FetchOnce(ctx); err != nil {
		// Partial catalogs are still useful; report and continue.
		fmt.Printf("Warning: some providers failed to fetch: %v\n", err)
	}

	return collection, registry, nil
}
