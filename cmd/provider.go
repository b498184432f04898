package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/config"
)

// ProviderCommand creates the provider command with subcommands
func ProviderCommand() *cli.Command {
	return &cli.Command{
		Name:  "provider",
		Usage: "Manage course providers",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List configured providers",
				Action: func(ctx context.Context, c *cli.Command) error {
					return listProviders(c.String("config"))
				},
			},
			{
				Name:  "types",
				Usage: "List available provider types",
				Action: func(ctx context.Context, c *cli.Command) error {
					return listProviderTypes()
				},
			},
			{
				Name:  "remove",
				Usage: "Remove a provider",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Provider name",
						Required: true,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return removeProvider(c.String("config"), c.String("name"))
				},
			},
		},
	}
}

// listProviders lists all configured providers
func listProviders(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	providers := cfg.ListProviders()
	if len(providers) == 0 {
		fmt.Println("No providers configured")
		return nil
	}

	fmt.Println("Configured providers:")
	for _, name := range providers {
		providerType, _, err := cfg.GetProviderConfig(name)
		if err != nil {
			fmt.Printf("  %s: error loading config: %v\n", name, err)
			continue
		}
		fmt.Printf("  %s (%s), refresh every %v\n", name, providerType, cfg.GetProviderInterval(name))
	}

	return nil
}

// listProviderTypes lists the provider prototypes compiled into the binary
func listProviderTypes() error {
	types := catalog.GetGlobalRegistry().PrototypeTypes()
	if len(types) == 0 {
		fmt.Println("No provider types available")
		return nil
	}

	fmt.Println("Available provider types:")
	for _, t := range types {
		fmt.Printf("  %s\n", t)
	}
	return nil
}

// removeProvider removes a provider from the configuration
func removeProvider(configPath, name string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, _, err := cfg.GetProviderConfig(name); err != nil {
		return fmt.Errorf("provider %s not configured", name)
	}

	cfg.RemoveProvider(name)
	if err := cfg.SaveConfig(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("Provider %s removed\n", name)
	return nil
}
