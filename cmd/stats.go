package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show catalog statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(ctx, c.String("config"))
		},
	}
}

// showStats fetches the catalog once and displays per-provider statistics
func showStats(ctx context.Context, configPath string) error {
	collection, registry, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := registry.Close(); err != nil {
			fmt.Printf("Warning: failed to close registry: %v\n", err)
		}
	}()

	providers := collection.Providers()
	if len(providers) == 0 {
		fmt.Println("No providers contributed courses")
		return nil
	}

	fmt.Printf("Catalog snapshot: %s\n\n", collection.Snapshot())
	for _, name := range providers {
		fmt.Printf("  %s: %d courses\n", name, len(collection.ProviderCourses(name)))
	}
	fmt.Printf("\nTotal: %d courses across %d providers\n", collection.Len(), len(providers))

	return nil
}
