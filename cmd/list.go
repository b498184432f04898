package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List courses from a provider",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "provider",
				Usage:    "Provider name to list courses from",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of courses to show",
				Value: 20,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return listCourses(ctx, c.String("config"), c.String("provider"), c.Int("limit"))
		},
	}
}

// listCourses lists courses from a specific provider
func listCourses(ctx context.Context, configPath, providerName string, limit int) error {
	collection, registry, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := registry.Close(); err != nil {
			fmt.Printf("Warning: failed to close registry: %v\n", err)
		}
	}()

	if _, err := registry.GetProvider(providerName); err != nil {
		return fmt.Errorf("provider '%s' not found", providerName)
	}

	courses := collection.ProviderCourses(providerName)
	if len(courses) == 0 {
		fmt.Printf("No courses found for provider '%s'\n", providerName)
		return nil
	}

	if limit > 0 && len(courses) > limit {
		courses = courses[:limit]
	}

	fmt.Printf("=== %s (%d courses) ===\n\n", providerName, len(courses))
	for i, course := range courses {
		fmt.Printf("%d. %s\n", i+1, course.Summary())
		if i < len(courses)-1 {
			fmt.Println()
		}
	}

	return nil
}
