package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/coursexpert/coursexpert/pkg/search"
)

// SuggestCommand creates the suggest command
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Show search suggestions for a query prefix",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Query text to suggest for",
			},
			&cli.StringSliceFlag{
				Name:  "provider",
				Usage: "Limit suggestions to specific provider(s)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of suggestions",
				Value: search.DefaultSuggestionLimit,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return suggestTitles(ctx, c.String("config"), c.String("query"),
				c.StringSlice("provider"), c.Int("limit"))
		},
	}
}

func suggestTitles(ctx context.Context, configPath, query string, providers []string, limit int) error {
	collection, registry, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := registry.Close(); err != nil {
			fmt.Printf("Warning: failed to close registry: %v\n", err)
		}
	}()

	service := search.NewService(collection)
	suggestions := service.Suggest(providers, query, limit)

	if len(suggestions) == 0 {
		fmt.Println("No suggestions")
		return nil
	}

	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}
