package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/config"
	"github.com/coursexpert/coursexpert/pkg/realtime"
)

// FetchCommand creates the fetch command
func FetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch courses from all providers",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stream",
				Usage: "Print courses to stdout as they are received",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: "Specific provider to fetch from",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return fetchCourses(ctx, c.String("config"), c.Bool("stream"), c.String("provider"))
		},
	}
}

// fetchCourses fetches courses from configured providers
func fetchCourses(ctx context.Context, configPath string, stream bool, providerName string) error {
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

	if providerName != "" {
		if _, err := registry.GetProvider(providerName); err != nil {
			return fmt.Errorf("provider '%s' not found", providerName)
		}
		for _, name := range registry.ListProviders() {
			if name != providerName {
				if err := registry.RemoveProvider(name); err != nil {
					return fmt.Errorf("removing provider %s: %w", name, err)
				}
			}
		}
	}

	collection := catalog.NewCollection()

	var hub *realtime.Hub
	var done chan struct{}
	if stream {
		hub = realtime.NewHub(0)
		id, events := hub.Register()
		defer hub.Unregister(id)

		done = make(chan struct{})
		go func() {
			defer close(done)
			for event := range events {
				if event.Type != "course" {
					continue
				}
				fmt.Printf("[%s] %s (%s, %s)\n",
					event.Course.Provider, event.Course.Title,
					event.Course.Level, event.Course.Price)
			}
		}()
		fmt.Println("Streaming courses as they are received...")
	}

	wh, err := buildWarehouse(registry, cfg, collection, hub)
	if err != nil {
		return err
	}

	if err := wh.FetchOnce(ctx); err != nil {
		return fmt.Errorf("fetching courses: %w", err)
	}

	if stream {
		hub.Close()
		<-done
	}

	fmt.Printf("Fetch completed: %d courses from %d providers\n",
		collection.Len(), len(collection.Providers()))
	return nil
}
