package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/coursexpert/coursexpert/cmd"
	"github.com/coursexpert/coursexpert/pkg/config"
	clog "github.com/coursexpert/coursexpert/pkg/log"
)

func main() {
	app := &cli.Command{
		Name:  "coursexpert",
		Usage: "A course discovery and comparison engine",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("debug") {
				clog.SetGlobalDebug(true)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.ProviderCommand(),
			cmd.FetchCommand(),
			cmd.ListCommand(),
			cmd.SearchCommand(),
			cmd.SuggestCommand(),
			cmd.CompareCommand(),
			cmd.ServeCommand(),
			cmd.WebCommand(),
			cmd.StatsCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		log.Fatalf("Failed to get default config path: %v", err)
	}
	return path
}
