package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/coursexpert/coursexpert/pkg/compare"
	"github.com/coursexpert/coursexpert/pkg/notify"
)

// CompareCommand creates the compare command
func CompareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Build a comparison set by toggling course IDs in order",
		ArgsUsage: "COURSE_ID...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "page",
				Usage: "Use compare-page rules: capacity 4, refuse when full, minimum of 2",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "show",
				Usage: "Show the compared courses side by side after toggling",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return compareCourses(ctx, c.String("config"), c.Args().Slice(), c.Bool("page"), c.Bool("show"))
		},
	}
}

// compareCourses replays a sequence of selection toggles and prints the
// resulting comparison set. Each argument is one toggle, applied in order,
// so repeating an ID removes it again.
func compareCourses(ctx context.Context, configPath string, ids []string, page, show bool) error {
	if len(ids) == 0 {
		return fmt.Errorf("at least one course ID is required")
	}

	notifier := notify.NewLogNotifier("compare")
	var tracker *compare.Tracker
	if page {
		tracker = compare.NewPageTracker(notifier)
	} else {
		tracker = compare.NewTracker(notifier)
	}

	for _, id := range ids {
		tracker.Toggle(id)
	}

	selected := tracker.IDs()
	if len(selected) == 0 {
		fmt.Println("Comparison set is empty")
		return nil
	}

	fmt.Printf("Comparing: %s\n", strings.Join(selected, ", "))

	if !show {
		return nil
	}

	collection, registry, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := registry.Close(); err != nil {
			fmt.Printf("Warning: failed to close registry: %v\n", err)
		}
	}()

	courses := collection.Courses()
	fmt.Println()
	for _, id := range selected {
		found := false
		for _, course := range courses {
			if course.ID == id {
				fmt.Printf("%s\n  %s | %s | %s | %s | %.1f stars | %s students\n",
					course.Title, course.Platform, course.Level, course.Price,
					course.Duration, course.Rating, course.Students)
				found = true
				break
			}
		}
		if !found {
			fmt.Printf("%s\n  (not found in catalog)\n", id)
		}
	}

	return nil
}
