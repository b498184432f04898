package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/coursexpert/coursexpert/pkg/catalog"
	"github.com/coursexpert/coursexpert/pkg/filter"
	"github.com/coursexpert/coursexpert/pkg/search"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 1, 0)

	courseStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1).
			Margin(0, 0, 1, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Margin(1, 0, 0, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the course catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Free-text search query",
			},
			&cli.StringSliceFlag{
				Name:  "provider",
				Usage: "Limit search to specific provider(s). Can be used multiple times",
			},
			&cli.StringSliceFlag{
				Name:  "platform",
				Usage: "Filter by platform (e.g. Coursera, Udemy, NPTEL)",
			},
			&cli.StringSliceFlag{
				Name:  "level",
				Usage: "Filter by difficulty level (e.g. Beginner, Advanced)",
			},
			&cli.StringSliceFlag{
				Name:  "price",
				Usage: "Filter by price range (e.g. Free, '<$20', '$20-$50')",
			},
			&cli.StringSliceFlag{
				Name:  "duration",
				Usage: "Filter by duration range (e.g. '< 5 hours', '30+ hours')",
			},
			&cli.StringSliceFlag{
				Name:  "rating",
				Usage: "Filter by minimum rating (e.g. '4+ stars')",
			},
			&cli.StringSliceFlag{
				Name:  "format",
				Usage: "Filter by course format tag",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			spec := filter.Spec{
				Platforms:   c.StringSlice("platform"),
				Levels:      c.StringSlice("level"),
				PriceRanges: c.StringSlice("price"),
				Durations:   c.StringSlice("duration"),
				Ratings:     c.StringSlice("rating"),
				Formats:     c.StringSlice("format"),
			}
			return searchCatalog(ctx, c.String("config"), c.String("query"),
				c.StringSlice("provider"), spec, c.Int("limit"))
		},
	}
}

// searchCatalog runs the combined filter and search pipeline over a freshly
// fetched catalog and renders the results grouped by platform.
func searchCatalog(ctx context.Context, configPath, query string, providers []string, spec filter.Spec, limit int) error {
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
	results := service.Search(search.Params{
		Query:     query,
		Providers: providers,
		Filters:   spec,
		Page:      1,
		Limit:     limit,
	})

	fmt.Println(renderSearchResults(query, spec, results))
	return nil
}

func renderSearchResults(query string, spec filter.Spec, results *search.Results) string {
	var b strings.Builder

	heading := "Course Catalog"
	if query != "" {
		heading = fmt.Sprintf("Results for %q", query)
	}
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n")

	if spec.ActiveCount() > 0 {
		b.WriteString(metaStyle.Render(fmt.Sprintf("%d filter(s) active", spec.ActiveCount())))
		b.WriteString("\n")
	}

	if len(results.Courses) == 0 {
		b.WriteString(noDataStyle.Render("No courses match."))
		b.WriteString("\n")
		return b.String()
	}

	titleCaser := cases.Title(language.English)

	byPlatform := make(map[string][]catalog.Course)
	for _, course := range results.Courses {
		byPlatform[course.Platform] = append(byPlatform[course.Platform], course)
	}

	platforms := make([]string, 0, len(byPlatform))
	for platform := range byPlatform {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	for _, platform := range platforms {
		courses := byPlatform[platform]
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", titleCaser.String(platform), len(courses))))
		b.WriteString("\n")

		for _, course := range courses {
			b.WriteString(courseStyle.Render(renderCourse(course)))
			b.WriteString("\n")
		}
	}

	b.WriteString(metaStyle.Render(fmt.Sprintf("Total: %d courses (page %d/%d)",
		results.TotalCount, results.Page, results.TotalPages)))
	b.WriteString("\n")

	return b.String()
}

func renderCourse(course catalog.Course) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s\n", course.Title))
	b.WriteString(metaStyle.Render(fmt.Sprintf("%s | %s | %s | %s | %.1f stars",
		course.Instructor, course.Level, course.Price, course.Duration, course.Rating)))

	if len(course.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(metaStyle.Render("Tags: " + strings.Join(course.Tags, ", ")))
	}
	if course.Link != "" && course.Link != "N/A" {
		b.WriteString("\n")
		b.WriteString(linkStyle.Render(course.Link))
	}

	return b.String()
}
