package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/windoze95/mealquest-api/internal/browse"
	"github.com/windoze95/mealquest-api/internal/models"
)

const defaultServer = "http://localhost:8080"

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "mealquest",
		Usage: "Browse recipes from the MealQuest API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Value:   defaultServer,
				Usage:   "Base URL of the MealQuest API server",
				Sources: cli.EnvVars("MEALQUEST_SERVER"),
			},
		},
		Commands: []*cli.Command{
			searchCmd(out),
			showCmd(out),
			filtersCmd(out),
		},
	}
}

func newFetcher(cmd *cli.Command) *browse.HTTPFetcher {
	return browse.NewHTTPFetcher(cmd.String("server"), &http.Client{Timeout: 30 * time.Second})
}

func searchCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search recipes by name or ingredient",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Search term"},
			&cli.StringFlag{Name: "area", Usage: "Filter by area (e.g., Italian)"},
			&cli.StringFlag{Name: "category", Usage: "Filter by category (e.g., Dessert)"},
			&cli.IntFlag{Name: "page", Value: 1, Usage: "Page number"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c := browse.NewController(newFetcher(cmd), browse.WithParams(browse.Params{
				Search:   strings.TrimSpace(cmd.String("search")),
				Area:     cmd.String("area"),
				Category: cmd.String("category"),
				Page:     int(cmd.Int("page")),
			}))
			c.Start(ctx)
			c.Wait()

			state := c.State()
			if state.Status == browse.StatusError {
				return fmt.Errorf("search failed: %s", state.Err)
			}
			return printPage(out, state.Data)
		},
	}
}

func showCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a recipe",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := strings.TrimSpace(cmd.Args().First())
			if id == "" {
				return errors.New("recipe id is required")
			}

			recipe, err := newFetcher(cmd).FetchRecipe(ctx, id)
			if errors.Is(err, browse.ErrNotFound) {
				return fmt.Errorf("recipe %s not found", id)
			}
			if err != nil {
				return fmt.Errorf("failed to fetch recipe %s: %w", id, err)
			}
			return printRecipe(out, recipe)
		},
	}
}

func filtersCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "List the available areas and categories",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := newFetcher(cmd).FetchFilters(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch filters: %w", err)
			}
			fmt.Fprintf(out, "Areas:      %s\n", strings.Join(opts.Areas, ", "))
			fmt.Fprintf(out, "Categories: %s\n", strings.Join(opts.Categories, ", "))
			return nil
		},
	}
}

func printPage(out io.Writer, page *models.PageResult) error {
	if page == nil || len(page.Items) == 0 {
		fmt.Fprintln(out, "No recipes found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAREA\tCATEGORY\tTAGS")
	for _, r := range page.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, orDash(r.Area), orDash(r.Category), strings.Join(r.Tags, ","))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPage %d of %d (%d recipes)\n", page.Page, page.TotalPages, page.Total)
	return nil
}

func printRecipe(out io.Writer, r *models.Recipe) error {
	fmt.Fprintf(out, "%s (%s)\n", r.Name, r.ID)
	fmt.Fprintf(out, "Area: %s  Category: %s\n", orDash(r.Area), orDash(r.Category))
	if len(r.Tags) > 0 {
		fmt.Fprintf(out, "Tags: %s\n", strings.Join(r.Tags, ", "))
	}

	if len(r.Ingredients) > 0 {
		fmt.Fprintln(out, "\nIngredients:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, ing := range r.Ingredients {
			fmt.Fprintf(w, "  %s\t%s\n", ing.Measure, ing.Ingredient)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if r.Instructions != nil {
		fmt.Fprintf(out, "\nInstructions:\n%s\n", *r.Instructions)
	}
	if r.YouTube != nil {
		fmt.Fprintf(out, "\nVideo: %s\n", *r.YouTube)
	}
	return nil
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
