// Command ingest is the Scoracle standings snapshot CLI.
//
// Usage:
//
//	scoracle-ingest refresh
//	scoracle-ingest refresh --force standings
//	scoracle-ingest status
//	scoracle-ingest standings --team boston-celtics
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-standings/internal/app"
	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/maintenance"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "scoracle-ingest",
		Short: "Scoracle standings snapshot CLI",
	}

	root.AddCommand(refreshCmd())
	root.AddCommand(statusCmd())
	root.AddCommand(standingsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// refresh command
// --------------------------------------------------------------------------

func refreshCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "refresh [dataset...]",
		Short: "Refresh dataset snapshots from the stats API",
		Long: "Refresh dataset snapshots (team-stats, standings). Without --force only " +
			"snapshots older than their max age are fetched. --force also seeds missing snapshots.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				datasets, err := selectDatasets(a.Config, args)
				if err != nil {
					return err
				}
				start := time.Now()
				result := maintenance.RefreshAll(ctx, a.Cache, datasets, force)
				logger.Info("Refresh finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				if result.Failed() {
					for _, e := range result.Errors {
						logger.Error("refresh error", "error", e)
					}
					return fmt.Errorf("%d dataset(s) failed", len(result.Errors))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Fetch regardless of snapshot age and report fetch failures")
	return cmd
}

// --------------------------------------------------------------------------
// status command
// --------------------------------------------------------------------------

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show snapshot ages without refreshing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				statuses := make([]cache.Status, 0, 2)
				for _, ds := range a.Config.Datasets() {
					st, err := a.Cache.Status(ctx, ds)
					if err != nil {
						logger.Warn("Snapshot unavailable", "dataset", ds.Name, "error", err)
					}
					statuses = append(statuses, st)
				}
				return writeJSON(cmd, statuses)
			})
		},
	}
}

// --------------------------------------------------------------------------
// standings command
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	var teamID string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Build the enriched standings and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, a *app.App) error {
				res, err := a.Standings.Build(ctx)
				if err != nil {
					return err
				}
				if teamID == "" {
					return writeJSON(cmd, res)
				}
				team, ok := res.Team(teamID)
				if !ok {
					return fmt.Errorf("no team with ID %q", teamID)
				}
				return writeJSON(cmd, team)
			})
		},
	}
	cmd.Flags().StringVar(&teamID, "team", "", "Print a single team by ID")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading, component wiring, and context cancellation.
func run(fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// selectDatasets maps names to descriptors; no names means all datasets.
func selectDatasets(cfg *config.Config, names []string) ([]cache.Dataset, error) {
	if len(names) == 0 {
		return cfg.Datasets(), nil
	}
	out := make([]cache.Dataset, 0, len(names))
	for _, name := range names {
		ds, ok := cfg.Dataset(name)
		if !ok {
			return nil, fmt.Errorf("unknown dataset %q (want team-stats or standings)", name)
		}
		out = append(out, ds)
	}
	return out, nil
}

func writeJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
