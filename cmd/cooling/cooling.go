package cooling

import (
	"context"
	"fmt"
	"strconv"

	"github.com/martinsuchenak/cableplan/internal/config"
	"github.com/martinsuchenak/cableplan/internal/cooling"
	"github.com/martinsuchenak/cableplan/internal/manifest"
	"github.com/paularlott/cli"
)

// Command builds the cooling estimate command
func Command() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "cooling",
		Usage:       "Estimate per-rack and site cooling demand",
		Description: "Estimates cooling in BTU/hr and tons per branch circuit, either from circuit capacity assumptions or modeled rack loads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "mode",
				Usage:        "Estimation mode (by-circuit, by-load, measured)",
				DefaultValue: cooling.ModeByCircuit,
			},
			&cli.StringFlag{
				Name:         "feeds",
				Usage:        "Path to the power feed inventory",
				DefaultValue: cfg.FeedsPath(),
			},
			&cli.StringFlag{
				Name:         "budget",
				Usage:        "Path to the rack power budget (by-load mode)",
				DefaultValue: cfg.PowerBudgetPath(),
			},
			&cli.StringFlag{
				Name:         "headroom",
				Usage:        "Cooling headroom multiplier",
				DefaultValue: "1.25",
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			feeds, err := manifest.LoadPowerFeeds(cmd.GetString("feeds"))
			if err != nil {
				return err
			}

			headroom, err := strconv.ParseFloat(cmd.GetString("headroom"), 64)
			if err != nil {
				return fmt.Errorf("invalid headroom %q: %w", cmd.GetString("headroom"), err)
			}

			report, err := cooling.Estimate(
				cmd.GetString("mode"),
				feeds,
				cmd.GetString("budget"),
				cooling.Options{Headroom: headroom},
			)
			if err != nil {
				return err
			}

			fmt.Printf("Cooling Estimator (%s)\n\n", report.Mode)
			for _, feed := range report.Feeds {
				fmt.Printf("%s: %.0f BTU/hr -> %.1f tons\n", feed.FeedID, feed.BTUPerHr, feed.Tons)
			}
			fmt.Printf("\nTotal: %.0f BTU/hr -> %.1f tons\n", report.TotalBTUPerHr, report.TotalTons)
			if report.Headroom != 1.0 {
				fmt.Printf("Includes %+.0f%% headroom\n", (report.Headroom-1)*100)
			}
			return nil
		},
	}
}
