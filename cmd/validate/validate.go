package validate

import (
	"context"
	"fmt"
	"os"

	"github.com/martinsuchenak/cableplan/internal/config"
	"github.com/martinsuchenak/cableplan/internal/model"
	"github.com/martinsuchenak/cableplan/internal/validate"
	"github.com/paularlott/cli"

	"gopkg.in/yaml.v3"
)

// Command builds the validate command: run all manifest rule passes
// and report findings. Exit code 0 means clean, 1 means at least one
// FAIL, 2 means strict mode with only WARNs.
func Command() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "validate",
		Usage:       "Validate cabling manifests against engineering rules",
		Description: "Runs the port, compatibility, oversubscription, completeness, length, redundancy, and policy sanity checks over the network manifests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "topology",
				Usage:        "Path to the topology manifest",
				DefaultValue: cfg.TopologyPath(),
			},
			&cli.StringFlag{
				Name:         "tors",
				Usage:        "Path to the ToR inventory manifest",
				DefaultValue: cfg.TorsPath(),
			},
			&cli.StringFlag{
				Name:         "nodes",
				Usage:        "Path to the node manifest",
				DefaultValue: cfg.NodesPath(),
			},
			&cli.StringFlag{
				Name:         "site",
				Usage:        "Path to the optional site geometry manifest",
				DefaultValue: cfg.SitePath(),
			},
			&cli.StringFlag{
				Name:         "policy",
				Usage:        "Path to the cabling policy",
				DefaultValue: cfg.PolicyPath(),
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Write the report YAML to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:         "strict",
				Usage:        "Exit non-zero when warnings are present",
				DefaultValue: false,
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			report := validate.Run(validate.Paths{
				Topology: cmd.GetString("topology"),
				Tors:     cmd.GetString("tors"),
				Nodes:    cmd.GetString("nodes"),
				Site:     cmd.GetString("site"),
				Policy:   cmd.GetString("policy"),
			})

			if err := writeReport(report, cmd.GetString("output")); err != nil {
				return err
			}

			if report.HasFailures() {
				os.Exit(1)
			}
			if cmd.GetBool("strict") && report.HasWarnings() {
				os.Exit(2)
			}
			return nil
		},
	}
}

func writeReport(report *model.Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Report written to %s (pass %d, warn %d, fail %d)\n",
		path, report.Summary.Pass, report.Summary.Warn, report.Summary.Fail)
	return nil
}
