package cross

import (
	"context"
	"fmt"
	"os"

	"github.com/martinsuchenak/cableplan/internal/config"
	"github.com/martinsuchenak/cableplan/internal/cross"
	"github.com/martinsuchenak/cableplan/internal/model"
	"github.com/paularlott/cli"

	"gopkg.in/yaml.v3"
)

// Command builds the cross-validate command: reconcile an exported BOM
// against freshly derived intent. Exit codes follow the validate
// command: 1 on any FAIL, 2 under strict with only WARNs.
func Command() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "cross-validate",
		Usage:       "Reconcile a BOM against derived cabling intent",
		Description: "Independently re-derives the cable demand from topology, nodes, and policy, then reconciles a previously generated BOM against it to find missing, phantom, and mis-binned items",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "bom",
				Usage:        "Path to the candidate BOM YAML",
				DefaultValue: cfg.BOMPath(),
			},
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
			report := cross.Run(cross.Paths{
				Topology: cmd.GetString("topology"),
				Tors:     cmd.GetString("tors"),
				Nodes:    cmd.GetString("nodes"),
				Site:     cmd.GetString("site"),
				Policy:   cmd.GetString("policy"),
				BOM:      cmd.GetString("bom"),
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

func writeReport(report *model.CrossReport, path string) error {
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
	fmt.Printf("Cross-validation report written to %s (missing %d, phantom %d, mismatched bins %d)\n",
		path, report.Summary.Missing, report.Summary.Phantom, report.Summary.MismatchedBin)
	return nil
}
