package bom

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/bom"
	"github.com/martinsuchenak/cableplan/internal/config"
	"github.com/martinsuchenak/cableplan/internal/log"
	"github.com/martinsuchenak/cableplan/internal/manifest"
	"github.com/martinsuchenak/cableplan/internal/model"
	"github.com/paularlott/cli"
)

// Commands returns the BOM subcommands: calculate, roundtrip, estimate
func Commands() []*cli.Command {
	return []*cli.Command{
		CalculateCommand(),
		RoundtripCommand(),
		EstimateCommand(),
	}
}

// CalculateCommand derives links from the interface topology and
// exports the aggregated bill of materials.
func CalculateCommand() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "calculate",
		Usage:       "Calculate the cable bill of materials",
		Description: "Builds concrete links from the interface-level topology and site geometry, aggregates them by cable type and length bin, and exports the result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "topology",
				Usage:        "Path to the interface-level topology manifest",
				DefaultValue: cfg.NetworkTopologyPath(),
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
				Name:         "export",
				Usage:        "Export path for the BOM",
				DefaultValue: cfg.BOMPath(),
			},
			&cli.StringFlag{
				Name:         "format",
				Usage:        "Export format (yaml, csv)",
				DefaultValue: "yaml",
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			topology, err := manifest.LoadInterfaceTopology(cmd.GetString("topology"))
			if err != nil {
				return err
			}
			site, err := manifest.LoadSite(cmd.GetString("site"))
			if err != nil {
				return err
			}
			policy, err := loadPolicyOrDefault(cmd.GetString("policy"))
			if err != nil {
				return err
			}

			links := bom.BuildNetworkLinks(topology, site, policy)
			log.Info("calculated network links", "links", len(links))

			aggregated := bom.Aggregate(links, policy.Defaults.SparesFraction)
			warnings := bom.Warnings(topology, links)
			for _, w := range warnings {
				log.Warn(w)
			}

			exportPath := cmd.GetString("export")
			if strings.EqualFold(cmd.GetString("format"), "csv") {
				if err := bom.ExportCSV(aggregated, exportPath); err != nil {
					return err
				}
			} else {
				if err := bom.ExportYAML(aggregated, warnings, policy, exportPath); err != nil {
					return err
				}
			}
			fmt.Printf("Exported BOM to %s\n", exportPath)
			return nil
		},
	}
}

// RoundtripCommand re-reads an exported BOM and writes a summary digest
func RoundtripCommand() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "roundtrip",
		Usage:       "Summarize a previously exported BOM",
		Description: "Reads a BOM YAML file, computes line item and cable totals, and writes a summary YAML",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "bom",
				Usage:        "Path to the BOM YAML file",
				DefaultValue: cfg.BOMPath(),
			},
			&cli.StringFlag{
				Name:         "export",
				Usage:        "Export path for the summary",
				DefaultValue: cfg.BOMSummaryPath(),
			},
			&cli.BoolFlag{
				Name:         "strict",
				Usage:        "Record strict mode in the summary metadata",
				DefaultValue: false,
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			summary, err := bom.Roundtrip(cmd.GetString("bom"), cmd.GetString("export"), cmd.GetBool("strict"))
			if err != nil {
				return err
			}
			fmt.Printf("BOM summary: %d line items, %d cables, %d cable types\n",
				summary.TotalLineItems, summary.TotalCables, len(summary.CableTypes))
			return nil
		},
	}
}

// EstimateCommand prints heuristic cable counts from policy defaults
func EstimateCommand() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "estimate",
		Usage:       "Heuristic cable counts without site geometry",
		Description: "Estimates cable counts per link class from policy and site defaults, before any manifests exist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "policy",
				Usage:        "Path to the cabling policy",
				DefaultValue: cfg.PolicyPath(),
			},
			&cli.BoolFlag{
				Name:         "include-spine-links",
				Usage:        "Include leaf to spine uplinks in the estimate",
				DefaultValue: true,
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			policy, err := loadPolicyOrDefault(cmd.GetString("policy"))
			if err != nil {
				return err
			}

			est := bom.NewEstimate(policy, cmd.GetBool("include-spine-links"))

			fmt.Println("Cabling Estimator (heuristic)")
			fmt.Println()
			for _, class := range []bom.ClassEstimate{est.LeafToNode, est.LeafToSpine, est.Mgmt, est.Wan} {
				fmt.Printf("%s: %d (with spares: %d)\n", class.Label, class.Count, class.WithSpares)
			}
			fmt.Println()
			fmt.Printf("Bins - SFP28: %s  QSFP28: %s  RJ45: %s\n",
				joinInts(est.SFP28Bins), joinInts(est.QSFP28Bins), joinInts(est.RJ45Bins))
			fmt.Printf("Assumes %d racks x %d nodes per rack; %d QSFP28 uplinks per ToR; %d RJ45 mgmt per node.\n",
				est.NumRacks, est.NodesPerRack, est.UplinksPerRack, est.MgmtPerNode)
			return nil
		},
	}
}

// loadPolicyOrDefault tolerates a missing policy file: the BOM tools
// are usable before any doctrine exists, so absence means built-in
// defaults rather than an error.
func loadPolicyOrDefault(path string) (*model.CablingPolicy, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug("no cabling policy found, using built-in defaults", "path", path)
		return model.DefaultPolicy(), nil
	}
	policy, _, err := manifest.LoadPolicy(path)
	return policy, err
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}
