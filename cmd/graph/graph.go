package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/martinsuchenak/cableplan/internal/config"
	"github.com/martinsuchenak/cableplan/internal/graph"
	"github.com/martinsuchenak/cableplan/internal/manifest"
	"github.com/paularlott/cli"
)

// Command builds the graph command: render the leaf-spine fabric as
// Graphviz DOT text for external layout tools.
func Command() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "graph",
		Usage:       "Render the network topology as Graphviz DOT",
		Description: "Emits a DOT digraph of the leaf-spine fabric from the interface-level topology",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "topology",
				Usage:        "Path to the interface-level topology manifest",
				DefaultValue: cfg.NetworkTopologyPath(),
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Write DOT to this file instead of stdout",
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			topology, err := manifest.LoadInterfaceTopology(cmd.GetString("topology"))
			if err != nil {
				return err
			}

			path := cmd.GetString("output")
			if path == "" {
				return graph.WriteNetworkDOT(os.Stdout, topology)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()

			if err := graph.WriteNetworkDOT(f, topology); err != nil {
				return err
			}
			fmt.Printf("DOT graph written to %s\n", path)
			return nil
		},
	}
}
