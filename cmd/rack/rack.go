package rack

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/config"
	"github.com/martinsuchenak/cableplan/internal/manifest"
	"github.com/martinsuchenak/cableplan/internal/rack"
	"github.com/paularlott/cli"

	"golang.org/x/term"
)

// Command builds the rack elevation command
func Command() *cli.Command {
	cfg := config.Load(nil)
	return &cli.Command{
		Name:        "rack",
		Usage:       "Render a vertical rack elevation",
		Description: "Renders the chassis assignments of one rack as a top-down elevation view",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "rack",
				Usage:    "Rack id to render",
				Required: true,
			},
			&cli.StringFlag{
				Name:         "nodes",
				Usage:        "Path to the node manifest",
				DefaultValue: cfg.NodesPath(),
			},
			&cli.IntFlag{
				Name:         "height",
				Usage:        "Rack height in U",
				DefaultValue: rack.DefaultRackU,
			},
			&cli.BoolFlag{
				Name:         "ascii",
				Usage:        "Force plain ASCII output",
				DefaultValue: false,
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			nodes, err := manifest.LoadNodes(cmd.GetString("nodes"))
			if err != nil {
				return err
			}

			elevation := rack.Render(nodes, cmd.GetString("rack"), cmd.GetInt("height"))

			out := elevation.String()
			if cmd.GetBool("ascii") || !term.IsTerminal(int(os.Stdout.Fd())) {
				out = asciiSlots(out)
			}
			fmt.Print(out)
			return nil
		},
	}
}

// asciiSlots swaps the block glyphs for plain ASCII when output is not
// a terminal (or on request), keeping piped output diff-friendly.
func asciiSlots(s string) string {
	s = strings.ReplaceAll(s, "[█]", "[#]")
	return strings.ReplaceAll(s, "[■]", "[=]")
}
