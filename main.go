package main

import (
	"context"
	"os"

	bomcmd "github.com/martinsuchenak/cableplan/cmd/bom"
	coolingcmd "github.com/martinsuchenak/cableplan/cmd/cooling"
	crosscmd "github.com/martinsuchenak/cableplan/cmd/cross"
	graphcmd "github.com/martinsuchenak/cableplan/cmd/graph"
	rackcmd "github.com/martinsuchenak/cableplan/cmd/rack"
	validatecmd "github.com/martinsuchenak/cableplan/cmd/validate"
	"github.com/martinsuchenak/cableplan/internal/log"
	"github.com/paularlott/cli"
	"github.com/paularlott/cli/env"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists
	env.Load()

	// Initialize structured logging
	log.Configure("info", "console")

	rootCmd := &cli.Command{
		Name:        "cableplan",
		Version:     version,
		Usage:       "Data-center cabling planner and auditor",
		Description: "Validates network manifests against engineering rules, derives a deterministic cable bill of materials, and reconciles existing BOMs against freshly derived intent",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "log-level",
				Usage:        "Log level (trace, debug, info, warn, error)",
				DefaultValue: "info",
				EnvVars:      []string{"CABLEPLAN_LOG_LEVEL"},
				Global:       true,
			},
			&cli.StringFlag{
				Name:         "log-format",
				Usage:        "Log format (console, json)",
				DefaultValue: "console",
				EnvVars:      []string{"CABLEPLAN_LOG_FORMAT"},
				Global:       true,
			},
		},
		PreRun: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.GetString("log-level")
			logFormat := cmd.GetString("log-format")
			log.Configure(logLevel, logFormat)
			return ctx, nil
		},
		Commands: []*cli.Command{
			validatecmd.Command(),
			{
				Name:        "bom",
				Usage:       "Bill of materials commands",
				Description: "Calculate, summarize, and estimate cable bills of materials",
				Commands:    bomcmd.Commands(),
			},
			crosscmd.Command(),
			coolingcmd.Command(),
			rackcmd.Command(),
			graphcmd.Command(),
		},
	}

	if err := rootCmd.Execute(context.Background()); err != nil {
		log.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
