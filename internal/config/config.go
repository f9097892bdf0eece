package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the manifest and output locations. Every command builds
// its default paths from here so a repo can relocate its doctrine tree
// with a single environment variable.
type Config struct {
	DoctrineDir string // root of the manifest tree
	OutputDir   string // where BOMs and reports land
	ConfigFile  string // path to .env file (if loaded)
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Command-line parameters (passed as opts)
// 2. .env file (if exists)
// 3. Environment variables
// 4. Default values
func Load(opts *Config) *Config {
	cfg := &Config{}

	envFile := ".env"
	if _, err := os.Stat(envFile); err == nil {
		if err := loadFromEnvFile(cfg, envFile); err != nil {
			fmt.Printf("Warning: Failed to load .env file: %v\n", err)
		} else {
			cfg.ConfigFile = envFile
		}
	}

	cfg.DoctrineDir = coalesce(cfg.DoctrineDir, os.Getenv("CABLEPLAN_DOCTRINE_DIR"), "doctrine")
	cfg.OutputDir = coalesce(cfg.OutputDir, os.Getenv("CABLEPLAN_OUTPUT_DIR"), "outputs")

	if opts != nil {
		if opts.DoctrineDir != "" {
			cfg.DoctrineDir = opts.DoctrineDir
		}
		if opts.OutputDir != "" {
			cfg.OutputDir = opts.OutputDir
		}
	}

	return cfg
}

// Manifest path helpers, all rooted under DoctrineDir

func (c *Config) TopologyPath() string {
	return filepath.Join(c.DoctrineDir, "network", "topology.yaml")
}

func (c *Config) NetworkTopologyPath() string {
	return filepath.Join(c.DoctrineDir, "network", "network-topology.yaml")
}

func (c *Config) TorsPath() string {
	return filepath.Join(c.DoctrineDir, "network", "tors.yaml")
}

func (c *Config) NodesPath() string {
	return filepath.Join(c.DoctrineDir, "network", "nodes.yaml")
}

func (c *Config) SitePath() string {
	return filepath.Join(c.DoctrineDir, "network", "site.yaml")
}

func (c *Config) PolicyPath() string {
	return filepath.Join(c.DoctrineDir, "network", "cabling-policy.yaml")
}

func (c *Config) FeedsPath() string {
	return filepath.Join(c.DoctrineDir, "power", "feeds.yaml")
}

func (c *Config) PowerBudgetPath() string {
	return filepath.Join(c.DoctrineDir, "power", "rack-power-budget.yaml")
}

func (c *Config) BOMPath() string {
	return filepath.Join(c.OutputDir, "cabling_bom.yaml")
}

func (c *Config) BOMSummaryPath() string {
	return filepath.Join(c.OutputDir, "cabling_bom_summary.yaml")
}

// String returns a string representation of the config source
func (c *Config) String() string {
	if c.ConfigFile != "" {
		return fmt.Sprintf(".env file (%s)", c.ConfigFile)
	}
	return "environment variables"
}

// loadFromEnvFile loads configuration from a .env file
func loadFromEnvFile(cfg *Config, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"")

		switch key {
		case "CABLEPLAN_DOCTRINE_DIR":
			cfg.DoctrineDir = value
		case "CABLEPLAN_OUTPUT_DIR":
			cfg.OutputDir = value
		}
	}

	return scanner.Err()
}

// coalesce returns the first non-empty string value
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
