package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := Load(nil)
	if cfg.DoctrineDir != "doctrine" {
		t.Errorf("DoctrineDir = %q, want doctrine", cfg.DoctrineDir)
	}
	if cfg.OutputDir != "outputs" {
		t.Errorf("OutputDir = %q, want outputs", cfg.OutputDir)
	}
	if cfg.String() != "environment variables" {
		t.Errorf("String() = %q", cfg.String())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CABLEPLAN_DOCTRINE_DIR", "/srv/doctrine")
	t.Setenv("CABLEPLAN_OUTPUT_DIR", "/srv/out")

	cfg := Load(nil)
	if cfg.DoctrineDir != "/srv/doctrine" {
		t.Errorf("DoctrineDir = %q, want /srv/doctrine", cfg.DoctrineDir)
	}
	if cfg.OutputDir != "/srv/out" {
		t.Errorf("OutputDir = %q, want /srv/out", cfg.OutputDir)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\nCABLEPLAN_DOCTRINE_DIR=\"manifests\"\nCABLEPLAN_OUTPUT_DIR=build\nIGNORED_KEY=value\nmalformed line\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Chdir(dir)

	cfg := Load(nil)
	if cfg.DoctrineDir != "manifests" {
		t.Errorf("DoctrineDir = %q, want manifests", cfg.DoctrineDir)
	}
	if cfg.OutputDir != "build" {
		t.Errorf("OutputDir = %q, want build", cfg.OutputDir)
	}
	if cfg.ConfigFile != ".env" {
		t.Errorf("ConfigFile = %q, want .env", cfg.ConfigFile)
	}
}

func TestLoadEnvFileBeatsEnvironment(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".env"), []byte("CABLEPLAN_DOCTRINE_DIR=from-file\n"), 0o644)
	t.Chdir(dir)
	t.Setenv("CABLEPLAN_DOCTRINE_DIR", "from-env")

	cfg := Load(nil)
	if cfg.DoctrineDir != "from-file" {
		t.Errorf("DoctrineDir = %q, .env should win over environment", cfg.DoctrineDir)
	}
}

func TestLoadOptsWinOverEverything(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CABLEPLAN_DOCTRINE_DIR", "from-env")

	cfg := Load(&Config{DoctrineDir: "from-opts"})
	if cfg.DoctrineDir != "from-opts" {
		t.Errorf("DoctrineDir = %q, opts should win", cfg.DoctrineDir)
	}
}

func TestPathHelpers(t *testing.T) {
	cfg := &Config{DoctrineDir: "d", OutputDir: "o"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"topology", cfg.TopologyPath(), filepath.Join("d", "network", "topology.yaml")},
		{"network topology", cfg.NetworkTopologyPath(), filepath.Join("d", "network", "network-topology.yaml")},
		{"tors", cfg.TorsPath(), filepath.Join("d", "network", "tors.yaml")},
		{"nodes", cfg.NodesPath(), filepath.Join("d", "network", "nodes.yaml")},
		{"site", cfg.SitePath(), filepath.Join("d", "network", "site.yaml")},
		{"policy", cfg.PolicyPath(), filepath.Join("d", "network", "cabling-policy.yaml")},
		{"feeds", cfg.FeedsPath(), filepath.Join("d", "power", "feeds.yaml")},
		{"power budget", cfg.PowerBudgetPath(), filepath.Join("d", "power", "rack-power-budget.yaml")},
		{"bom", cfg.BOMPath(), filepath.Join("o", "cabling_bom.yaml")},
		{"bom summary", cfg.BOMSummaryPath(), filepath.Join("o", "cabling_bom_summary.yaml")},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s path = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
