package bom

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/martinsuchenak/cableplan/internal/model"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Metadata records provenance on every exported BOM
type Metadata struct {
	GeneratedBy    string   `yaml:"generated_by"`
	RunID          string   `yaml:"run_id"`
	PolicyApplied  string   `yaml:"policy_applied"`
	SparesFraction float64  `yaml:"spares_fraction"`
	SlackFactor    float64  `yaml:"slack_factor"`
	Warnings       []string `yaml:"warnings"`
}

type exportDoc struct {
	Metadata Metadata  `yaml:"metadata"`
	BOM      model.BOM `yaml:"bom"`
}

func newMetadata(policy *model.CablingPolicy, warnings []string) Metadata {
	version := policy.Version
	if version == "" {
		version = "unknown"
	}
	return Metadata{
		GeneratedBy:    "cableplan bom calculate",
		RunID:          uuid.NewString(),
		PolicyApplied:  version,
		SparesFraction: policy.Defaults.SparesFraction,
		SlackFactor:    policy.Heuristics.SlackFactor,
		Warnings:       warnings,
	}
}

// ExportYAML writes the BOM plus provenance metadata as YAML
func ExportYAML(bom model.BOM, warnings []string, policy *model.CablingPolicy, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	data, err := yaml.Marshal(exportDoc{Metadata: newMetadata(policy, warnings), BOM: bom})
	if err != nil {
		return fmt.Errorf("failed to marshal BOM: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ExportCSV writes one row per (cable type, bin), sorted for stable diffs
func ExportCSV(bom model.BOM, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Cable Type", "Length Bin (m)", "Quantity"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	cableTypes := make([]string, 0, len(bom))
	for cableType := range bom {
		cableTypes = append(cableTypes, cableType)
	}
	sort.Strings(cableTypes)

	for _, cableType := range cableTypes {
		bins := make([]int, 0, len(bom[cableType]))
		for bin := range bom[cableType] {
			bins = append(bins, bin)
		}
		sort.Ints(bins)
		for _, bin := range bins {
			row := []string{cableType, strconv.Itoa(bin), strconv.Itoa(bom[cableType][bin])}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}
