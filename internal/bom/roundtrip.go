package bom

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RoundtripSummary is the digest produced from re-reading a BOM file
type RoundtripSummary struct {
	TotalLineItems int      `yaml:"total_line_items"`
	TotalCables    int      `yaml:"total_cables"`
	CableTypes     []string `yaml:"cable_types"`
}

type roundtripMetadata struct {
	GeneratedBy string `yaml:"generated_by"`
	SourceBOM   string `yaml:"source_bom"`
	Strict      bool   `yaml:"strict"`
}

type roundtripDoc struct {
	Metadata roundtripMetadata `yaml:"metadata"`
	Summary  RoundtripSummary  `yaml:"summary"`
	Findings []string          `yaml:"findings"`
}

// Roundtrip reads a previously exported BOM, computes a summary, and
// writes it to exportPath. The BOM may carry the map under a "bom" key
// or at the document root.
func Roundtrip(bomPath, exportPath string, strict bool) (*RoundtripSummary, error) {
	data, err := os.ReadFile(bomPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load BOM file %s: %w", bomPath, err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("BOM file %s is invalid: %w", bomPath, err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("BOM file %s is missing or empty", bomPath)
	}

	bomAny, ok := doc["bom"]
	if !ok {
		bomAny = any(doc)
	}
	bomMap, ok := bomAny.(map[string]any)
	if !ok || len(bomMap) == 0 {
		return nil, fmt.Errorf("BOM file %s does not contain a valid BOM mapping", bomPath)
	}

	summary := RoundtripSummary{}
	for cableType, binsAny := range bomMap {
		bins := binQuantities(binsAny)
		if len(bins) == 0 {
			continue
		}
		summary.CableTypes = append(summary.CableTypes, cableType)
		for _, qty := range bins {
			summary.TotalLineItems++
			summary.TotalCables += qty
		}
	}
	sort.Strings(summary.CableTypes)

	out := roundtripDoc{
		Metadata: roundtripMetadata{
			GeneratedBy: "cableplan bom roundtrip",
			SourceBOM:   bomPath,
			Strict:      strict,
		},
		Summary:  summary,
		Findings: []string{},
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	encoded, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(exportPath, encoded, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", exportPath, err)
	}

	return &summary, nil
}

// binQuantities coerces a decoded bin -> quantity mapping. yaml.v3
// decodes integer-keyed mappings into map[any]any and string-keyed ones
// into map[string]any; ExportYAML emits integer keys, so both shapes
// must count. Non-numeric bin keys and quantities are skipped.
func binQuantities(v any) map[int]int {
	out := make(map[int]int)
	switch m := v.(type) {
	case map[string]any:
		for key, qtyAny := range m {
			bin, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			if qty, ok := asInt(qtyAny); ok {
				out[bin] = qty
			}
		}
	case map[any]any:
		for keyAny, qtyAny := range m {
			bin, ok := asInt(keyAny)
			if !ok {
				key, isString := keyAny.(string)
				if !isString {
					continue
				}
				n, err := strconv.Atoi(key)
				if err != nil {
					continue
				}
				bin = n
			}
			if qty, ok := asInt(qtyAny); ok {
				out[bin] = qty
			}
		}
	}
	return out
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}
