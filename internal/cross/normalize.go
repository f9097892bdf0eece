package cross

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/model"

	"gopkg.in/yaml.v3"
)

// bomItem is the explicit-class BOM shape
type bomItem struct {
	Class      string `yaml:"class"`
	CableType  string `yaml:"cable_type"`
	LengthBinM int    `yaml:"length_bin_m"`
	Quantity   int    `yaml:"quantity"`
}

type bomDoc struct {
	Items []bomItem `yaml:"items"`
}

// Keys that appear alongside cable types in legacy flat BOMs
var legacyMetaKeys = map[string]bool{
	"meta":            true,
	"metadata":        true,
	"policy_path":     true,
	"spares_fraction": true,
}

// LoadBOM reads a candidate BOM file and normalizes it into the
// canonical multiset. Two shapes are supported: an explicit-class item
// list, and the legacy flat cable_type -> bin -> quantity map whose
// classes must be inferred.
func LoadBOM(path string) (model.Multiset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read BOM %s: %w", path, err)
	}

	var doc bomDoc
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Items) > 0 {
		result := make(model.Multiset)
		for _, item := range doc.Items {
			result.Add(item.Class, item.CableType, item.LengthBinM, item.Quantity)
		}
		return result, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid BOM YAML in %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("BOM file %s is empty", path)
	}

	flat, ok := raw["bom"].(map[string]any)
	if !ok {
		flat = raw
	}

	result := make(model.Multiset)
	for cableType, binsAny := range flat {
		if legacyMetaKeys[cableType] {
			continue
		}
		for bin, qty := range binQuantities(binsAny) {
			result.Add(inferClass(cableType, qty), cableType, bin, qty)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("BOM file %s does not contain a valid BOM mapping", path)
	}
	return result, nil
}

// binQuantities coerces a decoded bin -> quantity mapping. yaml.v3
// decodes integer-keyed mappings into map[any]any and string-keyed ones
// into map[string]any; both appear in the wild, and exported BOMs use
// integer keys. Non-numeric bin keys and quantities are skipped.
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

// inferClass guesses a link class from a legacy cable type name. RJ45
// is ambiguous between mgmt and WAN; mgmt runs typically outnumber WAN
// trunks, so large quantities are classed as mgmt. An approximation,
// not a guarantee.
func inferClass(cableType string, quantity int) string {
	lower := strings.ToLower(cableType)
	switch {
	case strings.Contains(lower, model.MediaSFP28):
		return model.ClassLeafNode
	case strings.Contains(lower, model.MediaQSFP28):
		return model.ClassLeafSpine
	case strings.Contains(lower, model.MediaRJ45):
		if quantity > 10 {
			return model.ClassMgmt
		}
		return model.ClassWan
	default:
		return model.ClassUnknown
	}
}
