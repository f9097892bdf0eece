package validate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// CheckPolicySanity audits the policy file as written, before default
// merging, so it can flag sections the author omitted or mistyped. A
// nil raw document means no policy file was given; the built-in policy
// needs no auditing.
func CheckPolicySanity(raw map[string]any) []model.Finding {
	if raw == nil {
		return nil
	}

	var findings []model.Finding
	findings = append(findings, checkSpares(raw)...)
	findings = append(findings, checkBins(raw)...)
	findings = append(findings, checkDacThresholds(raw)...)
	findings = append(findings, checkMediaPresence(raw)...)
	findings = append(findings, checkRJ45Bins(raw)...)
	findings = append(findings, checkDefaults(raw)...)
	findings = append(findings, checkRedundancyRules(raw)...)
	findings = append(findings, checkOversubRules(raw)...)
	findings = append(findings, checkHeuristicRules(raw)...)
	return findings
}

func checkSpares(raw map[string]any) []model.Finding {
	defaults := subMap(raw, "defaults")
	value, present := defaults["spares_fraction"]
	if !present || value == nil {
		return nil
	}

	f, ok := toFloat(value)
	if !ok {
		return []model.Finding{{
			Severity: model.SeverityFail,
			Code:     "POLICY_SPARES_TYPE",
			Message:  fmt.Sprintf("defaults.spares_fraction %v is not coercible to float", value),
			Context:  map[string]any{"key": "defaults.spares_fraction", "value": value},
		}}
	}
	if f < 0.0 || f > 1.0 {
		return []model.Finding{{
			Severity: model.SeverityFail,
			Code:     "POLICY_SPARES_RANGE",
			Message:  fmt.Sprintf("defaults.spares_fraction %v must be between 0.0 and 1.0", f),
			Context:  map[string]any{"key": "defaults.spares_fraction", "value": f},
		}}
	}
	return nil
}

func checkBins(raw map[string]any) []model.Finding {
	var findings []model.Finding
	mediaRules := subMap(raw, "media_rules")

	for _, mediaType := range sortedKeys(mediaRules) {
		rules := subMap(mediaRules, mediaType)
		rawBins, present := rules["bins_m"]
		if !present || rawBins == nil {
			continue
		}

		bins, _ := rawBins.([]any)
		if len(bins) == 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_BINS_EMPTY",
				Message:  fmt.Sprintf("media_rules.%s.bins_m cannot be empty", mediaType),
				Context:  map[string]any{"media_type": mediaType},
			})
			continue
		}

		var invalid []any
		var ints []int
		for _, b := range bins {
			n, ok := b.(int)
			if !ok || n <= 0 {
				invalid = append(invalid, b)
				continue
			}
			ints = append(ints, n)
		}
		if len(invalid) > 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_BINS_INVALID",
				Message:  fmt.Sprintf("media_rules.%s.bins_m contains non-integer or non-positive values: %v", mediaType, invalid),
				Context:  map[string]any{"media_type": mediaType, "invalid_values": invalid},
			})
			continue
		}

		seen := make(map[int]bool, len(ints))
		var duplicates []int
		for _, n := range ints {
			if seen[n] {
				duplicates = append(duplicates, n)
			}
			seen[n] = true
		}
		if len(duplicates) > 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_BINS_DUPLICATE",
				Message:  fmt.Sprintf("media_rules.%s.bins_m contains duplicate values: %v", mediaType, duplicates),
				Context:  map[string]any{"media_type": mediaType, "duplicates": duplicates},
			})
			continue
		}

		if !sort.IntsAreSorted(ints) {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_BINS_UNSORTED",
				Message:  fmt.Sprintf("media_rules.%s.bins_m must be strictly ascending: %v", mediaType, ints),
				Context:  map[string]any{"media_type": mediaType, "bins_m": ints},
			})
		}
	}

	return findings
}

func checkDacThresholds(raw map[string]any) []model.Finding {
	var findings []model.Finding
	mediaRules := subMap(raw, "media_rules")

	for _, mediaType := range []string{model.MediaSFP28, model.MediaQSFP28} {
		if _, present := mediaRules[mediaType]; !present {
			continue
		}
		rules := subMap(mediaRules, mediaType)
		bins := intBins(rules["bins_m"])
		dacMax, present := rules["dac_max_m"]

		if (!present || dacMax == nil) && len(bins) > 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityWarn,
				Code:     "POLICY_DAC_MAX_MISSING",
				Message:  fmt.Sprintf("media_rules.%s.dac_max_m missing, will assume smallest bin as soft threshold", mediaType),
				Context:  map[string]any{"media_type": mediaType, "smallest_bin": minOf(bins)},
			})
			continue
		}
		if !present || dacMax == nil {
			continue
		}

		n, ok := dacMax.(int)
		if !ok || n <= 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_DAC_MAX_INVALID",
				Message:  fmt.Sprintf("media_rules.%s.dac_max_m must be an integer >= 1, got: %v", mediaType, dacMax),
				Context:  map[string]any{"media_type": mediaType, "value": dacMax},
			})
		} else if len(bins) > 0 && n < minOf(bins) {
			findings = append(findings, model.Finding{
				Severity: model.SeverityWarn,
				Code:     "POLICY_DAC_MAX_LT_SMALLEST_BIN",
				Message:  fmt.Sprintf("media_rules.%s.dac_max_m (%d) is less than smallest bin (%d)", mediaType, n, minOf(bins)),
				Context:  map[string]any{"media_type": mediaType, "dac_max_m": n, "smallest_bin": minOf(bins)},
			})
		}
	}

	return findings
}

func checkMediaPresence(raw map[string]any) []model.Finding {
	var findings []model.Finding
	mediaRules := subMap(raw, "media_rules")

	for _, mediaType := range []string{model.MediaSFP28, model.MediaQSFP28, model.MediaRJ45} {
		if _, present := mediaRules[mediaType]; !present {
			findings = append(findings, model.Finding{
				Severity: model.SeverityWarn,
				Code:     "POLICY_MEDIA_MISSING_DEFAULTED",
				Message:  fmt.Sprintf("media_rules.%s missing from policy, using built-in defaults", mediaType),
				Context:  map[string]any{"media_type": mediaType},
			})
		}
	}

	return findings
}

func checkRJ45Bins(raw map[string]any) []model.Finding {
	mediaRules := subMap(raw, "media_rules")
	if _, present := mediaRules[model.MediaRJ45]; !present {
		return nil
	}

	var over100 []int
	for _, bin := range intBins(subMap(mediaRules, model.MediaRJ45)["bins_m"]) {
		if bin > 100 {
			over100 = append(over100, bin)
		}
	}
	if len(over100) == 0 {
		return nil
	}

	return []model.Finding{{
		Severity: model.SeverityWarn,
		Code:     "POLICY_RJ45_BINS_GT_100M",
		Message:  fmt.Sprintf("rj45_cat6a.bins_m contains bins > 100m: %v (may negotiate lower speeds)", over100),
		Context:  map[string]any{"bins_over_100m": over100},
	}}
}

func checkDefaults(raw map[string]any) []model.Finding {
	var findings []model.Finding
	defaults := subMap(raw, "defaults")

	for _, key := range sortedKeys(defaults) {
		if key == "spares_fraction" {
			continue
		}
		value := defaults[key]
		if value == nil {
			continue
		}
		n, ok := value.(int)
		if !ok {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_DEFAULT_TYPE",
				Message:  fmt.Sprintf("defaults.%s must be an integer, got: %T", key, value),
				Context:  map[string]any{"key": "defaults." + key, "value": value},
			})
		} else if n < 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_DEFAULT_NEGATIVE",
				Message:  fmt.Sprintf("defaults.%s must be >= 0, got: %d", key, n),
				Context:  map[string]any{"key": "defaults." + key, "value": n},
			})
		}
	}

	return findings
}

func checkRedundancyRules(raw map[string]any) []model.Finding {
	var findings []model.Finding
	redundancy := subMap(raw, "redundancy")

	if value, present := redundancy["node_dual_homing"]; present {
		if _, ok := value.(bool); !ok {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_REDUNDANCY_INVALID",
				Message:  fmt.Sprintf("redundancy.node_dual_homing must be boolean, got: %T", value),
				Context:  map[string]any{"key": "redundancy.node_dual_homing", "value": value},
			})
		}
	}

	if value, present := redundancy["tor_uplinks_min"]; present {
		n, ok := value.(int)
		if !ok || n < 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_REDUNDANCY_INVALID",
				Message:  fmt.Sprintf("redundancy.tor_uplinks_min must be integer >= 0, got: %v", value),
				Context:  map[string]any{"key": "redundancy.tor_uplinks_min", "value": value},
			})
		}
	}

	return findings
}

func checkOversubRules(raw map[string]any) []model.Finding {
	oversub := subMap(raw, "oversubscription")
	value, present := oversub["max_leaf_to_spine_ratio"]
	if !present {
		return []model.Finding{{
			Severity: model.SeverityWarn,
			Code:     "POLICY_OVERSUB_DEFAULTED",
			Message:  "oversubscription.max_leaf_to_spine_ratio missing, using engine default 4.0",
			Context:  map[string]any{"default_value": 4.0},
		}}
	}

	f, ok := toFloat(value)
	if !ok {
		return []model.Finding{{
			Severity: model.SeverityFail,
			Code:     "POLICY_OVERSUB_INVALID",
			Message:  fmt.Sprintf("oversubscription.max_leaf_to_spine_ratio must be numeric, got: %v", value),
			Context:  map[string]any{"key": "oversubscription.max_leaf_to_spine_ratio", "value": value},
		}}
	}
	if f <= 0 {
		return []model.Finding{{
			Severity: model.SeverityFail,
			Code:     "POLICY_OVERSUB_INVALID",
			Message:  fmt.Sprintf("oversubscription.max_leaf_to_spine_ratio must be > 0, got: %v", f),
			Context:  map[string]any{"key": "oversubscription.max_leaf_to_spine_ratio", "value": f},
		}}
	}
	return nil
}

type heuristicRule struct {
	field      string
	constraint string
	valid      func(float64) bool
}

var heuristicRules = []heuristicRule{
	{"same_rack_leaf_to_node_m", "> 0", func(f float64) bool { return f > 0 }},
	{"adjacent_rack_leaf_to_spine_m", "> 0", func(f float64) bool { return f > 0 }},
	{"non_adjacent_rack_leaf_to_spine_m", "> 0", func(f float64) bool { return f > 0 }},
	{"tile_m", "> 0", func(f float64) bool { return f > 0 }},
	{"slack_factor", ">= 1.0", func(f float64) bool { return f >= 1.0 }},
}

func checkHeuristicRules(raw map[string]any) []model.Finding {
	var findings []model.Finding
	heuristics := subMap(raw, "heuristics")

	for _, rule := range heuristicRules {
		value, present := heuristics[rule.field]
		if !present {
			continue
		}
		f, ok := toFloat(value)
		if !ok {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_HEURISTICS_INVALID",
				Message:  fmt.Sprintf("heuristics.%s must be numeric, got: %v", rule.field, value),
				Context:  map[string]any{"key": "heuristics." + rule.field, "value": value},
			})
			continue
		}
		if !rule.valid(f) {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "POLICY_HEURISTICS_INVALID",
				Message:  fmt.Sprintf("heuristics.%s must be %s, got: %v", rule.field, rule.constraint, f),
				Context:  map[string]any{"key": "heuristics." + rule.field, "value": f, "constraint": rule.constraint},
			})
		}
	}

	return findings
}

func subMap(raw map[string]any, key string) map[string]any {
	if m, ok := raw[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func intBins(raw any) []int {
	list, _ := raw.([]any)
	var bins []int
	for _, b := range list {
		if n, ok := b.(int); ok {
			bins = append(bins, n)
		}
	}
	return bins
}

func minOf(bins []int) int {
	if len(bins) == 0 {
		return 0
	}
	min := bins[0]
	for _, bin := range bins[1:] {
		if bin < min {
			min = bin
		}
	}
	return min
}
