package cross

import (
	"fmt"
	"sort"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// Reconcile matches the BOM multiset against intent per (class, cable
// type). Exact bin matches cancel first; leftover BOM bins then pair
// with the closest remaining intent bin of equal quantity, within or
// beyond the bin slop tolerance; whatever survives is missing or
// phantom. The matching is greedy and order-sensitive; iteration is
// sorted so results are stable.
func Reconcile(bomSet, intentSet model.Multiset, binSlopM float64) []model.CrossFinding {
	var findings []model.CrossFinding

	bom := bomSet.Clone()
	intent := intentSet.Clone()

	classes := unionClasses(bom, intent)
	for _, class := range classes {
		cableTypes := unionCableTypes(bom[class], intent[class])
		for _, cableType := range cableTypes {
			bomBins := binCounts(bom, class, cableType)
			intentBins := binCounts(intent, class, cableType)

			// Exact matches cancel quantity-for-quantity
			for _, bin := range sortedBins(bomBins) {
				intentCount, ok := intentBins[bin]
				if !ok {
					continue
				}
				matched := bomBins[bin]
				if intentCount < matched {
					matched = intentCount
				}
				bomBins[bin] -= matched
				intentBins[bin] -= matched
				if bomBins[bin] == 0 {
					delete(bomBins, bin)
				}
				if intentBins[bin] == 0 {
					delete(intentBins, bin)
				}
			}

			// Leftover BOM bins pair with the closest intent bin when
			// quantities agree exactly; partial overlaps fall through
			// to missing/phantom below.
			for _, bomBin := range sortedBins(bomBins) {
				if len(intentBins) == 0 {
					break
				}
				intentBin := closestBin(intentBins, bomBin)
				bomCount := bomBins[bomBin]
				if bomCount != intentBins[intentBin] {
					continue
				}

				severity := model.SeverityFail
				code := "BIN_MISMATCH_FAIL"
				if bomBin >= intentBin && float64(bomBin-intentBin) <= binSlopM {
					severity = model.SeverityWarn
					code = "BIN_MISMATCH_WARN"
				}
				findings = append(findings, model.CrossFinding{
					Severity: severity,
					Code:     code,
					Message: fmt.Sprintf("%s %s: BOM uses %dm bin, intent expects %dm",
						class, cableType, bomBin, intentBin),
					Context: map[string]any{
						"class":        class,
						"cable_type":   cableType,
						"bom_bin_m":    bomBin,
						"intent_bin_m": intentBin,
						"bin_slop_m":   binSlopM,
					},
				})

				delete(bomBins, bomBin)
				delete(intentBins, intentBin)
			}
		}
	}

	// Whatever intent still demands was never cabled
	for _, class := range sortedClasses(intent) {
		for _, cableType := range sortedStrings(intent[class]) {
			for _, bin := range sortedBins(intent[class][cableType]) {
				required := intent[class][cableType][bin]
				if required <= 0 {
					continue
				}
				findings = append(findings, model.CrossFinding{
					Severity: model.SeverityFail,
					Code:     "MISSING_LINK",
					Message: fmt.Sprintf("%s requires %d x %s @ %d m; BOM provides 0",
						class, required, cableType, bin),
					Context: map[string]any{
						"class":        class,
						"cable_type":   cableType,
						"length_bin_m": bin,
						"required":     required,
						"provided":     0,
					},
				})
			}
		}
	}

	// Whatever the BOM still carries was never demanded
	for _, class := range sortedClasses(bom) {
		for _, cableType := range sortedStrings(bom[class]) {
			for _, bin := range sortedBins(bom[class][cableType]) {
				provided := bom[class][cableType][bin]
				if provided <= 0 {
					continue
				}
				findings = append(findings, model.CrossFinding{
					Severity: model.SeverityWarn,
					Code:     "PHANTOM_ITEM",
					Message: fmt.Sprintf("%s BOM has %d x %s @ %d m; intent requires 0",
						class, provided, cableType, bin),
					Context: map[string]any{
						"class":        class,
						"cable_type":   cableType,
						"length_bin_m": bin,
						"required":     0,
						"provided":     provided,
					},
				})
			}
		}
	}

	return findings
}

// binCounts returns the live bin map for (class, cableType), creating
// empty levels so both sides can be consumed symmetrically.
func binCounts(m model.Multiset, class, cableType string) map[int]int {
	if m[class] == nil {
		m[class] = make(map[string]map[int]int)
	}
	if m[class][cableType] == nil {
		m[class][cableType] = make(map[int]int)
	}
	return m[class][cableType]
}

func closestBin(bins map[int]int, target int) int {
	best := 0
	bestDiff := -1
	for _, bin := range sortedBins(bins) {
		diff := bin - target
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = bin
			bestDiff = diff
		}
	}
	return best
}

func unionClasses(a, b model.Multiset) []string {
	seen := make(map[string]bool)
	for class := range a {
		seen[class] = true
	}
	for class := range b {
		seen[class] = true
	}
	classes := make([]string, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

func unionCableTypes(a, b map[string]map[int]int) []string {
	seen := make(map[string]bool)
	for cableType := range a {
		seen[cableType] = true
	}
	for cableType := range b {
		seen[cableType] = true
	}
	cableTypes := make([]string, 0, len(seen))
	for cableType := range seen {
		cableTypes = append(cableTypes, cableType)
	}
	sort.Strings(cableTypes)
	return cableTypes
}
