// Package geometry computes cable run distances on the site floor grid
// and picks the purchasable media tier and length bin for each run.
package geometry

import (
	"fmt"
	"sort"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// Cable runs follow floor tiles and rack rows, never diagonals, so
// distance is Manhattan in tile units.
func RackDistance(a, b model.GridPos, tileM float64) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx+dy) * tileM
}

// ApplySlack multiplies a raw distance by the policy slack factor to
// cover vertical rises, patch loops, and dressing.
func ApplySlack(distanceM, slackFactor float64) float64 {
	return distanceM * slackFactor
}

// SelectBin returns the smallest bin that covers the distance, or
// (0, false) when the distance exceeds every bin.
func SelectBin(distanceM float64, binsM []int) (int, bool) {
	sorted := make([]int, len(binsM))
	copy(sorted, binsM)
	sort.Ints(sorted)
	for _, bin := range sorted {
		if float64(bin) >= distanceM {
			return bin, true
		}
	}
	return 0, false
}

// aocMaxM is the reach above which 25G/100G runs leave AOC territory
// and need structured fiber.
const aocMaxM = 10.0

// SelectCableTypeAndBin applies slack to the raw distance, picks the
// media tier (DAC, AOC, fiber) for the NIC class, and bins the result.
// When the slacked distance exceeds the largest bin it clamps to the
// largest bin; procurement-side callers want a purchasable answer, and
// the validation engine flags the overrun separately.
func SelectCableTypeAndBin(nicType model.NicType, distanceM float64, policy *model.CablingPolicy) (string, int) {
	var class string
	switch nicType {
	case model.NicSFP28:
		class = model.MediaSFP28
	case model.NicQSFP28:
		class = model.MediaQSFP28
	case model.NicRJ45:
		class = model.MediaRJ45
	}

	// An unrecognized NIC type still bins by distance so the run keeps
	// its real length in aggregation; only the label is lossy. Media
	// falls back to the default optical rule for the empty class.
	rule := policy.Media(class)
	slacked := ApplySlack(distanceM, policy.Heuristics.SlackFactor)

	bin, ok := SelectBin(slacked, rule.BinsM)
	if !ok {
		bin = maxBin(rule.BinsM)
	}

	switch nicType {
	case model.NicRJ45:
		return labelOr(rule.Labels.Label, "RJ45 Cat6A"), bin
	case model.NicSFP28:
		switch {
		case slacked <= rule.DacMaxM:
			return labelOr(rule.Labels.DAC, "SFP28 25G DAC"), bin
		case slacked <= aocMaxM:
			return labelOr(rule.Labels.AOC, "SFP28 25G AOC"), bin
		default:
			return labelOr(rule.Labels.Fiber, "SFP28 25G MMF + SR"), bin
		}
	case model.NicQSFP28:
		switch {
		case slacked <= rule.DacMaxM:
			return labelOr(rule.Labels.DAC, "QSFP28 100G DAC"), bin
		case slacked <= aocMaxM:
			return labelOr(rule.Labels.AOC, "QSFP28 100G AOC"), bin
		default:
			return labelOr(rule.Labels.Fiber, "QSFP28 100G MMF + SR4"), bin
		}
	default:
		return fmt.Sprintf("Unknown %s", nicType), bin
	}
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}

func maxBin(binsM []int) int {
	max := 0
	for _, bin := range binsM {
		if bin > max {
			max = bin
		}
	}
	return max
}
