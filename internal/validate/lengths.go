package validate

import (
	"fmt"

	"github.com/martinsuchenak/cableplan/internal/geometry"
	"github.com/martinsuchenak/cableplan/internal/model"
)

// spinePosition is the assumed spine grid location for uplink length
// estimation when the site file does not place the spine explicitly.
var spinePosition = model.GridPos{X: 0, Y: 0}

// CheckLengths verifies cable run feasibility against the policy length
// bins. Without site geometry the whole pass degrades to a single INFO
// finding and never fails.
func CheckLengths(topology *model.Topology, nodes []model.Node, site *model.Site, policy *model.CablingPolicy) []model.Finding {
	var findings []model.Finding

	if site == nil {
		return []model.Finding{{
			Severity: model.SeverityInfo,
			Code:     "SITE_GEOMETRY_MISSING",
			Message:  "geometry-based length checks skipped (no site manifest)",
			Context:  map[string]any{},
		}}
	}

	rackPositions := site.RackPositions()
	byRack := nodesByRack(nodes)
	slack := policy.Heuristics.SlackFactor

	// Leaf to node runs: same-rack heuristic distance per SFP28 NIC
	sfp28 := policy.Media(model.MediaSFP28)
	for _, rack := range topology.Racks {
		for _, node := range byRack[rack.RackID] {
			for _, nic := range node.Nics {
				if nic.Type != model.NicSFP28 {
					continue
				}
				distance := geometry.ApplySlack(policy.Heuristics.SameRackLeafToNodeM, slack)
				bin, ok := geometry.SelectBin(distance, sfp28.BinsM)
				if !ok {
					findings = append(findings, model.Finding{
						Severity: model.SeverityFail,
						Code:     "LENGTH_EXCEEDS_MAX_BIN",
						Message: fmt.Sprintf("node %s SFP28 requires %.1fm but exceeds maximum bin %dm",
							node.ID, distance, maxOf(sfp28.BinsM)),
						Context: map[string]any{
							"node_id":     node.ID,
							"rack_id":     rack.RackID,
							"distance_m":  distance,
							"bin":         maxOf(sfp28.BinsM),
							"media_class": "SFP28",
						},
					})
				} else if distance > sfp28.DacMaxM && !hasBinBeyond(sfp28.BinsM, sfp28.DacMaxM) {
					findings = append(findings, model.Finding{
						Severity: model.SeverityFail,
						Code:     "LENGTH_EXCEEDS_DAC_NO_AOC_BINS",
						Message: fmt.Sprintf("node %s SFP28 requires %.1fm, exceeds DAC limit %.0fm but no AOC/fiber bins configured",
							node.ID, distance, sfp28.DacMaxM),
						Context: map[string]any{
							"node_id":     node.ID,
							"rack_id":     rack.RackID,
							"distance_m":  distance,
							"bin":         bin,
							"media_class": "SFP28",
						},
					})
				}
			}
		}
	}

	// Leaf to spine runs: Manhattan grid distance per positioned rack
	qsfp28 := policy.Media(model.MediaQSFP28)
	for _, rack := range topology.Racks {
		pos, ok := rackPositions[rack.RackID]
		if !ok {
			continue
		}
		distance := geometry.ApplySlack(
			geometry.RackDistance(pos, spinePosition, policy.Heuristics.TileM), slack)
		bin, binOK := geometry.SelectBin(distance, qsfp28.BinsM)
		if !binOK {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "LENGTH_EXCEEDS_MAX_BIN",
				Message: fmt.Sprintf("rack %s uplinks require %.1fm but exceed maximum bin %dm",
					rack.RackID, distance, maxOf(qsfp28.BinsM)),
				Context: map[string]any{
					"rack_id":     rack.RackID,
					"distance_m":  distance,
					"bin":         maxOf(qsfp28.BinsM),
					"media_class": "QSFP28",
				},
			})
		} else if distance > qsfp28.DacMaxM && !hasBinBeyond(qsfp28.BinsM, qsfp28.DacMaxM) {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "LENGTH_EXCEEDS_DAC_NO_AOC_BINS",
				Message: fmt.Sprintf("rack %s uplinks require %.1fm, exceed DAC limit %.0fm but no AOC/fiber bins configured",
					rack.RackID, distance, qsfp28.DacMaxM),
				Context: map[string]any{
					"rack_id":     rack.RackID,
					"distance_m":  distance,
					"bin":         bin,
					"media_class": "QSFP28",
				},
			})
		}
	}

	// Management RJ45 runs: same-rack heuristic, warn past 100m
	rj45 := policy.Media(model.MediaRJ45)
	for _, rack := range topology.Racks {
		for _, node := range byRack[rack.RackID] {
			for _, nic := range node.Nics {
				if nic.Type != model.NicRJ45 {
					continue
				}
				distance := geometry.ApplySlack(policy.Heuristics.SameRackLeafToNodeM, slack)
				bin, ok := geometry.SelectBin(distance, rj45.BinsM)
				switch {
				case !ok:
					findings = append(findings, model.Finding{
						Severity: model.SeverityFail,
						Code:     "LENGTH_EXCEEDS_MAX_BIN",
						Message: fmt.Sprintf("node %s RJ45 requires %.1fm but exceeds maximum bin %dm",
							node.ID, distance, maxOf(rj45.BinsM)),
						Context: map[string]any{
							"node_id":     node.ID,
							"rack_id":     rack.RackID,
							"distance_m":  distance,
							"bin":         maxOf(rj45.BinsM),
							"media_class": "RJ45",
						},
					})
				case bin > 100:
					findings = append(findings, model.Finding{
						Severity: model.SeverityWarn,
						Code:     "RJ45_BIN_GT_100M",
						Message: fmt.Sprintf("node %s RJ45 connection uses bin %dm > 100m (speed may downshift)",
							node.ID, bin),
						Context: map[string]any{
							"node_id":     node.ID,
							"rack_id":     rack.RackID,
							"distance_m":  distance,
							"bin":         bin,
							"media_class": "RJ45",
						},
					})
				}
			}
		}
	}

	return findings
}

func hasBinBeyond(binsM []int, threshold float64) bool {
	for _, bin := range binsM {
		if float64(bin) > threshold {
			return true
		}
	}
	return false
}

func maxOf(binsM []int) int {
	max := 0
	for _, bin := range binsM {
		if bin > max {
			max = bin
		}
	}
	return max
}
