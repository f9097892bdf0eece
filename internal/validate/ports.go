package validate

import (
	"fmt"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// CheckPorts validates port capacity: ToR SFP28 against node demand,
// ToR QSFP28 against declared uplinks, and spine QSFP28 against the
// uplink total. Management RJ45 capacity is knowingly unmodeled and
// always noted with an INFO finding.
func CheckPorts(topology *model.Topology, tors map[string]model.Tor, nodes []model.Node, policy *model.CablingPolicy) []model.Finding {
	var findings []model.Finding
	byRack := nodesByRack(nodes)

	for _, rack := range topology.Racks {
		requiredSFP28 := 0
		for _, node := range byRack[rack.RackID] {
			if len(node.Nics) > 0 {
				for _, nic := range node.Nics {
					if nic.Type == model.NicSFP28 {
						requiredSFP28 += nic.Count
					}
				}
			} else {
				requiredSFP28 += policy.Defaults.Nodes25GPerNode
			}
		}

		tor, ok := tors[rack.TorID]
		if !ok {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "MISSING_TOR",
				Message:  fmt.Sprintf("rack %s references unknown ToR %s", rack.RackID, rack.TorID),
				Context:  map[string]any{"rack_id": rack.RackID, "tor_id": rack.TorID},
			})
			continue
		}

		if requiredSFP28 > tor.Ports.SFP28Total {
			deficit := requiredSFP28 - tor.Ports.SFP28Total
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "PORT_CAPACITY_TOR_SFP28",
				Message: fmt.Sprintf("rack %s requires %d SFP28 ports, ToR provides %d (deficit %d)",
					rack.RackID, requiredSFP28, tor.Ports.SFP28Total, deficit),
				Context: map[string]any{
					"rack_id":         rack.RackID,
					"required_sfp28":  requiredSFP28,
					"available_sfp28": tor.Ports.SFP28Total,
					"deficit":         deficit,
				},
			})
		}
	}

	for _, rack := range topology.Racks {
		tor, ok := tors[rack.TorID]
		if !ok {
			continue
		}
		if rack.UplinksQSFP28 > tor.Ports.QSFP28Total {
			deficit := rack.UplinksQSFP28 - tor.Ports.QSFP28Total
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "PORT_CAPACITY_TOR_QSFP28",
				Message: fmt.Sprintf("rack %s requires %d QSFP28 uplinks, ToR provides %d (deficit %d)",
					rack.RackID, rack.UplinksQSFP28, tor.Ports.QSFP28Total, deficit),
				Context: map[string]any{
					"rack_id":          rack.RackID,
					"required_qsfp28":  rack.UplinksQSFP28,
					"available_qsfp28": tor.Ports.QSFP28Total,
					"deficit":          deficit,
				},
			})
		}
	}

	totalUplinks := 0
	for _, rack := range topology.Racks {
		totalUplinks += rack.UplinksQSFP28
	}
	spineCapacity := topology.Spine.Ports.QSFP28Total

	if totalUplinks > spineCapacity {
		deficit := totalUplinks - spineCapacity
		findings = append(findings, model.Finding{
			Severity: model.SeverityFail,
			Code:     "PORT_CAPACITY_SPINE_QSFP28",
			Message: fmt.Sprintf("total uplinks %d exceed spine capacity %d (deficit %d)",
				totalUplinks, spineCapacity, deficit),
			Context: map[string]any{
				"total_uplinks":  totalUplinks,
				"spine_capacity": spineCapacity,
				"deficit":        deficit,
			},
		})
	} else if spineCapacity > 0 && float64(totalUplinks) > float64(spineCapacity)*0.95 {
		utilization := float64(totalUplinks) / float64(spineCapacity)
		findings = append(findings, model.Finding{
			Severity: model.SeverityWarn,
			Code:     "PORT_CAPACITY_SPINE_NEAR_LIMIT",
			Message:  fmt.Sprintf("spine utilization %.1f%% is near capacity limit", utilization*100),
			Context: map[string]any{
				"total_uplinks":  totalUplinks,
				"spine_capacity": spineCapacity,
				"utilization":    utilization,
			},
		})
	}

	findings = append(findings, model.Finding{
		Severity: model.SeverityInfo,
		Code:     "MGMT_RJ45_UNVALIDATED",
		Message:  "management RJ45 ports not validated (no mgmt switch inventory)",
		Context:  map[string]any{},
	})

	return findings
}
