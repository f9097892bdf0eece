package validate

import (
	"fmt"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// CheckCompleteness verifies referential integrity: rack-to-ToR
// bindings resolve and agree on rack ids, node racks exist somewhere,
// and the spine is present with real port capacity.
func CheckCompleteness(topology *model.Topology, tors map[string]model.Tor, nodes []model.Node, site *model.Site) []model.Finding {
	var findings []model.Finding

	for _, rack := range topology.Racks {
		tor, ok := tors[rack.TorID]
		if !ok {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "COMPLETENESS_MISSING_TOR",
				Message:  fmt.Sprintf("topology rack %s references unknown ToR %s", rack.RackID, rack.TorID),
				Context:  map[string]any{"rack_id": rack.RackID, "tor_id": rack.TorID},
			})
		} else if tor.RackID != rack.RackID {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "COMPLETENESS_TOR_RACK_MISMATCH",
				Message: fmt.Sprintf("ToR %s rack_id %s doesn't match topology rack_id %s",
					rack.TorID, tor.RackID, rack.RackID),
				Context: map[string]any{
					"tor_id":           rack.TorID,
					"tor_rack_id":      tor.RackID,
					"topology_rack_id": rack.RackID,
				},
			})
		}
	}

	validRacks := make(map[string]bool)
	for _, rack := range topology.Racks {
		validRacks[rack.RackID] = true
	}
	if site != nil {
		for _, rack := range site.Racks {
			validRacks[rack.ID] = true
		}
	}

	for _, node := range nodes {
		if !validRacks[node.RackID] {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "COMPLETENESS_NODE_RACK_MISSING",
				Message:  fmt.Sprintf("node %s references unknown rack %s", node.ID, node.RackID),
				Context:  map[string]any{"node_id": node.ID, "rack_id": node.RackID},
			})
		}
	}

	if topology.Spine.ID == "" {
		findings = append(findings, model.Finding{
			Severity: model.SeverityFail,
			Code:     "COMPLETENESS_MISSING_SPINE",
			Message:  "topology missing spine configuration",
			Context:  map[string]any{},
		})
	} else if topology.Spine.Ports.QSFP28Total <= 0 {
		findings = append(findings, model.Finding{
			Severity: model.SeverityFail,
			Code:     "COMPLETENESS_SPINE_NO_PORTS",
			Message:  "spine has no QSFP28 ports defined",
			Context:  map[string]any{"spine_id": topology.Spine.ID},
		})
	}

	return findings
}
