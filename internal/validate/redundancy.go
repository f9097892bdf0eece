package validate

import (
	"fmt"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// CheckRedundancy enforces dual-homing (even optical NIC counts per
// node) when enabled, and the per-rack minimum uplink count.
func CheckRedundancy(topology *model.Topology, nodes []model.Node, policy *model.CablingPolicy) []model.Finding {
	var findings []model.Finding

	if policy.Redundancy.NodeDualHoming {
		for _, node := range nodes {
			total := 0
			if len(node.Nics) > 0 {
				for _, nic := range node.Nics {
					if nic.Type == model.NicSFP28 || nic.Type == model.NicQSFP28 {
						total += nic.Count
					}
				}
			} else {
				total = policy.Defaults.Nodes25GPerNode
			}

			if total%2 != 0 {
				findings = append(findings, model.Finding{
					Severity: model.SeverityFail,
					Code:     "REDUNDANCY_DUAL_HOMING",
					Message:  fmt.Sprintf("node %s has %d NICs, not divisible by 2 (dual homing required)", node.ID, total),
					Context:  map[string]any{"node_id": node.ID, "nic_count": total},
				})
			}
		}
	}

	if min := policy.Redundancy.TorUplinksMin; min > 0 {
		for _, rack := range topology.Racks {
			if rack.UplinksQSFP28 < min {
				shortfall := min - rack.UplinksQSFP28
				findings = append(findings, model.Finding{
					Severity: model.SeverityFail,
					Code:     "REDUNDANCY_TOR_UPLINKS",
					Message: fmt.Sprintf("rack %s has %d uplinks, minimum %d required (shortfall %d)",
						rack.RackID, rack.UplinksQSFP28, min, shortfall),
					Context: map[string]any{
						"rack_id":   rack.RackID,
						"uplinks":   rack.UplinksQSFP28,
						"minimum":   min,
						"shortfall": shortfall,
					},
				})
			}
		}
	}

	return findings
}
