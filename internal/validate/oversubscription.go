package validate

import (
	"fmt"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// CheckOversubscription bounds each rack's leaf:spine bandwidth ratio.
// Up to 25% over the policy maximum warns; beyond that fails.
func CheckOversubscription(topology *model.Topology, nodes []model.Node, policy *model.CablingPolicy) []model.Finding {
	var findings []model.Finding
	byRack := nodesByRack(nodes)
	maxRatio := policy.Oversubscription.MaxLeafToSpineRatio

	for _, rack := range topology.Racks {
		edgeGbps := 0
		for _, node := range byRack[rack.RackID] {
			if len(node.Nics) > 0 {
				for _, nic := range node.Nics {
					switch nic.Type {
					case model.NicSFP28:
						edgeGbps += nic.Count * 25
					case model.NicQSFP28:
						edgeGbps += nic.Count * 100
					}
				}
			} else {
				edgeGbps += policy.Defaults.Nodes25GPerNode * 25
			}
		}

		uplinkGbps := rack.UplinksQSFP28 * 100

		if uplinkGbps == 0 && edgeGbps > 0 {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "OVERSUB_NO_UPLINKS",
				Message:  fmt.Sprintf("rack %s has edge bandwidth %d Gbps but no uplinks", rack.RackID, edgeGbps),
				Context: map[string]any{
					"rack_id":     rack.RackID,
					"edge_gbps":   edgeGbps,
					"uplink_gbps": uplinkGbps,
				},
			})
			continue
		}

		if uplinkGbps == 0 {
			continue
		}

		ratio := float64(edgeGbps) / float64(uplinkGbps)
		if ratio <= maxRatio {
			continue
		}

		context := map[string]any{
			"rack_id":     rack.RackID,
			"edge_gbps":   edgeGbps,
			"uplink_gbps": uplinkGbps,
			"ratio":       ratio,
			"policy_max":  maxRatio,
		}

		excess := (ratio - maxRatio) / maxRatio
		if excess <= policy.Oversubscription.WarnMarginFraction {
			findings = append(findings, model.Finding{
				Severity: model.SeverityWarn,
				Code:     "OVERSUB_RATIO",
				Message: fmt.Sprintf("rack %s edge %d Gbps, uplink %d Gbps -> %.1f:1 exceeds policy %.1f:1",
					rack.RackID, edgeGbps, uplinkGbps, ratio, maxRatio),
				Context: context,
			})
		} else {
			findings = append(findings, model.Finding{
				Severity: model.SeverityFail,
				Code:     "OVERSUB_RATIO_CRITICAL",
				Message: fmt.Sprintf("rack %s edge %d Gbps, uplink %d Gbps -> %.1f:1 critically exceeds policy %.1f:1",
					rack.RackID, edgeGbps, uplinkGbps, ratio, maxRatio),
				Context: context,
			})
		}
	}

	return findings
}
