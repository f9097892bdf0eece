package validate

import (
	"fmt"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// CheckCompatibility verifies every NIC can terminate on suitable
// switch ports. QSFP28 node NICs are unconditionally rejected since no
// breakout policy is modeled; RJ45 termination is unmodeled and warns.
func CheckCompatibility(topology *model.Topology, tors map[string]model.Tor, nodes []model.Node) []model.Finding {
	var findings []model.Finding

	racksByID := make(map[string]model.TopologyRack, len(topology.Racks))
	for _, rack := range topology.Racks {
		racksByID[rack.RackID] = rack
	}

	for _, node := range nodes {
		for _, nic := range node.Nics {
			switch nic.Type {
			case model.NicSFP28:
				rack, ok := racksByID[node.RackID]
				if !ok {
					findings = append(findings, model.Finding{
						Severity: model.SeverityFail,
						Code:     "NIC_COMPATIBILITY_NO_RACK",
						Message:  fmt.Sprintf("node %s SFP28 NIC has no rack mapping", node.ID),
						Context:  map[string]any{"node_id": node.ID, "nic_type": string(nic.Type)},
					})
					continue
				}
				tor, ok := tors[rack.TorID]
				if !ok || tor.Ports.SFP28Total == 0 {
					findings = append(findings, model.Finding{
						Severity: model.SeverityFail,
						Code:     "NIC_COMPATIBILITY_SFP28",
						Message:  fmt.Sprintf("node %s SFP28 NIC cannot terminate (no SFP28 ports on ToR)", node.ID),
						Context:  map[string]any{"node_id": node.ID, "tor_id": rack.TorID, "nic_type": string(nic.Type)},
					})
				}

			case model.NicQSFP28:
				findings = append(findings, model.Finding{
					Severity: model.SeverityFail,
					Code:     "NIC_COMPATIBILITY_QSFP28_UNSUPPORTED",
					Message:  fmt.Sprintf("node %s QSFP28 NIC not supported (no breakout policy)", node.ID),
					Context:  map[string]any{"node_id": node.ID, "nic_type": string(nic.Type)},
				})

			case model.NicRJ45:
				findings = append(findings, model.Finding{
					Severity: model.SeverityWarn,
					Code:     "NIC_COMPATIBILITY_RJ45_UNMODELED",
					Message:  fmt.Sprintf("node %s RJ45 mgmt NIC termination not modeled", node.ID),
					Context:  map[string]any{"node_id": node.ID, "nic_type": string(nic.Type)},
				})
			}
		}
	}

	return findings
}
