// Package cross reconciles a previously generated BOM against cable
// intent freshly re-derived from topology, nodes, and policy. The
// derivation is deliberately independent of the BOM calculator so it
// can act as ground truth for drift detection.
package cross

import (
	"sort"

	"github.com/martinsuchenak/cableplan/internal/geometry"
	"github.com/martinsuchenak/cableplan/internal/model"
)

// Fixed heuristic distances for link classes without geometry
const (
	mgmtDistanceM = 5.0
	wanDistanceM  = 10.0
)

// IntentLink is one expected cable run derived from manifests + policy
type IntentLink struct {
	Class      string
	CableType  string
	LengthBinM int
	RackID     string
	NodeID     string
}

// selectBinClamped picks the smallest bin covering the distance,
// clamping to the largest bin when none fits. Intent derivation always
// needs a purchasable bin; infeasible runs are the lengths pass's job.
func selectBinClamped(distanceM float64, binsM []int) int {
	if bin, ok := geometry.SelectBin(distanceM, binsM); ok {
		return bin
	}
	max := 0
	for _, bin := range binsM {
		if bin > max {
			max = bin
		}
	}
	return max
}

// DeriveIntentLinks synthesizes the four link classes the site should
// be cabled with: leaf-node SFP28 runs, leaf-spine QSFP28 uplinks,
// per-node management RJ45, and WAN RJ45 trunks.
func DeriveIntentLinks(topology *model.Topology, nodes []model.Node, site *model.Site, policy *model.CablingPolicy) []IntentLink {
	var links []IntentLink

	slack := policy.Heuristics.SlackFactor
	rackPositions := site.RackPositions()

	// Leaf-node: one run per SFP28 NIC entry, or the policy default
	// when a node declares none. Entry count, not port count, matches
	// how BOMs have historically been produced.
	sfp28Bins := policy.Media(model.MediaSFP28).BinsM
	leafNodeBin := selectBinClamped(policy.Heuristics.SameRackLeafToNodeM*slack, sfp28Bins)
	for _, node := range nodes {
		count := 0
		for _, nic := range node.Nics {
			if nic.Type == model.NicSFP28 {
				count++
			}
		}
		if count == 0 {
			count = policy.Defaults.Nodes25GPerNode
		}
		for i := 0; i < count; i++ {
			links = append(links, IntentLink{
				Class:      model.ClassLeafNode,
				CableType:  model.MediaSFP28,
				LengthBinM: leafNodeBin,
				RackID:     node.RackID,
				NodeID:     node.ID,
			})
		}
	}

	// Leaf-spine: per-rack uplink count, grid distance when both the
	// rack and a rack named "spine" are positioned.
	qsfp28Bins := policy.Media(model.MediaQSFP28).BinsM
	for _, rack := range topology.Racks {
		uplinks := rack.UplinksQSFP28
		if uplinks == 0 {
			uplinks = policy.Defaults.TorUplinkQSFP28PerTor
		}

		var distance float64
		rackPos, rackOK := rackPositions[rack.RackID]
		spinePos, spineOK := rackPositions["spine"]
		if rackOK && spineOK {
			distance = geometry.RackDistance(rackPos, spinePos, policy.Heuristics.TileM) * slack
		} else {
			distance = policy.Heuristics.AdjacentRackLeafToSpineM * slack
		}
		bin := selectBinClamped(distance, qsfp28Bins)

		for i := 0; i < uplinks; i++ {
			links = append(links, IntentLink{
				Class:      model.ClassLeafSpine,
				CableType:  model.MediaQSFP28,
				LengthBinM: bin,
				RackID:     rack.RackID,
			})
		}
	}

	// Management: fixed per-node count at a fixed heuristic distance
	rj45Bins := policy.Media(model.MediaRJ45).BinsM
	mgmtBin := selectBinClamped(mgmtDistanceM*slack, rj45Bins)
	for _, node := range nodes {
		for i := 0; i < policy.Defaults.MgmtRJ45PerNode; i++ {
			links = append(links, IntentLink{
				Class:      model.ClassMgmt,
				CableType:  model.MediaRJ45,
				LengthBinM: mgmtBin,
				RackID:     node.RackID,
				NodeID:     node.ID,
			})
		}
	}

	// WAN: declared trunk count at a fixed heuristic distance
	wanBin := selectBinClamped(wanDistanceM*slack, rj45Bins)
	for i := 0; i < topology.Wan.UplinksCat6a; i++ {
		links = append(links, IntentLink{
			Class:      model.ClassWan,
			CableType:  model.MediaRJ45,
			LengthBinM: wanBin,
		})
	}

	return links
}

// AggregateIntent folds intent links into the canonical reconciliation
// multiset.
func AggregateIntent(links []IntentLink) model.Multiset {
	result := make(model.Multiset)
	for _, link := range links {
		result.Add(link.Class, link.CableType, link.LengthBinM, 1)
	}
	return result
}

func sortedStrings(m map[string]map[int]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedClasses(m model.Multiset) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBins(m map[int]int) []int {
	bins := make([]int, 0, len(m))
	for bin := range m {
		bins = append(bins, bin)
	}
	sort.Ints(bins)
	return bins
}
