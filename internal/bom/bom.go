// Package bom derives concrete cable links from the interface-level
// topology and aggregates them into a purchasable bill of materials.
package bom

import (
	"fmt"
	"math"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/geometry"
	"github.com/martinsuchenak/cableplan/internal/log"
	"github.com/martinsuchenak/cableplan/internal/model"
)

const (
	defaultLinkDistanceM = 3.0
	wanLinkDistanceM     = 2.0
)

// BuildNetworkLinks resolves every spine interface's connects_to
// reference into a concrete link with distance, cable type, and length
// bin. WAN links are synthesized from the site's declared handoff.
func BuildNetworkLinks(topology *model.InterfaceTopology, site *model.Site, policy *model.CablingPolicy) []model.Link {
	var links []model.Link

	rackPositions := site.RackPositions()

	spineRack := ""
	if site != nil && site.Spine != nil {
		spineRack = site.Spine.RackID
	}

	leafsByID := make(map[string]model.Leaf, len(topology.Leafs))
	for _, leaf := range topology.Leafs {
		leafsByID[leaf.ID] = leaf
	}

	for _, spine := range topology.Spines {
		for _, iface := range spine.Interfaces {
			if iface.ConnectsTo == "" {
				continue
			}
			parts := strings.SplitN(iface.ConnectsTo, ":", 2)
			if len(parts) != 2 {
				continue
			}
			leafID, leafPort := parts[0], parts[1]
			leaf, ok := leafsByID[leafID]
			if !ok {
				log.Warn("spine interface references unknown leaf",
					"spine", spine.ID, "interface", iface.Name, "leaf", leafID)
				continue
			}

			distance := defaultLinkDistanceM
			spinePos, spineOK := rackPositions[spineRack]
			leafPos, leafOK := rackPositions[leaf.RackID]
			if spineRack != "" && leaf.RackID != "" && spineOK && leafOK {
				distance = geometry.RackDistance(spinePos, leafPos, policy.Heuristics.TileM)
			} else if site == nil {
				if spineRack == leaf.RackID {
					distance = policy.Heuristics.SameRackLeafToNodeM
				} else {
					distance = policy.Heuristics.AdjacentRackLeafToSpineM
				}
			}

			linkType := iface.Type
			if linkType == "" {
				linkType = "100G"
			}
			cableType, bin := geometry.SelectCableTypeAndBin(linkMedia(linkType), distance, policy)

			links = append(links, model.Link{
				From:      fmt.Sprintf("%s:%s", spine.ID, iface.Name),
				To:        fmt.Sprintf("%s:%s", leafID, leafPort),
				Type:      linkType,
				DistanceM: distance,
				CableType: cableType,
				LengthBin: bin,
				Category:  model.CategorySpineToLeaf,
			})
		}
	}

	if site != nil && site.Spine != nil && site.Spine.WanHandoff != nil {
		handoff := site.Spine.WanHandoff
		count := handoff.Count
		if count == 0 {
			count = 2
		}
		wanType := handoff.Type
		if wanType == "" {
			wanType = "RJ45"
		}
		for i := 1; i <= count; i++ {
			cableType, bin := geometry.SelectCableTypeAndBin(linkMedia(wanType), wanLinkDistanceM, policy)
			links = append(links, model.Link{
				From:      fmt.Sprintf("spine-wan-%d", i),
				To:        fmt.Sprintf("wan-router:%d", i),
				Type:      wanType,
				DistanceM: wanLinkDistanceM,
				CableType: cableType,
				LengthBin: bin,
				Category:  model.CategoryWan,
			})
		}
	}

	return links
}

// linkMedia maps an interface speed label to the NIC media class the
// geometry helpers classify on. Unrecognized labels pass through so the
// selection yields a synthesized "Unknown" cable type.
func linkMedia(linkType string) model.NicType {
	switch linkType {
	case "25G":
		return model.NicSFP28
	case "100G":
		return model.NicQSFP28
	case "RJ45":
		return model.NicRJ45
	default:
		return model.NicType(linkType)
	}
}

// Aggregate groups links by (cable type, length bin), counts them, and
// applies the spares margin to every line item.
func Aggregate(links []model.Link, sparesFraction float64) model.BOM {
	bom := make(model.BOM)
	for _, link := range links {
		if bom[link.CableType] == nil {
			bom[link.CableType] = make(map[int]int)
		}
		bom[link.CableType][link.LengthBin]++
	}
	for cableType, bins := range bom {
		for bin, count := range bins {
			bom[cableType][bin] = WithSpares(count, sparesFraction)
		}
	}
	return bom
}

// WithSpares rounds a count up by the spares fraction. Zero stays zero.
func WithSpares(count int, sparesFraction float64) int {
	return int(math.Ceil(float64(count) * (1.0 + sparesFraction)))
}

// Warnings runs plausibility checks over the derived links: missing
// topology halves and media stretched past its reach.
func Warnings(topology *model.InterfaceTopology, links []model.Link) []string {
	var warnings []string

	if len(topology.Spines) == 0 {
		warnings = append(warnings, "No spines defined in topology")
	}
	if len(topology.Leafs) == 0 {
		warnings = append(warnings, "No leafs defined in topology")
	}

	for _, link := range links {
		if link.DistanceM > 10 && strings.Contains(link.CableType, "DAC") {
			warnings = append(warnings,
				fmt.Sprintf("DAC cable selected for %.1fm link (max recommended: 3m)", link.DistanceM))
		} else if link.DistanceM > 100 {
			warnings = append(warnings,
				fmt.Sprintf("Very long link: %.1fm may exceed cable specifications", link.DistanceM))
		}
	}

	return warnings
}
