package bom

import (
	"github.com/martinsuchenak/cableplan/internal/model"
)

// ClassEstimate is one link class's heuristic cable count
type ClassEstimate struct {
	Label      string
	Count      int
	WithSpares int
}

// Estimate is the rackless heuristic count per link class, driven
// entirely by policy defaults and site defaults. Used before any
// manifests exist.
type Estimate struct {
	LeafToNode  ClassEstimate
	LeafToSpine ClassEstimate
	Mgmt        ClassEstimate
	Wan         ClassEstimate

	NumRacks       int
	NodesPerRack   int
	UplinksPerRack int
	MgmtPerNode    int
	SparesFraction float64

	SFP28Bins  []int
	QSFP28Bins []int
	RJ45Bins   []int
}

// NewEstimate computes heuristic cable counts without any site
// geometry: racks x nodes x NICs for each class, spares applied.
func NewEstimate(policy *model.CablingPolicy, includeSpineLinks bool) *Estimate {
	site := policy.SiteDefaults
	defaults := policy.Defaults

	mgmtPerNode := defaults.MgmtRJ45PerNode
	if mgmtPerNode == 0 {
		mgmtPerNode = site.MgmtRJ45PerNode
	}
	wanCount := defaults.WanCat6aCount
	if wanCount == 0 {
		wanCount = site.WanCat6a
	}
	uplinksPerRack := defaults.TorUplinkQSFP28PerTor
	if uplinksPerRack == 0 {
		uplinksPerRack = site.UplinksPerRack
	}

	leafToNode := site.NumRacks * site.NodesPerRack * defaults.Nodes25GPerNode
	leafToSpine := 0
	if includeSpineLinks {
		leafToSpine = site.NumRacks * uplinksPerRack
	}
	mgmt := site.NumRacks * site.NodesPerRack * mgmtPerNode

	spares := defaults.SparesFraction

	return &Estimate{
		LeafToNode: ClassEstimate{
			Label:      "Leaf -> Node (SFP28 25G)",
			Count:      leafToNode,
			WithSpares: WithSpares(leafToNode, spares),
		},
		LeafToSpine: ClassEstimate{
			Label:      "Leaf -> Spine (QSFP28 100G)",
			Count:      leafToSpine,
			WithSpares: WithSpares(leafToSpine, spares),
		},
		Mgmt: ClassEstimate{
			Label:      "Mgmt (RJ45 Cat6A)",
			Count:      mgmt,
			WithSpares: WithSpares(mgmt, spares),
		},
		Wan: ClassEstimate{
			Label:      "WAN (RJ45 Cat6A)",
			Count:      wanCount,
			WithSpares: WithSpares(wanCount, spares),
		},
		NumRacks:       site.NumRacks,
		NodesPerRack:   site.NodesPerRack,
		UplinksPerRack: uplinksPerRack,
		MgmtPerNode:    mgmtPerNode,
		SparesFraction: spares,
		SFP28Bins:      policy.Media(model.MediaSFP28).BinsM,
		QSFP28Bins:     policy.Media(model.MediaQSFP28).BinsM,
		RJ45Bins:       policy.Media(model.MediaRJ45).BinsM,
	}
}
