package model

// Media rule keys used throughout the planner
const (
	MediaSFP28  = "sfp28_25g"
	MediaQSFP28 = "qsfp28_100g"
	MediaRJ45   = "rj45_cat6a"
)

// MediaLabels are the purchasable cable names per media tier. RJ45 media
// uses the single Label field.
type MediaLabels struct {
	DAC   string `yaml:"dac,omitempty"`
	AOC   string `yaml:"aoc,omitempty"`
	Fiber string `yaml:"fiber,omitempty"`
	Label string `yaml:"label,omitempty"`
}

// MediaRule is the per-media-class cabling rule: DAC reach and the
// discrete length bins cables may be ordered in.
type MediaRule struct {
	DacMaxM float64     `yaml:"dac_max_m"`
	BinsM   []int       `yaml:"bins_m"`
	Labels  MediaLabels `yaml:"labels,omitempty"`
}

// PolicyDefaults are per-node/per-ToR cabling defaults applied when a
// manifest omits explicit declarations
type PolicyDefaults struct {
	Nodes25GPerNode       int     `yaml:"nodes_25g_per_node"`
	MgmtRJ45PerNode       int     `yaml:"mgmt_rj45_per_node"`
	TorUplinkQSFP28PerTor int     `yaml:"tor_uplink_qsfp28_per_tor"`
	SparesFraction        float64 `yaml:"spares_fraction"`
	WanCat6aCount         int     `yaml:"wan_cat6a_count"`
}

// SiteDefaults drive the rackless heuristic estimator
type SiteDefaults struct {
	NumRacks        int `yaml:"num_racks"`
	NodesPerRack    int `yaml:"nodes_per_rack"`
	UplinksPerRack  int `yaml:"uplinks_per_rack"`
	MgmtRJ45PerNode int `yaml:"mgmt_rj45_per_node"`
	WanCat6a        int `yaml:"wan_cat6a"`
}

// Redundancy holds the dual-homing and uplink minimum rules
type Redundancy struct {
	NodeDualHoming bool `yaml:"node_dual_homing"`
	TorUplinksMin  int  `yaml:"tor_uplinks_min"`
}

// Oversubscription bounds the leaf:spine bandwidth ratio per rack
type Oversubscription struct {
	MaxLeafToSpineRatio float64 `yaml:"max_leaf_to_spine_ratio"`
	WarnMarginFraction  float64 `yaml:"warn_margin_fraction"`
}

// Heuristics are the fixed distances and factors used when geometry is
// missing, plus the slack multiplier applied to every computed run.
type Heuristics struct {
	SameRackLeafToNodeM         float64 `yaml:"same_rack_leaf_to_node_m"`
	AdjacentRackLeafToSpineM    float64 `yaml:"adjacent_rack_leaf_to_spine_m"`
	NonAdjacentRackLeafToSpineM float64 `yaml:"non_adjacent_rack_leaf_to_spine_m"`
	SlackFactor                 float64 `yaml:"slack_factor"`
	TileM                       float64 `yaml:"tile_m"`
	BinSlopM                    float64 `yaml:"bin_slop_m"`
}

// CablingPolicy is the fully defaulted, typed cabling policy. Loaders
// apply per-field defaults at construction; nothing downstream needs to
// re-check for missing sections.
type CablingPolicy struct {
	Version          string               `yaml:"version,omitempty"`
	Defaults         PolicyDefaults       `yaml:"defaults"`
	SiteDefaults     SiteDefaults         `yaml:"site_defaults"`
	MediaRules       map[string]MediaRule `yaml:"media_rules"`
	Redundancy       Redundancy           `yaml:"redundancy"`
	Oversubscription Oversubscription     `yaml:"oversubscription"`
	Heuristics       Heuristics           `yaml:"heuristics"`
}

// Media returns the rule for a media class, falling back to the built-in
// default rule when the class is unknown.
func (p *CablingPolicy) Media(class string) MediaRule {
	if r, ok := p.MediaRules[class]; ok {
		return r
	}
	return DefaultMediaRule(class)
}

// DefaultPolicy returns the engine's built-in policy, used when no
// policy file exists and as the per-field fallback during loading.
func DefaultPolicy() *CablingPolicy {
	return &CablingPolicy{
		Defaults: PolicyDefaults{
			Nodes25GPerNode:       2,
			MgmtRJ45PerNode:       1,
			TorUplinkQSFP28PerTor: 4,
			SparesFraction:        0.10,
			WanCat6aCount:         2,
		},
		SiteDefaults: SiteDefaults{
			NumRacks:        4,
			NodesPerRack:    4,
			UplinksPerRack:  2,
			MgmtRJ45PerNode: 1,
			WanCat6a:        2,
		},
		MediaRules: map[string]MediaRule{
			MediaSFP28:  DefaultMediaRule(MediaSFP28),
			MediaQSFP28: DefaultMediaRule(MediaQSFP28),
			MediaRJ45:   DefaultMediaRule(MediaRJ45),
		},
		Redundancy: Redundancy{
			NodeDualHoming: false,
			TorUplinksMin:  2,
		},
		Oversubscription: Oversubscription{
			MaxLeafToSpineRatio: 4.0,
			WarnMarginFraction:  0.25,
		},
		Heuristics: Heuristics{
			SameRackLeafToNodeM:         2.0,
			AdjacentRackLeafToSpineM:    10.0,
			NonAdjacentRackLeafToSpineM: 30.0,
			SlackFactor:                 1.2,
			TileM:                       1.0,
			BinSlopM:                    2.0,
		},
	}
}

// DefaultMediaRule returns the built-in rule for one media class
func DefaultMediaRule(class string) MediaRule {
	switch class {
	case MediaRJ45:
		return MediaRule{DacMaxM: 100, BinsM: []int{1, 3, 5, 10, 30, 100}}
	default:
		return MediaRule{DacMaxM: 3, BinsM: []int{1, 3, 5, 10, 30}}
	}
}
