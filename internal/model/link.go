package model

// Link categories produced by the BOM calculator and intent deriver
const (
	CategorySpineToLeaf = "spine_to_leaf"
	CategoryWan         = "wan"
	CategoryLeafToNode  = "leaf_to_node"
	CategoryMgmt        = "mgmt"
)

// Link is one derived physical cable run. Links are ephemeral: built,
// aggregated into a BOM, and discarded.
type Link struct {
	From      string  `yaml:"from"`
	To        string  `yaml:"to"`
	Type      string  `yaml:"type"`
	DistanceM float64 `yaml:"distance_m"`
	CableType string  `yaml:"cable_type"`
	LengthBin int     `yaml:"length_bin"`
	Category  string  `yaml:"category"`
}

// BOM maps cable type to length bin to quantity (post-spares)
type BOM map[string]map[int]int
