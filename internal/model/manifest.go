package model

// NicType identifies the physical NIC media on a node
type NicType string

const (
	NicSFP28  NicType = "SFP28"
	NicQSFP28 NicType = "QSFP28"
	NicRJ45   NicType = "RJ45"
)

// Nic is a network interface declaration on a node
type Nic struct {
	Type  NicType `yaml:"type"`
	Count int     `yaml:"count"`
}

// Chassis holds the physical mounting info used by rack elevation rendering
type Chassis struct {
	UPosition int `yaml:"u_position"`
	HeightU   int `yaml:"height_u"`
}

// Node is a compute node with rack placement and NIC declarations.
// An empty NIC list means the policy default NIC count applies.
type Node struct {
	ID       string   `yaml:"id"`
	RackID   string   `yaml:"rack_id"`
	Hostname string   `yaml:"hostname,omitempty"`
	Nics     []Nic    `yaml:"nics,omitempty"`
	Chassis  *Chassis `yaml:"chassis,omitempty"`
}

// TorPorts is the port inventory of a top-of-rack switch
type TorPorts struct {
	SFP28Total  int `yaml:"sfp28_total"`
	QSFP28Total int `yaml:"qsfp28_total"`
}

// Tor is a top-of-rack switch record
type Tor struct {
	ID     string   `yaml:"id"`
	RackID string   `yaml:"rack_id"`
	Model  string   `yaml:"model"`
	Ports  TorPorts `yaml:"ports"`
}

// SpinePorts is the port inventory of the spine switch
type SpinePorts struct {
	QSFP28Total int `yaml:"qsfp28_total"`
}

// Spine is the spine switch record
type Spine struct {
	ID    string     `yaml:"id"`
	Model string     `yaml:"model"`
	Ports SpinePorts `yaml:"ports"`
}

// TopologyRack binds a rack to its ToR and declares its spine uplink count
type TopologyRack struct {
	RackID        string `yaml:"rack_id"`
	TorID         string `yaml:"tor_id"`
	UplinksQSFP28 int    `yaml:"uplinks_qsfp28"`
}

// Wan declares the site's WAN handoff trunk count
type Wan struct {
	UplinksCat6a int `yaml:"uplinks_cat6a"`
}

// Topology is the capacity view of the network: one spine, racks, WAN
type Topology struct {
	Spine Spine          `yaml:"spine"`
	Racks []TopologyRack `yaml:"racks"`
	Wan   Wan            `yaml:"wan"`
}

// GridPos is a rack position on the site floor grid, in tile units
type GridPos struct {
	X int
	Y int
}

// SiteRack is the physical placement of one rack. Grid is nil when the
// rack has no recorded floor position.
type SiteRack struct {
	ID           string
	Grid         *GridPos
	TorPositionU *int
}

// WanHandoff describes the WAN demarc cabling declared in site geometry
type WanHandoff struct {
	Count int    `yaml:"count"`
	Type  string `yaml:"type"`
}

// SiteSpine locates the spine switch on the floor and carries the WAN handoff
type SiteSpine struct {
	RackID     string      `yaml:"rack_id"`
	WanHandoff *WanHandoff `yaml:"wan_handoff,omitempty"`
}

// Site is the optional physical floor geometry. When absent, all
// geometry-based checks degrade to heuristics or INFO findings.
type Site struct {
	Racks []SiteRack
	Spine *SiteSpine
}

// RackPositions returns a lookup of rack id to grid position, skipping
// racks without a recorded position.
func (s *Site) RackPositions() map[string]GridPos {
	positions := make(map[string]GridPos)
	if s == nil {
		return positions
	}
	for _, r := range s.Racks {
		if r.Grid != nil {
			positions[r.ID] = *r.Grid
		}
	}
	return positions
}

// SpineInterface is one port on a spine switch in the interface-level
// topology used by the BOM calculator. ConnectsTo is "leaf-id:port".
type SpineInterface struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	ConnectsTo string `yaml:"connects_to,omitempty"`
}

// SpineSwitch is a spine entry in the interface-level topology
type SpineSwitch struct {
	ID         string           `yaml:"id"`
	Model      string           `yaml:"model,omitempty"`
	Interfaces []SpineInterface `yaml:"interfaces,omitempty"`
}

// Leaf is a leaf switch entry in the interface-level topology
type Leaf struct {
	ID     string `yaml:"id"`
	RackID string `yaml:"rack_id"`
}

// InterfaceTopology is the interface-level wiring view consumed by the
// BOM calculator: explicit spine ports with connects_to references.
type InterfaceTopology struct {
	Spines []SpineSwitch `yaml:"spines"`
	Leafs  []Leaf        `yaml:"leafs"`
}

// PowerFeed is a branch circuit feeding one or more racks
type PowerFeed struct {
	ID       string   `yaml:"id"`
	Voltage  int      `yaml:"voltage"`
	Amperage int      `yaml:"amperage"`
	RackIDs  []string `yaml:"rack_ids,omitempty"`
}
