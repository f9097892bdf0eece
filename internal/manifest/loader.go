// Package manifest loads the YAML manifests consumed by the cabling
// engine: topology, ToR inventory, nodes, site geometry, and policy.
// Loaders validate structure and return typed records; callers decide
// how load failures surface (the validation engines convert them into
// synthetic FAIL findings).
package manifest

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/model"

	"gopkg.in/yaml.v3"
)

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	return nil
}

// LoadTopology loads the capacity topology: one spine, racks, WAN
func LoadTopology(path string) (*model.Topology, error) {
	var topo model.Topology
	if err := readYAML(path, &topo); err != nil {
		return nil, err
	}
	if topo.Spine.ID == "" && len(topo.Racks) == 0 {
		return nil, fmt.Errorf("empty or invalid topology in %s", path)
	}
	for i, rack := range topo.Racks {
		if rack.RackID == "" {
			return nil, fmt.Errorf("topology rack %d missing rack_id in %s", i, path)
		}
		if rack.UplinksQSFP28 < 0 {
			return nil, fmt.Errorf("topology rack %s has negative uplinks_qsfp28 in %s", rack.RackID, path)
		}
	}
	return &topo, nil
}

// LoadInterfaceTopology loads the interface-level wiring view used by
// the BOM calculator (spines with connects_to references).
func LoadInterfaceTopology(path string) (*model.InterfaceTopology, error) {
	var topo model.InterfaceTopology
	if err := readYAML(path, &topo); err != nil {
		return nil, err
	}
	return &topo, nil
}

type torsYAML struct {
	Tors  []model.Tor  `yaml:"tors"`
	Spine *model.Spine `yaml:"spine,omitempty"`
}

// LoadTors loads the ToR inventory keyed by ToR id, plus the optional
// spine record declared alongside.
func LoadTors(path string) (map[string]model.Tor, *model.Spine, error) {
	var doc torsYAML
	if err := readYAML(path, &doc); err != nil {
		return nil, nil, err
	}
	tors := make(map[string]model.Tor, len(doc.Tors))
	for _, tor := range doc.Tors {
		if tor.ID == "" {
			return nil, nil, fmt.Errorf("ToR entry missing id in %s", path)
		}
		if tor.Ports.SFP28Total < 0 || tor.Ports.QSFP28Total < 0 {
			return nil, nil, fmt.Errorf("ToR %s has negative port counts in %s", tor.ID, path)
		}
		tors[tor.ID] = tor
	}
	return tors, doc.Spine, nil
}

// LoadNodes loads the node list. NIC counts default to 1 when omitted.
func LoadNodes(path string) ([]model.Node, error) {
	var nodes []model.Node
	if err := readYAML(path, &nodes); err != nil {
		return nil, err
	}
	for i := range nodes {
		node := &nodes[i]
		if node.ID == "" {
			return nil, fmt.Errorf("node entry %d missing id in %s", i, path)
		}
		if node.RackID == "" {
			return nil, fmt.Errorf("node %s missing rack_id in %s", node.ID, path)
		}
		for j := range node.Nics {
			nic := &node.Nics[j]
			switch nic.Type {
			case model.NicSFP28, model.NicQSFP28, model.NicRJ45:
			default:
				return nil, fmt.Errorf("node %s has unknown NIC type %q in %s", node.ID, nic.Type, path)
			}
			if nic.Count == 0 {
				nic.Count = 1
			}
			if nic.Count < 1 {
				return nil, fmt.Errorf("node %s NIC count must be >= 1 in %s", node.ID, path)
			}
		}
	}
	return nodes, nil
}

// gridYAML accepts either [x, y] or "x,y"
type gridYAML struct {
	pos *model.GridPos
}

func (g *gridYAML) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var pair [2]int
		if err := value.Decode(&pair); err != nil {
			return fmt.Errorf("grid must be two integers: %w", err)
		}
		g.pos = &model.GridPos{X: pair[0], Y: pair[1]}
		return nil
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		parts := strings.Split(raw, ",")
		if len(parts) != 2 {
			return fmt.Errorf("grid must be [x, y] or %q", "x,y")
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return fmt.Errorf("grid x is not an integer: %w", err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return fmt.Errorf("grid y is not an integer: %w", err)
		}
		g.pos = &model.GridPos{X: x, Y: y}
		return nil
	default:
		return fmt.Errorf("grid must be [x, y] or %q", "x,y")
	}
}

type siteRackYAML struct {
	ID           string    `yaml:"id"`
	Grid         *gridYAML `yaml:"grid,omitempty"`
	TorPositionU *int      `yaml:"tor_position_u,omitempty"`
}

type siteYAML struct {
	Racks []siteRackYAML   `yaml:"racks"`
	Spine *model.SiteSpine `yaml:"spine,omitempty"`
}

// LoadSite loads the optional site geometry. A missing file is not an
// error: it returns (nil, nil) and disables geometry-based checks.
func LoadSite(path string) (*model.Site, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	var doc siteYAML
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	site := &model.Site{Spine: doc.Spine}
	for _, r := range doc.Racks {
		if r.ID == "" {
			return nil, fmt.Errorf("site rack entry missing id in %s", path)
		}
		rack := model.SiteRack{ID: r.ID, TorPositionU: r.TorPositionU}
		if r.Grid != nil {
			rack.Grid = r.Grid.pos
		}
		site.Racks = append(site.Racks, rack)
	}
	return site, nil
}

type feedsYAML struct {
	Feeds []model.PowerFeed `yaml:"feeds"`
}

// LoadPowerFeeds loads the branch circuit inventory used by the cooling
// estimator.
func LoadPowerFeeds(path string) ([]model.PowerFeed, error) {
	var doc feedsYAML
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	if len(doc.Feeds) == 0 {
		return nil, fmt.Errorf("no power feeds defined in %s", path)
	}
	return doc.Feeds, nil
}
