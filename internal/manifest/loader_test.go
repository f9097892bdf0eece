package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// writeManifest drops YAML content into a temp file and returns its path
func writeManifest(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test manifest: %v", err)
	}
	return path
}

func TestLoadTopology(t *testing.T) {
	path := writeManifest(t, "topology.yaml", `
spine:
  id: spine-1
  model: SN3700
  ports:
    qsfp28_total: 32
racks:
  - rack_id: rack-1
    tor_id: tor-1
    uplinks_qsfp28: 4
wan:
  uplinks_cat6a: 2
`)

	topo, err := LoadTopology(path)
	if err != nil {
		t.Fatalf("LoadTopology() error = %v", err)
	}
	if topo.Spine.ID != "spine-1" || topo.Spine.Ports.QSFP28Total != 32 {
		t.Errorf("spine = %+v", topo.Spine)
	}
	if len(topo.Racks) != 1 || topo.Racks[0].UplinksQSFP28 != 4 {
		t.Errorf("racks = %+v", topo.Racks)
	}
	if topo.Wan.UplinksCat6a != 2 {
		t.Errorf("wan = %+v", topo.Wan)
	}
}

func TestLoadTopologyRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty document", ""},
		{"rack missing id", "racks:\n  - tor_id: tor-1\n"},
		{"negative uplinks", "racks:\n  - rack_id: rack-1\n    tor_id: tor-1\n    uplinks_qsfp28: -2\n"},
		{"not yaml", ":{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, "topology.yaml", tt.content)
			if _, err := LoadTopology(path); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestLoadTors(t *testing.T) {
	path := writeManifest(t, "tors.yaml", `
tors:
  - id: tor-1
    rack_id: rack-1
    model: SN2410
    ports:
      sfp28_total: 48
      qsfp28_total: 8
spine:
  id: spine-1
  ports:
    qsfp28_total: 32
`)

	tors, spine, err := LoadTors(path)
	if err != nil {
		t.Fatalf("LoadTors() error = %v", err)
	}
	if tors["tor-1"].Ports.SFP28Total != 48 {
		t.Errorf("tor-1 = %+v", tors["tor-1"])
	}
	if spine == nil || spine.ID != "spine-1" {
		t.Errorf("spine = %+v", spine)
	}
}

func TestLoadTorsRejectsNegativePorts(t *testing.T) {
	path := writeManifest(t, "tors.yaml", `
tors:
  - id: tor-1
    rack_id: rack-1
    ports:
      sfp28_total: -1
`)
	if _, _, err := LoadTors(path); err == nil {
		t.Error("expected an error for negative port counts")
	}
}

func TestLoadNodes(t *testing.T) {
	path := writeManifest(t, "nodes.yaml", `
- id: node-1
  rack_id: rack-1
  nics:
    - type: SFP28
      count: 2
    - type: RJ45
- id: node-2
  rack_id: rack-1
`)

	nodes, err := LoadNodes(path)
	if err != nil {
		t.Fatalf("LoadNodes() error = %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].Nics[0].Count != 2 {
		t.Errorf("explicit count = %d, want 2", nodes[0].Nics[0].Count)
	}
	// omitted count defaults to 1
	if nodes[0].Nics[1].Count != 1 {
		t.Errorf("defaulted count = %d, want 1", nodes[0].Nics[1].Count)
	}
	if len(nodes[1].Nics) != 0 {
		t.Errorf("node-2 should have no NICs, got %+v", nodes[1].Nics)
	}
}

func TestLoadNodesRejectsUnknownNicType(t *testing.T) {
	path := writeManifest(t, "nodes.yaml", `
- id: node-1
  rack_id: rack-1
  nics:
    - type: QSFP56
`)
	if _, err := LoadNodes(path); err == nil {
		t.Error("expected an error for unknown NIC type")
	}
}

func TestLoadSiteGridForms(t *testing.T) {
	tests := []struct {
		name string
		grid string
		want model.GridPos
	}{
		{"sequence form", "[2, 3]", model.GridPos{X: 2, Y: 3}},
		{"scalar form", `"2,3"`, model.GridPos{X: 2, Y: 3}},
		{"scalar with spaces", `"2, 3"`, model.GridPos{X: 2, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, "site.yaml", `
racks:
  - id: rack-1
    grid: `+tt.grid+`
`)
			site, err := LoadSite(path)
			if err != nil {
				t.Fatalf("LoadSite() error = %v", err)
			}
			if site.Racks[0].Grid == nil || *site.Racks[0].Grid != tt.want {
				t.Errorf("grid = %v, want %v", site.Racks[0].Grid, tt.want)
			}
		})
	}
}

func TestLoadSiteMissingFileIsNotAnError(t *testing.T) {
	site, err := LoadSite(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSite() error = %v", err)
	}
	if site != nil {
		t.Errorf("expected nil site for missing file, got %+v", site)
	}
}

func TestLoadSiteSpineAndHandoff(t *testing.T) {
	path := writeManifest(t, "site.yaml", `
racks:
  - id: rack-1
    grid: [0, 1]
    tor_position_u: 40
spine:
  rack_id: rack-1
  wan_handoff:
    count: 3
    type: RJ45
`)

	site, err := LoadSite(path)
	if err != nil {
		t.Fatalf("LoadSite() error = %v", err)
	}
	if site.Spine == nil || site.Spine.RackID != "rack-1" {
		t.Fatalf("spine = %+v", site.Spine)
	}
	if site.Spine.WanHandoff == nil || site.Spine.WanHandoff.Count != 3 {
		t.Errorf("wan handoff = %+v", site.Spine.WanHandoff)
	}
	if site.Racks[0].TorPositionU == nil || *site.Racks[0].TorPositionU != 40 {
		t.Errorf("tor_position_u = %v, want 40", site.Racks[0].TorPositionU)
	}
}

func TestLoadPowerFeeds(t *testing.T) {
	path := writeManifest(t, "feeds.yaml", `
feeds:
  - id: feed-a
    voltage: 208
    amperage: 30
    rack_ids: [rack-1, rack-2]
`)

	feeds, err := LoadPowerFeeds(path)
	if err != nil {
		t.Fatalf("LoadPowerFeeds() error = %v", err)
	}
	if len(feeds) != 1 || feeds[0].Voltage != 208 {
		t.Errorf("feeds = %+v", feeds)
	}

	empty := writeManifest(t, "empty.yaml", "feeds: []\n")
	if _, err := LoadPowerFeeds(empty); err == nil {
		t.Error("expected an error for empty feed list")
	}
}
