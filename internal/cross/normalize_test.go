package cross

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/martinsuchenak/cableplan/internal/model"
)

func writeBOM(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bom.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write BOM fixture: %v", err)
	}
	return path
}

func TestLoadBOMItemList(t *testing.T) {
	path := writeBOM(t, `
items:
  - class: leaf-node
    cable_type: sfp28_25g
    length_bin_m: 3
    quantity: 24
  - class: wan
    cable_type: rj45_cat6a
    length_bin_m: 30
    quantity: 2
`)

	set, err := LoadBOM(path)
	if err != nil {
		t.Fatalf("LoadBOM() error = %v", err)
	}
	if set[model.ClassLeafNode][model.MediaSFP28][3] != 24 {
		t.Errorf("leaf-node = %+v", set[model.ClassLeafNode])
	}
	if set[model.ClassWan][model.MediaRJ45][30] != 2 {
		t.Errorf("wan = %+v", set[model.ClassWan])
	}
}

func TestLoadBOMLegacyFlatMap(t *testing.T) {
	path := writeBOM(t, `
metadata:
  generated_by: cableplan bom calculate
bom:
  sfp28_25g:
    3: 24
  qsfp28_100g:
    30: 8
  rj45_cat6a:
    10: 14
`)

	set, err := LoadBOM(path)
	if err != nil {
		t.Fatalf("LoadBOM() error = %v", err)
	}
	if set[model.ClassLeafNode][model.MediaSFP28][3] != 24 {
		t.Errorf("leaf-node = %+v", set)
	}
	if set[model.ClassLeafSpine][model.MediaQSFP28][30] != 8 {
		t.Errorf("leaf-spine = %+v", set)
	}
	// 14 RJ45 cables is too many for WAN trunks, classed as mgmt
	if set[model.ClassMgmt][model.MediaRJ45][10] != 14 {
		t.Errorf("mgmt = %+v", set)
	}
}

func TestLoadBOMQuotedBinKeys(t *testing.T) {
	// hand-edited BOMs sometimes quote the bin keys
	path := writeBOM(t, "bom:\n  sfp28_25g:\n    \"3\": 24\n    x: 1\n")

	set, err := LoadBOM(path)
	if err != nil {
		t.Fatalf("LoadBOM() error = %v", err)
	}
	if set[model.ClassLeafNode][model.MediaSFP28][3] != 24 {
		t.Errorf("leaf-node = %+v", set)
	}
}

func TestLoadBOMLegacyRootLevel(t *testing.T) {
	path := writeBOM(t, "rj45_cat6a:\n  10: 2\n")

	set, err := LoadBOM(path)
	if err != nil {
		t.Fatalf("LoadBOM() error = %v", err)
	}
	// small RJ45 quantities read as WAN trunks
	if set[model.ClassWan][model.MediaRJ45][10] != 2 {
		t.Errorf("wan = %+v", set)
	}
}

func TestLoadBOMErrors(t *testing.T) {
	if _, err := LoadBOM(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}

	empty := writeBOM(t, "")
	if _, err := LoadBOM(empty); err == nil {
		t.Error("expected an error for an empty file")
	}

	noBOM := writeBOM(t, "metadata:\n  generated_by: something\n")
	if _, err := LoadBOM(noBOM); err == nil {
		t.Error("expected an error when no BOM mapping is present")
	}
}

func TestInferClass(t *testing.T) {
	tests := []struct {
		cableType string
		quantity  int
		want      string
	}{
		{"sfp28_25g", 24, model.ClassLeafNode},
		{"qsfp28_100g", 8, model.ClassLeafSpine},
		{"rj45_cat6a", 14, model.ClassMgmt},
		{"rj45_cat6a", 2, model.ClassWan},
		{"mystery_media", 5, model.ClassUnknown},
	}

	for _, tt := range tests {
		if got := inferClass(tt.cableType, tt.quantity); got != tt.want {
			t.Errorf("inferClass(%q, %d) = %s, want %s", tt.cableType, tt.quantity, got, tt.want)
		}
	}
}
