package geometry

import (
	"testing"

	"github.com/martinsuchenak/cableplan/internal/model"

	"pgregory.net/rapid"
)

func TestRackDistance(t *testing.T) {
	tests := []struct {
		name  string
		a, b  model.GridPos
		tileM float64
		want  float64
	}{
		{"same tile", model.GridPos{X: 2, Y: 3}, model.GridPos{X: 2, Y: 3}, 1.0, 0},
		{"one tile apart", model.GridPos{X: 0, Y: 0}, model.GridPos{X: 1, Y: 0}, 1.0, 1},
		{"manhattan not euclidean", model.GridPos{X: 0, Y: 0}, model.GridPos{X: 3, Y: 4}, 1.0, 7},
		{"negative coordinates", model.GridPos{X: -2, Y: 1}, model.GridPos{X: 1, Y: -1}, 1.0, 5},
		{"tile scaling", model.GridPos{X: 0, Y: 0}, model.GridPos{X: 2, Y: 2}, 0.6, 2.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RackDistance(tt.a, tt.b, tt.tileM)
			if got != tt.want {
				t.Errorf("RackDistance(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.tileM, got, tt.want)
			}
		})
	}
}

func TestRackDistanceSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := model.GridPos{X: rapid.IntRange(-100, 100).Draw(t, "ax"), Y: rapid.IntRange(-100, 100).Draw(t, "ay")}
		b := model.GridPos{X: rapid.IntRange(-100, 100).Draw(t, "bx"), Y: rapid.IntRange(-100, 100).Draw(t, "by")}
		if RackDistance(a, b, 1.0) != RackDistance(b, a, 1.0) {
			t.Fatalf("distance not symmetric for %v and %v", a, b)
		}
	})
}

func TestApplySlack(t *testing.T) {
	if got := ApplySlack(10, 1.2); got != 12 {
		t.Errorf("ApplySlack(10, 1.2) = %v, want 12", got)
	}
	if got := ApplySlack(7.5, 1.0); got != 7.5 {
		t.Errorf("ApplySlack(7.5, 1.0) = %v, want 7.5", got)
	}
}

func TestSelectBin(t *testing.T) {
	bins := []int{1, 3, 5, 10, 30}

	tests := []struct {
		name     string
		distance float64
		bins     []int
		wantBin  int
		wantOK   bool
	}{
		{"exact match", 3.0, bins, 3, true},
		{"rounds up to next bin", 3.1, bins, 5, true},
		{"below smallest", 0.5, bins, 1, true},
		{"largest bin", 30.0, bins, 30, true},
		{"beyond largest", 30.1, bins, 0, false},
		{"unsorted input", 6.0, []int{30, 1, 10, 5, 3}, 10, true},
		{"empty bins", 1.0, nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin, ok := SelectBin(tt.distance, tt.bins)
			if bin != tt.wantBin || ok != tt.wantOK {
				t.Errorf("SelectBin(%v, %v) = (%d, %v), want (%d, %v)",
					tt.distance, tt.bins, bin, ok, tt.wantBin, tt.wantOK)
			}
		})
	}
}

func TestSelectBinIsSmallestCovering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bins := rapid.SliceOfNDistinct(rapid.IntRange(1, 200), 1, 8, rapid.ID).Draw(t, "bins")
		distance := rapid.Float64Range(0, 250).Draw(t, "distance")

		bin, ok := SelectBin(distance, bins)
		if !ok {
			for _, b := range bins {
				if float64(b) >= distance {
					t.Fatalf("SelectBin missed covering bin %d for %v", b, distance)
				}
			}
			return
		}
		if float64(bin) < distance {
			t.Fatalf("selected bin %d does not cover %v", bin, distance)
		}
		for _, b := range bins {
			if float64(b) >= distance && b < bin {
				t.Fatalf("bin %d covers %v and is smaller than selected %d", b, distance, bin)
			}
		}
	})
}

func TestSelectCableTypeAndBin(t *testing.T) {
	policy := model.DefaultPolicy()

	tests := []struct {
		name     string
		nicType  model.NicType
		distance float64
		wantType string
		wantBin  int
	}{
		// slack 1.2 applies before tier selection and binning
		{"sfp28 short run is DAC", model.NicSFP28, 2.0, "SFP28 25G DAC", 3},
		{"sfp28 dac boundary inclusive", model.NicSFP28, 2.5, "SFP28 25G DAC", 3},
		{"sfp28 mid run is AOC", model.NicSFP28, 5.0, "SFP28 25G AOC", 10},
		{"sfp28 long run is fiber", model.NicSFP28, 20.0, "SFP28 25G MMF + SR", 30},
		{"qsfp28 short run is DAC", model.NicQSFP28, 1.0, "QSFP28 100G DAC", 3},
		{"qsfp28 long run is fiber", model.NicQSFP28, 15.0, "QSFP28 100G MMF + SR4", 30},
		{"rj45 single label", model.NicRJ45, 4.0, "RJ45 Cat6A", 5},
		{"clamps to largest bin", model.NicSFP28, 100.0, "SFP28 25G MMF + SR", 30},
		{"unknown media keeps its bin", model.NicType("FancyNIC"), 3.0, "Unknown FancyNIC", 5},
		{"unknown media clamps to largest bin", model.NicType("FancyNIC"), 100.0, "Unknown FancyNIC", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cableType, bin := SelectCableTypeAndBin(tt.nicType, tt.distance, policy)
			if cableType != tt.wantType || bin != tt.wantBin {
				t.Errorf("SelectCableTypeAndBin(%s, %v) = (%q, %d), want (%q, %d)",
					tt.nicType, tt.distance, cableType, bin, tt.wantType, tt.wantBin)
			}
		})
	}
}

func TestSelectCableTypeAndBinCustomLabels(t *testing.T) {
	policy := model.DefaultPolicy()
	rule := policy.MediaRules[model.MediaSFP28]
	rule.Labels = model.MediaLabels{DAC: "25G-CU", AOC: "25G-AOC", Fiber: "25G-SR"}
	policy.MediaRules[model.MediaSFP28] = rule

	cableType, _ := SelectCableTypeAndBin(model.NicSFP28, 1.0, policy)
	if cableType != "25G-CU" {
		t.Errorf("expected custom DAC label, got %q", cableType)
	}
	cableType, _ = SelectCableTypeAndBin(model.NicSFP28, 50.0, policy)
	if cableType != "25G-SR" {
		t.Errorf("expected custom fiber label, got %q", cableType)
	}
}
