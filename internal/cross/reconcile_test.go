package cross

import (
	"testing"

	"github.com/martinsuchenak/cableplan/internal/model"

	"pgregory.net/rapid"
)

func multiset(entries ...[4]any) model.Multiset {
	m := make(model.Multiset)
	for _, e := range entries {
		m.Add(e[0].(string), e[1].(string), e[2].(int), e[3].(int))
	}
	return m
}

func crossByCode(findings []model.CrossFinding, code string) []model.CrossFinding {
	var matched []model.CrossFinding
	for _, f := range findings {
		if f.Code == code {
			matched = append(matched, f)
		}
	}
	return matched
}

func TestReconcileIdenticalSetsAreClean(t *testing.T) {
	set := multiset(
		[4]any{model.ClassLeafNode, model.MediaSFP28, 3, 24},
		[4]any{model.ClassLeafSpine, model.MediaQSFP28, 30, 8},
		[4]any{model.ClassMgmt, model.MediaRJ45, 10, 12},
	)

	findings := Reconcile(set, set.Clone(), 2.0)
	if len(findings) != 0 {
		t.Errorf("identical multisets should reconcile cleanly, got %+v", findings)
	}
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	bom := multiset([4]any{model.ClassWan, model.MediaRJ45, 10, 2})
	intent := multiset([4]any{model.ClassWan, model.MediaRJ45, 10, 2})

	Reconcile(bom, intent, 2.0)

	if bom[model.ClassWan][model.MediaRJ45][10] != 2 {
		t.Error("BOM multiset was mutated")
	}
	if intent[model.ClassWan][model.MediaRJ45][10] != 2 {
		t.Error("intent multiset was mutated")
	}
}

func TestReconcileMissingLink(t *testing.T) {
	bom := multiset()
	intent := multiset([4]any{model.ClassLeafSpine, model.MediaQSFP28, 30, 8})

	findings := Reconcile(bom, intent, 2.0)
	matched := crossByCode(findings, "MISSING_LINK")
	if len(matched) != 1 {
		t.Fatalf("expected 1 MISSING_LINK, got %+v", findings)
	}
	if matched[0].Severity != model.SeverityFail {
		t.Errorf("severity = %s, want FAIL", matched[0].Severity)
	}
	if matched[0].Context["required"] != 8 || matched[0].Context["provided"] != 0 {
		t.Errorf("context = %+v", matched[0].Context)
	}
}

func TestReconcilePhantomItem(t *testing.T) {
	bom := multiset([4]any{model.ClassWan, model.MediaRJ45, 10, 3})
	intent := multiset()

	findings := Reconcile(bom, intent, 2.0)
	matched := crossByCode(findings, "PHANTOM_ITEM")
	if len(matched) != 1 {
		t.Fatalf("expected 1 PHANTOM_ITEM, got %+v", findings)
	}
	if matched[0].Severity != model.SeverityWarn {
		t.Errorf("severity = %s, want WARN", matched[0].Severity)
	}
	if matched[0].Context["provided"] != 3 || matched[0].Context["required"] != 0 {
		t.Errorf("context = %+v", matched[0].Context)
	}
}

func TestReconcileBinMismatch(t *testing.T) {
	tests := []struct {
		name      string
		bomBin    int
		intentBin int
		slop      float64
		wantCode  string
	}{
		{"longer within slop warns", 5, 3, 2.0, "BIN_MISMATCH_WARN"},
		{"longer past slop fails", 10, 3, 2.0, "BIN_MISMATCH_FAIL"},
		{"shorter than intent fails", 3, 5, 2.0, "BIN_MISMATCH_FAIL"},
		{"exactly at slop warns", 12, 10, 2.0, "BIN_MISMATCH_WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bom := multiset([4]any{model.ClassLeafNode, model.MediaSFP28, tt.bomBin, 4})
			intent := multiset([4]any{model.ClassLeafNode, model.MediaSFP28, tt.intentBin, 4})

			findings := Reconcile(bom, intent, tt.slop)
			if len(findings) != 1 {
				t.Fatalf("expected exactly 1 finding, got %+v", findings)
			}
			if findings[0].Code != tt.wantCode {
				t.Errorf("code = %s, want %s", findings[0].Code, tt.wantCode)
			}
			if findings[0].Context["bom_bin_m"] != tt.bomBin || findings[0].Context["intent_bin_m"] != tt.intentBin {
				t.Errorf("context = %+v", findings[0].Context)
			}
		})
	}
}

func TestReconcileQuantityMismatchFallsThrough(t *testing.T) {
	// Same class and cable type, nearby bins, but quantities differ:
	// no bin pairing happens, both sides surface separately.
	bom := multiset([4]any{model.ClassLeafNode, model.MediaSFP28, 5, 4})
	intent := multiset([4]any{model.ClassLeafNode, model.MediaSFP28, 3, 6})

	findings := Reconcile(bom, intent, 2.0)
	if len(crossByCode(findings, "MISSING_LINK")) != 1 {
		t.Errorf("expected MISSING_LINK, got %+v", findings)
	}
	if len(crossByCode(findings, "PHANTOM_ITEM")) != 1 {
		t.Errorf("expected PHANTOM_ITEM, got %+v", findings)
	}
}

func TestReconcilePartialQuantityOverlap(t *testing.T) {
	// 10 provided vs 6 required at the same bin: the overlap cancels,
	// the 4 extra surface as phantom.
	bom := multiset([4]any{model.ClassMgmt, model.MediaRJ45, 10, 10})
	intent := multiset([4]any{model.ClassMgmt, model.MediaRJ45, 10, 6})

	findings := Reconcile(bom, intent, 2.0)
	matched := crossByCode(findings, "PHANTOM_ITEM")
	if len(matched) != 1 || matched[0].Context["provided"] != 4 {
		t.Errorf("expected phantom of 4, got %+v", findings)
	}
}

func TestReconcileSelfIsAlwaysClean(t *testing.T) {
	classGen := rapid.SampledFrom([]string{model.ClassLeafNode, model.ClassLeafSpine, model.ClassMgmt, model.ClassWan})
	typeGen := rapid.SampledFrom([]string{model.MediaSFP28, model.MediaQSFP28, model.MediaRJ45})

	rapid.Check(t, func(t *rapid.T) {
		set := make(model.Multiset)
		n := rapid.IntRange(0, 12).Draw(t, "entries")
		for i := 0; i < n; i++ {
			set.Add(
				classGen.Draw(t, "class"),
				typeGen.Draw(t, "type"),
				rapid.SampledFrom([]int{1, 3, 5, 10, 30, 100}).Draw(t, "bin"),
				rapid.IntRange(1, 50).Draw(t, "qty"),
			)
		}

		findings := Reconcile(set, set.Clone(), 2.0)
		if len(findings) != 0 {
			t.Fatalf("self reconciliation produced findings: %+v", findings)
		}
	})
}
