package cross

import (
	"testing"

	"github.com/martinsuchenak/cableplan/internal/model"
)

func TestValidateRoundTripIsClean(t *testing.T) {
	topology, nodes := deriveFixtures()
	policy := model.DefaultPolicy()

	// a BOM produced from the same intent reconciles with no findings
	bomSet := AggregateIntent(DeriveIntentLinks(topology, nodes, nil, policy))

	report := Validate(topology, nodes, nil, policy, bomSet)
	if len(report.Findings) != 0 {
		t.Errorf("round-trip should be clean, got %+v", report.Findings)
	}
	if report.HasFailures() || report.HasWarnings() {
		t.Error("clean report flagged failures or warnings")
	}
	if report.MappingStats.Intent == nil || report.MappingStats.BOM == nil {
		t.Error("mapping stats should carry both multisets")
	}
}

func TestValidateSummaryCounts(t *testing.T) {
	topology, nodes := deriveFixtures()
	policy := model.DefaultPolicy()

	// empty BOM: every derived (class, type, bin) combination is missing
	report := Validate(topology, nodes, nil, policy, make(model.Multiset))
	if report.Summary.Missing != 4 {
		t.Errorf("missing = %d, want 4", report.Summary.Missing)
	}
	if !report.HasFailures() {
		t.Error("missing links must fail the report")
	}

	// BOM with an extra line and a shifted bin
	bomSet := AggregateIntent(DeriveIntentLinks(topology, nodes, nil, policy))
	bomSet.Add("unknown", "mystery_media", 5, 1)

	report = Validate(topology, nodes, nil, policy, bomSet)
	if report.Summary.Phantom != 1 {
		t.Errorf("phantom = %d, want 1", report.Summary.Phantom)
	}
}

func TestValidateBinDriftSummary(t *testing.T) {
	topology, nodes := deriveFixtures()
	policy := model.DefaultPolicy()

	intentSet := AggregateIntent(DeriveIntentLinks(topology, nodes, nil, policy))

	// shift every leaf-spine cable from the 30m bin to 10m
	bomSet := intentSet.Clone()
	count := bomSet[model.ClassLeafSpine][model.MediaQSFP28][30]
	delete(bomSet[model.ClassLeafSpine][model.MediaQSFP28], 30)
	bomSet.Add(model.ClassLeafSpine, model.MediaQSFP28, 10, count)

	report := Validate(topology, nodes, nil, policy, bomSet)
	if report.Summary.MismatchedBin != 1 {
		t.Errorf("mismatched bins = %d, want 1, findings %+v", report.Summary.MismatchedBin, report.Findings)
	}
}

func TestRunReportsLoadError(t *testing.T) {
	report := Run(Paths{Topology: "/nonexistent/topology.yaml"})

	if !report.HasFailures() {
		t.Fatal("unloadable manifests must fail")
	}
	if len(report.Findings) != 1 || report.Findings[0].Code != "LOAD_ERROR" {
		t.Errorf("findings = %+v, want single LOAD_ERROR", report.Findings)
	}
	if report.MappingStats.Intent == nil || report.MappingStats.BOM == nil {
		t.Error("load error reports still carry empty mapping stats")
	}
}
