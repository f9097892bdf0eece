package cross

import (
	"fmt"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/log"
	"github.com/martinsuchenak/cableplan/internal/manifest"
	"github.com/martinsuchenak/cableplan/internal/model"
)

// Paths names the inputs for one reconciliation run
type Paths struct {
	Topology string
	Tors     string
	Nodes    string
	Site     string
	Policy   string
	BOM      string
}

// Run loads manifests plus the candidate BOM, derives intent, and
// reconciles the two. Load failures collapse into a single LOAD_ERROR
// report; the engine never returns an error.
func Run(paths Paths) *model.CrossReport {
	topology, err := manifest.LoadTopology(paths.Topology)
	if err != nil {
		return loadErrorReport(err)
	}
	if _, _, err := manifest.LoadTors(paths.Tors); err != nil {
		return loadErrorReport(err)
	}
	nodes, err := manifest.LoadNodes(paths.Nodes)
	if err != nil {
		return loadErrorReport(err)
	}
	site, err := manifest.LoadSite(paths.Site)
	if err != nil {
		return loadErrorReport(err)
	}
	policy, _, err := manifest.LoadPolicy(paths.Policy)
	if err != nil {
		return loadErrorReport(err)
	}
	bomSet, err := LoadBOM(paths.BOM)
	if err != nil {
		return loadErrorReport(err)
	}

	return Validate(topology, nodes, site, policy, bomSet)
}

// Validate reconciles an already normalized BOM multiset against
// freshly derived intent.
func Validate(topology *model.Topology, nodes []model.Node, site *model.Site, policy *model.CablingPolicy, bomSet model.Multiset) *model.CrossReport {
	intentLinks := DeriveIntentLinks(topology, nodes, site, policy)
	intentSet := AggregateIntent(intentLinks)

	findings := Reconcile(bomSet, intentSet, policy.Heuristics.BinSlopM)

	summary := model.CrossSummary{}
	for _, f := range findings {
		switch {
		case f.Code == "MISSING_LINK":
			summary.Missing++
		case f.Code == "PHANTOM_ITEM":
			summary.Phantom++
		case f.Code == "MEDIA_MISMATCH":
			summary.MismatchedMedia++
		case strings.HasPrefix(f.Code, "BIN_MISMATCH"):
			summary.MismatchedBin++
		case f.Code == "COUNT_MISMATCH":
			summary.CountMismatch++
		}
	}

	log.Debug("cross-validation complete",
		"intent_links", len(intentLinks),
		"findings", len(findings))

	return &model.CrossReport{
		Summary:  summary,
		Findings: findings,
		MappingStats: model.MappingStats{
			Intent: intentSet,
			BOM:    bomSet,
		},
	}
}

func loadErrorReport(err error) *model.CrossReport {
	log.Error("cross-validation load failed", "error", err)
	return &model.CrossReport{
		Findings: []model.CrossFinding{{
			Severity: model.SeverityFail,
			Code:     "LOAD_ERROR",
			Message:  fmt.Sprintf("failed to load required data: %v", err),
			Context:  map[string]any{"error": err.Error()},
		}},
		MappingStats: model.MappingStats{
			Intent: model.Multiset{},
			BOM:    model.Multiset{},
		},
	}
}
