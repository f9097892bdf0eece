// Package validate is the manifest validation engine: seven independent
// rule passes over typed manifests plus policy, aggregated into a
// Report. Passes never return errors; every problem is a Finding.
package validate

import (
	"fmt"

	"github.com/martinsuchenak/cableplan/internal/log"
	"github.com/martinsuchenak/cableplan/internal/manifest"
	"github.com/martinsuchenak/cableplan/internal/model"
)

// Paths names the manifest files for one validation run. Site may be
// absent on disk; the lengths pass degrades to an INFO finding then.
type Paths struct {
	Topology string
	Tors     string
	Nodes    string
	Site     string
	Policy   string
}

// Inputs is the loaded snapshot all passes consume
type Inputs struct {
	Topology  *model.Topology
	Tors      map[string]model.Tor
	Nodes     []model.Node
	Site      *model.Site
	Policy    *model.CablingPolicy
	RawPolicy map[string]any
}

// Run loads every manifest and executes all passes. Load failures never
// escape: they collapse into a single DATA_LOAD_ERROR report so callers
// always get a well-formed result.
func Run(paths Paths) *model.Report {
	in, err := load(paths)
	if err != nil {
		log.Error("manifest load failed", "error", err)
		return &model.Report{
			Summary: model.Summary{Fail: 1},
			Findings: []model.Finding{{
				Severity: model.SeverityFail,
				Code:     "DATA_LOAD_ERROR",
				Message:  fmt.Sprintf("failed to load required data: %v", err),
				Context:  map[string]any{"error": err.Error()},
			}},
		}
	}
	return RunChecks(in)
}

// RunChecks executes the seven passes against already loaded inputs.
// Pass order is fixed for display: policy sanity, ports, compatibility,
// oversubscription, completeness, lengths, redundancy.
func RunChecks(in *Inputs) *model.Report {
	var findings []model.Finding
	findings = append(findings, CheckPolicySanity(in.RawPolicy)...)
	findings = append(findings, CheckPorts(in.Topology, in.Tors, in.Nodes, in.Policy)...)
	findings = append(findings, CheckCompatibility(in.Topology, in.Tors, in.Nodes)...)
	findings = append(findings, CheckOversubscription(in.Topology, in.Nodes, in.Policy)...)
	findings = append(findings, CheckCompleteness(in.Topology, in.Tors, in.Nodes, in.Site)...)
	findings = append(findings, CheckLengths(in.Topology, in.Nodes, in.Site, in.Policy)...)
	findings = append(findings, CheckRedundancy(in.Topology, in.Nodes, in.Policy)...)

	summary := model.Tally(findings)

	// Pass count is an estimate of checks that could have run, not a
	// verified success count.
	possible := len(in.Topology.Racks)*4 + len(in.Nodes)*2 + 10
	summary.Pass = possible - summary.Warn - summary.Fail
	if summary.Pass < 0 {
		summary.Pass = 0
	}

	log.Debug("validation complete",
		"findings", len(findings),
		"fail", summary.Fail,
		"warn", summary.Warn)

	return &model.Report{Summary: summary, Findings: findings}
}

func load(paths Paths) (*Inputs, error) {
	policy, raw, err := manifest.LoadPolicy(paths.Policy)
	if err != nil {
		return nil, err
	}
	topology, err := manifest.LoadTopology(paths.Topology)
	if err != nil {
		return nil, err
	}
	tors, _, err := manifest.LoadTors(paths.Tors)
	if err != nil {
		return nil, err
	}
	nodes, err := manifest.LoadNodes(paths.Nodes)
	if err != nil {
		return nil, err
	}
	site, err := manifest.LoadSite(paths.Site)
	if err != nil {
		return nil, err
	}
	return &Inputs{
		Topology:  topology,
		Tors:      tors,
		Nodes:     nodes,
		Site:      site,
		Policy:    policy,
		RawPolicy: raw,
	}, nil
}

func nodesByRack(nodes []model.Node) map[string][]model.Node {
	byRack := make(map[string][]model.Node)
	for _, node := range nodes {
		byRack[node.RackID] = append(byRack[node.RackID], node)
	}
	return byRack
}
