package manifest

import (
	"fmt"
	"os"

	"github.com/martinsuchenak/cableplan/internal/model"

	"gopkg.in/yaml.v3"
)

type policyDefaultsYAML struct {
	Nodes25GPerNode       *int     `yaml:"nodes_25g_per_node"`
	MgmtRJ45PerNode       *int     `yaml:"mgmt_rj45_per_node"`
	TorUplinkQSFP28PerTor *int     `yaml:"tor_uplink_qsfp28_per_tor"`
	SparesFraction        *float64 `yaml:"spares_fraction"`
	WanCat6aCount         *int     `yaml:"wan_cat6a_count"`
}

type siteDefaultsYAML struct {
	NumRacks        *int `yaml:"num_racks"`
	NodesPerRack    *int `yaml:"nodes_per_rack"`
	UplinksPerRack  *int `yaml:"uplinks_per_rack"`
	MgmtRJ45PerNode *int `yaml:"mgmt_rj45_per_node"`
	WanCat6a        *int `yaml:"wan_cat6a"`
}

type mediaRuleYAML struct {
	DacMaxM *float64           `yaml:"dac_max_m"`
	BinsM   []int              `yaml:"bins_m"`
	Labels  *model.MediaLabels `yaml:"labels"`
}

type redundancyYAML struct {
	NodeDualHoming *bool `yaml:"node_dual_homing"`
	TorUplinksMin  *int  `yaml:"tor_uplinks_min"`
}

type oversubYAML struct {
	MaxLeafToSpineRatio *float64 `yaml:"max_leaf_to_spine_ratio"`
	WarnMarginFraction  *float64 `yaml:"warn_margin_fraction"`
}

type heuristicsYAML struct {
	SameRackLeafToNodeM         *float64 `yaml:"same_rack_leaf_to_node_m"`
	AdjacentRackLeafToSpineM    *float64 `yaml:"adjacent_rack_leaf_to_spine_m"`
	NonAdjacentRackLeafToSpineM *float64 `yaml:"non_adjacent_rack_leaf_to_spine_m"`
	SlackFactor                 *float64 `yaml:"slack_factor"`
	TileM                       *float64 `yaml:"tile_m"`
	BinSlopM                    *float64 `yaml:"bin_slop_m"`
}

type policyYAML struct {
	Version          string                   `yaml:"version"`
	Defaults         *policyDefaultsYAML      `yaml:"defaults"`
	SiteDefaults     *siteDefaultsYAML        `yaml:"site_defaults"`
	SiteDefaultsAlt  *siteDefaultsYAML        `yaml:"site-defaults"`
	MediaRules       map[string]mediaRuleYAML `yaml:"media_rules"`
	Redundancy       *redundancyYAML          `yaml:"redundancy"`
	Oversubscription *oversubYAML             `yaml:"oversubscription"`
	Heuristics       *heuristicsYAML          `yaml:"heuristics"`
}

// LoadPolicy loads the cabling policy, applying built-in defaults per
// field so the returned policy is always complete. The raw document is
// returned alongside for the policy sanity pass, which needs to see the
// file as written rather than the defaulted view. An empty path yields
// the built-in policy with a nil raw document.
func LoadPolicy(path string) (*model.CablingPolicy, map[string]any, error) {
	policy := model.DefaultPolicy()
	if path == "" {
		return policy, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	var doc policyYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("invalid policy in %s: %w", path, err)
	}

	policy.Version = doc.Version

	if d := doc.Defaults; d != nil {
		setInt(&policy.Defaults.Nodes25GPerNode, d.Nodes25GPerNode)
		setInt(&policy.Defaults.MgmtRJ45PerNode, d.MgmtRJ45PerNode)
		setInt(&policy.Defaults.TorUplinkQSFP28PerTor, d.TorUplinkQSFP28PerTor)
		setFloat(&policy.Defaults.SparesFraction, d.SparesFraction)
		setInt(&policy.Defaults.WanCat6aCount, d.WanCat6aCount)
	}

	site := doc.SiteDefaults
	if site == nil {
		site = doc.SiteDefaultsAlt
	}
	if site != nil {
		setInt(&policy.SiteDefaults.NumRacks, site.NumRacks)
		setInt(&policy.SiteDefaults.NodesPerRack, site.NodesPerRack)
		setInt(&policy.SiteDefaults.UplinksPerRack, site.UplinksPerRack)
		setInt(&policy.SiteDefaults.MgmtRJ45PerNode, site.MgmtRJ45PerNode)
		setInt(&policy.SiteDefaults.WanCat6a, site.WanCat6a)
	}

	for class, rule := range doc.MediaRules {
		merged := model.DefaultMediaRule(class)
		if rule.DacMaxM != nil {
			merged.DacMaxM = *rule.DacMaxM
		}
		if len(rule.BinsM) > 0 {
			merged.BinsM = rule.BinsM
		}
		if rule.Labels != nil {
			merged.Labels = *rule.Labels
		}
		policy.MediaRules[class] = merged
	}

	if r := doc.Redundancy; r != nil {
		if r.NodeDualHoming != nil {
			policy.Redundancy.NodeDualHoming = *r.NodeDualHoming
		}
		setInt(&policy.Redundancy.TorUplinksMin, r.TorUplinksMin)
	}

	if o := doc.Oversubscription; o != nil {
		setFloat(&policy.Oversubscription.MaxLeafToSpineRatio, o.MaxLeafToSpineRatio)
		setFloat(&policy.Oversubscription.WarnMarginFraction, o.WarnMarginFraction)
	}

	if h := doc.Heuristics; h != nil {
		setFloat(&policy.Heuristics.SameRackLeafToNodeM, h.SameRackLeafToNodeM)
		setFloat(&policy.Heuristics.AdjacentRackLeafToSpineM, h.AdjacentRackLeafToSpineM)
		setFloat(&policy.Heuristics.NonAdjacentRackLeafToSpineM, h.NonAdjacentRackLeafToSpineM)
		setFloat(&policy.Heuristics.SlackFactor, h.SlackFactor)
		setFloat(&policy.Heuristics.TileM, h.TileM)
		setFloat(&policy.Heuristics.BinSlopM, h.BinSlopM)
	}

	return policy, raw, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
