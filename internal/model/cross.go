package model

// Link classes used by the cross-validation engine
const (
	ClassLeafNode  = "leaf-node"
	ClassLeafSpine = "leaf-spine"
	ClassMgmt      = "mgmt"
	ClassWan       = "wan"
	ClassUnknown   = "unknown"
)

// CrossFinding is a single reconciliation result
type CrossFinding struct {
	Severity Severity       `yaml:"severity"`
	Code     string         `yaml:"code"`
	Message  string         `yaml:"message"`
	Context  map[string]any `yaml:"context,omitempty"`
}

// CrossSummary tallies reconciliation findings by kind. MismatchedMedia
// and CountMismatch are reserved for future finding codes and stay zero.
type CrossSummary struct {
	Missing         int `yaml:"missing"`
	Phantom         int `yaml:"phantom"`
	MismatchedMedia int `yaml:"mismatched_media"`
	MismatchedBin   int `yaml:"mismatched_bin"`
	CountMismatch   int `yaml:"count_mismatch"`
}

// Multiset is the canonical reconciliation shape:
// class -> cable_type -> length bin -> count.
type Multiset map[string]map[string]map[int]int

// Add accumulates quantity into the multiset, creating levels as needed
func (m Multiset) Add(class, cableType string, bin, quantity int) {
	if m[class] == nil {
		m[class] = make(map[string]map[int]int)
	}
	if m[class][cableType] == nil {
		m[class][cableType] = make(map[int]int)
	}
	m[class][cableType][bin] += quantity
}

// Clone deep-copies the multiset so reconciliation can consume entries
// without touching the caller's copy.
func (m Multiset) Clone() Multiset {
	out := make(Multiset, len(m))
	for class, types := range m {
		out[class] = make(map[string]map[int]int, len(types))
		for cableType, bins := range types {
			out[class][cableType] = make(map[int]int, len(bins))
			for bin, count := range bins {
				out[class][cableType][bin] = count
			}
		}
	}
	return out
}

// MappingStats carries both reconciled multisets for audit
type MappingStats struct {
	Intent Multiset `yaml:"intent"`
	BOM    Multiset `yaml:"bom"`
}

// CrossReport is one reconciliation run's complete output
type CrossReport struct {
	Summary      CrossSummary   `yaml:"summary"`
	Findings     []CrossFinding `yaml:"findings"`
	MappingStats MappingStats   `yaml:"mapping_stats"`
}

// HasFailures reports whether any FAIL finding is present
func (r *CrossReport) HasFailures() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityFail {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any WARN finding is present
func (r *CrossReport) HasWarnings() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityWarn {
			return true
		}
	}
	return false
}
