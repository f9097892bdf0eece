package model

// Severity classifies a finding. FAIL blocks, WARN needs review, INFO is
// purely informational.
type Severity string

const (
	SeverityFail Severity = "FAIL"
	SeverityWarn Severity = "WARN"
	SeverityInfo Severity = "INFO"
)

// Rank gives a total ordering for summarization: higher is worse
func (s Severity) Rank() int {
	switch s {
	case SeverityFail:
		return 2
	case SeverityWarn:
		return 1
	default:
		return 0
	}
}

// Finding is a single validation result. Findings are immutable facts;
// they are never mutated after creation.
type Finding struct {
	Severity Severity       `yaml:"severity"`
	Code     string         `yaml:"code"`
	Message  string         `yaml:"message"`
	Context  map[string]any `yaml:"context,omitempty"`
}

// Summary counts findings per severity. Pass is an informational
// estimate of successful checks, not a verified count.
type Summary struct {
	Pass int `yaml:"pass"`
	Warn int `yaml:"warn"`
	Fail int `yaml:"fail"`
	Info int `yaml:"info"`
}

// Report is one validation run's complete output
type Report struct {
	Summary  Summary   `yaml:"summary"`
	Findings []Finding `yaml:"findings"`
}

// HasFailures reports whether any FAIL finding is present
func (r *Report) HasFailures() bool {
	return r.Summary.Fail > 0
}

// HasWarnings reports whether any WARN finding is present
func (r *Report) HasWarnings() bool {
	return r.Summary.Warn > 0
}

// Tally counts severities across findings and fills the Warn/Fail/Info
// summary fields.
func Tally(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		switch f.Severity {
		case SeverityFail:
			s.Fail++
		case SeverityWarn:
			s.Warn++
		case SeverityInfo:
			s.Info++
		}
	}
	return s
}
