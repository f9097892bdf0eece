// Package cooling estimates per-rack and site cooling demand from
// branch circuit capacity or modeled rack loads.
package cooling

import (
	"fmt"
	"os"

	"github.com/martinsuchenak/cableplan/internal/log"
	"github.com/martinsuchenak/cableplan/internal/model"

	"gopkg.in/yaml.v3"
)

const (
	SafetyFactor         = 1.25
	UPSEfficiency        = 0.92
	ContinuousLoadFactor = 0.80
	DefaultVoltage       = 240.0
	DefaultAmperage      = 30.0
)

// Estimation modes
const (
	ModeByCircuit = "by-circuit"
	ModeByLoad    = "by-load"
	ModeMeasured  = "measured"
)

// WattsToBTUPerHr converts watts to BTU/hr (1 watt = 3.412 BTU/hr)
func WattsToBTUPerHr(watts float64) float64 {
	return watts * 3.412
}

// BTUPerHrToTons converts BTU/hr to cooling tons (1 ton = 12,000 BTU/hr)
func BTUPerHrToTons(btuHr float64) float64 {
	return btuHr / 12000.0
}

// FeedCooling is one branch circuit's estimated cooling demand
type FeedCooling struct {
	FeedID   string
	BTUPerHr float64
	Tons     float64
}

// Report is the per-feed breakdown plus site totals
type Report struct {
	Mode          string
	Feeds         []FeedCooling
	TotalBTUPerHr float64
	TotalTons     float64
	Headroom      float64
}

// Options tune the estimation assumptions; zero values take the
// engineering defaults above.
type Options struct {
	Headroom         float64
	UPSEfficiency    float64
	ContinuousFactor float64
}

func (o Options) withDefaults() Options {
	if o.Headroom == 0 {
		o.Headroom = SafetyFactor
	}
	if o.UPSEfficiency == 0 {
		o.UPSEfficiency = UPSEfficiency
	}
	if o.ContinuousFactor == 0 {
		o.ContinuousFactor = ContinuousLoadFactor
	}
	return o
}

// EstimateByCircuit assumes every feed runs at the continuous load
// limit of its branch circuit, grossed up for UPS inefficiency and the
// cooling headroom factor.
func EstimateByCircuit(feeds []model.PowerFeed, opts Options) *Report {
	opts = opts.withDefaults()
	report := &Report{Mode: ModeByCircuit, Headroom: opts.Headroom}

	for _, feed := range feeds {
		voltage := float64(feed.Voltage)
		if voltage == 0 {
			voltage = DefaultVoltage
		}
		amperage := float64(feed.Amperage)
		if amperage == 0 {
			amperage = DefaultAmperage
		}

		continuousKW := voltage * amperage * opts.ContinuousFactor / 1000.0
		actualKW := continuousKW / opts.UPSEfficiency
		btuHr := WattsToBTUPerHr(actualKW*1000.0) * opts.Headroom

		report.Feeds = append(report.Feeds, FeedCooling{
			FeedID:   feed.ID,
			BTUPerHr: btuHr,
			Tons:     BTUPerHrToTons(btuHr),
		})
	}

	for _, f := range report.Feeds {
		report.TotalBTUPerHr += f.BTUPerHr
		report.TotalTons += f.Tons
	}
	return report
}

type budgetRack struct {
	FeedID         string  `yaml:"feed_id"`
	EstimatedDrawW float64 `yaml:"estimated_draw_w"`
}

type budgetDoc struct {
	Racks []budgetRack `yaml:"racks"`
}

// EstimateByLoad uses modeled rack watts from the power budget file.
// Any problem with the budget falls back to by-circuit estimation
// rather than failing.
func EstimateByLoad(feeds []model.PowerFeed, budgetPath string, opts Options) *Report {
	opts = opts.withDefaults()

	data, err := os.ReadFile(budgetPath)
	if err != nil {
		log.Warn("power budget unavailable, falling back to by-circuit", "path", budgetPath, "error", err)
		return EstimateByCircuit(feeds, opts)
	}

	var doc budgetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Warn("power budget unreadable, falling back to by-circuit", "path", budgetPath, "error", err)
		return EstimateByCircuit(feeds, opts)
	}

	loads := make(map[string]float64)
	for _, rack := range doc.Racks {
		if rack.FeedID != "" {
			loads[rack.FeedID] = rack.EstimatedDrawW
		}
	}
	if len(loads) == 0 {
		log.Warn("no per-rack loads in power budget, falling back to by-circuit", "path", budgetPath)
		return EstimateByCircuit(feeds, opts)
	}

	report := &Report{Mode: ModeByLoad, Headroom: opts.Headroom}
	for _, feed := range feeds {
		btuHr := WattsToBTUPerHr(loads[feed.ID]) * opts.Headroom
		report.Feeds = append(report.Feeds, FeedCooling{
			FeedID:   feed.ID,
			BTUPerHr: btuHr,
			Tons:     BTUPerHrToTons(btuHr),
		})
	}
	for _, f := range report.Feeds {
		report.TotalBTUPerHr += f.BTUPerHr
		report.TotalTons += f.Tons
	}
	return report
}

// Estimate dispatches on mode. Measured mode is a planned SNMP/Redfish
// integration and reports as unimplemented.
func Estimate(mode string, feeds []model.PowerFeed, budgetPath string, opts Options) (*Report, error) {
	switch mode {
	case ModeByCircuit:
		return EstimateByCircuit(feeds, opts), nil
	case ModeByLoad:
		return EstimateByLoad(feeds, budgetPath, opts), nil
	case ModeMeasured:
		return nil, fmt.Errorf("measured mode not yet implemented")
	default:
		return nil, fmt.Errorf("unknown cooling mode %q", mode)
	}
}
