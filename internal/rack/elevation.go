// Package rack renders vertical rack elevations from node chassis
// assignments.
package rack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// DefaultRackU is the standard full-height rack
const DefaultRackU = 42

const (
	slotEmpty        = "[ ]"
	slotChassisStart = "[█]"
	slotChassisCont  = "[■]"
)

// Elevation is a rendered top-down rack view, U42 first
type Elevation struct {
	RackID string
	RackU  int
	Slots  []string
}

// Render builds the elevation for one rack from the nodes mounted in
// it. Nodes without chassis info are skipped; multi-U chassis mark
// their first U with a full block and the rest with a lighter one.
func Render(nodes []model.Node, rackID string, rackU int) *Elevation {
	if rackU <= 0 {
		rackU = DefaultRackU
	}

	mounted := make([]model.Node, 0)
	for _, node := range nodes {
		if node.RackID == rackID && node.Chassis != nil {
			mounted = append(mounted, node)
		}
	}
	sort.Slice(mounted, func(i, j int) bool {
		return mounted[i].Chassis.UPosition > mounted[j].Chassis.UPosition
	})

	slots := make([]string, rackU)
	for i := range slots {
		slots[i] = slotEmpty
	}

	for _, node := range mounted {
		for i := 0; i < node.Chassis.HeightU; i++ {
			idx := rackU - node.Chassis.UPosition - i
			if idx < 0 || idx >= rackU {
				continue
			}
			if i == 0 {
				slots[idx] = slotChassisStart
			} else {
				slots[idx] = slotChassisCont
			}
		}
	}

	return &Elevation{RackID: rackID, RackU: rackU, Slots: slots}
}

// String formats the elevation as one line per U, top down
func (e *Elevation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rack Layout: %s (%dU)\n", e.RackID, e.RackU)
	for i, slot := range e.Slots {
		fmt.Fprintf(&b, "%02d %s\n", e.RackU-i, slot)
	}
	return b.String()
}
