// Package graph renders the interface-level network topology as
// Graphviz DOT text: spine clusters connected to leaf port nodes.
package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/martinsuchenak/cableplan/internal/model"
)

// WriteNetworkDOT emits a left-to-right digraph of the leaf-spine
// fabric. Spine interfaces render as ellipses grouped per switch,
// leaf ports as boxes, and each connects_to reference becomes an edge.
func WriteNetworkDOT(w io.Writer, topology *model.InterfaceTopology) error {
	var b strings.Builder

	b.WriteString("digraph network_topology {\n")
	b.WriteString("  rankdir=LR;\n")

	leafRacks := make(map[string]string, len(topology.Leafs))
	for _, leaf := range topology.Leafs {
		leafRacks[leaf.ID] = leaf.RackID
	}

	leafPorts := make(map[string][]string)

	for _, spine := range topology.Spines {
		fmt.Fprintf(&b, "  subgraph \"cluster_%s\" {\n", spine.ID)
		label := spine.ID
		if spine.Model != "" {
			label = fmt.Sprintf("%s (%s)", spine.Model, spine.ID)
		}
		fmt.Fprintf(&b, "    label=%q;\n", label)
		b.WriteString("    style=rounded;\n")
		b.WriteString("    color=lightblue;\n")
		for _, iface := range spine.Interfaces {
			nodeID := fmt.Sprintf("%s@%s", spine.ID, iface.Name)
			fmt.Fprintf(&b, "    %q [label=\"%s\\n%s\", shape=ellipse];\n", nodeID, iface.Name, iface.Type)
		}
		b.WriteString("  }\n")
	}

	for _, spine := range topology.Spines {
		for _, iface := range spine.Interfaces {
			if iface.ConnectsTo == "" {
				continue
			}
			target := strings.Replace(iface.ConnectsTo, ":", "@", 1)
			if leafID, _, ok := strings.Cut(iface.ConnectsTo, ":"); ok {
				leafPorts[leafID] = append(leafPorts[leafID], target)
			}
			fmt.Fprintf(&b, "  \"%s@%s\" -> %q;\n", spine.ID, iface.Name, target)
		}
	}

	for _, leaf := range topology.Leafs {
		fmt.Fprintf(&b, "  subgraph \"cluster_%s\" {\n", leaf.ID)
		label := leaf.ID
		if leaf.RackID != "" {
			label = fmt.Sprintf("%s (%s)", leaf.ID, leaf.RackID)
		}
		fmt.Fprintf(&b, "    label=%q;\n", label)
		b.WriteString("    style=rounded;\n")
		b.WriteString("    color=lightgreen;\n")
		for _, port := range leafPorts[leaf.ID] {
			fmt.Fprintf(&b, "    %q [shape=box];\n", port)
		}
		b.WriteString("  }\n")
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
