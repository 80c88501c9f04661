package netlist

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ExportPin is a pin in a JSON export.
type ExportPin struct {
	Chip string `json:"chip"`
	Pin  string `json:"pin"`
	Desc string `json:"desc"`
}

// ExportNet is a net in a JSON export.
type ExportNet struct {
	Name string      `json:"name"`
	Pins []ExportPin `json:"pins"`
}

// exportNets lists the nets that still have pins, in registration order.
func (g *Graph) exportNets() []ExportNet {
	var nets []ExportNet
	for _, net := range g.nets.values() {
		if net.Len() == 0 {
			continue
		}
		out := ExportNet{Name: net.name}
		for _, n := range net.nodes.list() {
			out.Pins = append(out.Pins, ExportPin{Chip: n.chip.name, Pin: n.name, Desc: n.desc})
		}
		nets = append(nets, out)
	}
	return nets
}

// ExportJSON exports the connected part of the graph to JSON.
func (g *Graph) ExportJSON() ([]byte, error) {
	nets := g.exportNets()
	output := struct {
		Version     string      `json:"version"`
		NetCount    int         `json:"net_count"`
		ChipCount   int         `json:"chip_count"`
		Nets        []ExportNet `json:"nets"`
		GeneratedBy string      `json:"generated_by"`
	}{
		Version:     "1.0",
		NetCount:    len(nets),
		ChipCount:   len(g.connectedChips()),
		Nets:        nets,
		GeneratedBy: "xnet",
	}
	return json.MarshalIndent(output, "", "  ")
}

func (g *Graph) connectedChips() []*Chip {
	var chips []*Chip
	for _, chip := range g.chips.values() {
		if chip.Len() > 0 {
			chips = append(chips, chip)
		}
	}
	return chips
}

var kicadSymbol = regexp.MustCompile(`^[A-Za-z0-9_./+#-]+$`)

// kicadAtom quotes s unless it is a plain symbol.
func kicadAtom(s string) string {
	if kicadSymbol.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}

// ExportKiCad exports the connected part of the graph as a KiCad netlist.
// Only components and nets are written.
func (g *Graph) ExportKiCad(source string) string {
	var b strings.Builder
	b.WriteString("(export (version D)\n")
	b.WriteString("  (design\n")
	fmt.Fprintf(&b, "    (source %s)\n", kicadAtom(source))
	b.WriteString("    (tool xnet)\n")
	b.WriteString("  )\n")

	b.WriteString("  (components\n")
	for _, chip := range g.connectedChips() {
		fmt.Fprintf(&b, "    (comp (ref %s))\n", kicadAtom(chip.name))
	}
	b.WriteString("  )\n")

	b.WriteString("  (nets\n")
	for i, net := range g.exportNets() {
		fmt.Fprintf(&b, "    (net (code %d) (name %s)\n", i+1, kicadAtom(net.Name))
		for _, pin := range net.Pins {
			fmt.Fprintf(&b, "      (node (ref %s) (pin %s))\n", kicadAtom(pin.Chip), kicadAtom(pin.Pin))
		}
		b.WriteString("    )\n")
	}
	b.WriteString("  )\n")
	b.WriteString(")\n")
	return b.String()
}
