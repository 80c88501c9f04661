package netlist

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/chewxy/sexp"
)

func TestExportJSON(t *testing.T) {
	g := seriesBoard(t)
	n2, _ := g.Net("N2")
	tchip, _ := g.Chip("T")
	if err := g.Eliminate(n2, tchip); err != nil {
		t.Fatalf("Eliminate: %v", err)
	}

	data, err := g.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var out struct {
		NetCount  int         `json:"net_count"`
		ChipCount int         `json:"chip_count"`
		Nets      []ExportNet `json:"nets"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	// M is empty after the reduction and T has no pins left.
	if out.NetCount != 2 {
		t.Errorf("expected 2 nets, got %d", out.NetCount)
	}
	if out.ChipCount != 3 {
		t.Errorf("expected 3 chips, got %d", out.ChipCount)
	}
	if len(out.Nets) != 2 || out.Nets[1].Name != "N2" || len(out.Nets[1].Pins) != 2 {
		t.Fatalf("unexpected nets: %+v", out.Nets)
	}
	if pin := out.Nets[1].Pins[1]; pin.Chip != "Y" || pin.Desc != "y" {
		t.Errorf("unexpected client pin: %+v", pin)
	}
}

func TestExportKiCad(t *testing.T) {
	g := seriesBoard(t)

	output := g.ExportKiCad("pstxnet.dat")

	for _, want := range []string{
		"(export (version D)",
		"(comp (ref H))",
		"(net (code 1) (name N1)",
		"(node (ref T) (pin 2))",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	sexps, err := sexp.Parse(strings.NewReader(output))
	if err != nil {
		t.Fatalf("export is not a valid s-expression: %v", err)
	}
	if len(sexps) != 1 || sexps[0].IsLeaf() {
		t.Errorf("expected a single top-level list, got %d expressions", len(sexps))
	}
}

func TestKicadAtom(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"U1", "U1"},
		{"/CPU/CLK", "/CPU/CLK"},
		{"A B", `"A B"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := kicadAtom(tt.in); got != tt.want {
			t.Errorf("kicadAtom(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
