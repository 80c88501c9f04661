package netlist

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestExtractRowsAfterReduction(t *testing.T) {
	g := seriesBoard(t)
	n2, _ := g.Net("N2")
	tchip, _ := g.Chip("T")
	if err := g.Eliminate(n2, tchip); err != nil {
		t.Fatalf("Eliminate: %v", err)
	}

	rows, err := g.ExtractRows([]string{"N1", "N2"}, "H", Strict)
	if err != nil {
		t.Fatalf("ExtractRows: %v", err)
	}

	want := []Row{
		{Net: "N1", HostDesc: "h1", ClientChip: "X", ClientDesc: "x"},
		{Net: "N2", HostDesc: "h2", ClientChip: "Y", ClientDesc: "y"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRowsKeepsInputOrder(t *testing.T) {
	g := seriesBoard(t)

	rows, err := g.ExtractRows([]string{"N2", "N1"}, "H", FirstMatch)
	if err != nil {
		t.Fatalf("ExtractRows: %v", err)
	}
	if len(rows) != 2 || rows[0].Net != "N2" || rows[1].Net != "N1" {
		t.Errorf("unexpected order: %+v", rows)
	}
	if rows[0].ClientChip != "T" {
		t.Errorf("expected unreduced N2 to report T, got %q", rows[0].ClientChip)
	}
}

func TestExtractRowsErrors(t *testing.T) {
	g := seriesBoard(t)
	mustNode(t, g, "1", "lonely", "H2", "SOLO")
	mustNode(t, g, "9", "z", "Z", "N1")

	tests := []struct {
		name   string
		nets   []string
		host   string
		policy Policy
		want   error
	}{
		{"unknown net", []string{"NOPE"}, "H", FirstMatch, ErrNotFound},
		{"host not on net", []string{"M"}, "H", FirstMatch, ErrNotFound},
		{"no client", []string{"SOLO"}, "H2", FirstMatch, ErrNotFound},
		{"ambiguous strict", []string{"N1"}, "H", Strict, ErrAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.ExtractRows(tt.nets, tt.host, tt.policy)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestExtractRowsFirstMatch(t *testing.T) {
	g := seriesBoard(t)
	mustNode(t, g, "9", "z", "Z", "N1")

	rows, err := g.ExtractRows([]string{"N1"}, "H", FirstMatch)
	if err != nil {
		t.Fatalf("ExtractRows: %v", err)
	}
	if rows[0].ClientChip != "X" {
		t.Errorf("expected first attached pin X, got %q", rows[0].ClientChip)
	}
}

func TestChipNets(t *testing.T) {
	g := seriesBoard(t)
	mustNode(t, g, "3", "", "H", "CLK")

	names, err := g.ChipNets("H", nil)
	if err != nil {
		t.Fatalf("ChipNets: %v", err)
	}
	if diff := cmp.Diff([]string{"N1", "N2", "CLK"}, names); diff != "" {
		t.Errorf("nets mismatch (-want +got):\n%s", diff)
	}

	names, err = g.ChipNets("H", regexp.MustCompile(`^(?:N)`))
	if err != nil {
		t.Fatalf("ChipNets: %v", err)
	}
	if diff := cmp.Diff([]string{"N1", "N2"}, names); diff != "" {
		t.Errorf("filtered nets mismatch (-want +got):\n%s", diff)
	}

	if _, err := g.ChipNets("NOPE", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRowRecord(t *testing.T) {
	r := Row{Net: "N1", HostDesc: "a", ClientChip: "U2", ClientDesc: "b"}
	if diff := cmp.Diff([]string{"N1", "a", "U2", "b"}, r.Record()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}
