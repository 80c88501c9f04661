package report

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/go-logr/logr"

	"github.com/OpenTraceLab/xnetlist/pkg/natsort"
	"github.com/OpenTraceLab/xnetlist/pkg/netlist"
)

// SortRows orders rows naturally by net name, then by the remaining
// columns. Rows that compare equal keep their order.
func SortRows(rows []netlist.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return natsort.CompareSlices(rows[i].Record(), rows[j].Record()) < 0
	})
}

// WriteCSV writes rows, sorted with SortRows, as CSV without a header.
// Records end in CRLF. rows itself is not reordered.
func WriteCSV(w io.Writer, rows []netlist.Row, log logr.Logger) error {
	sorted := append([]netlist.Row(nil), rows...)
	SortRows(sorted)

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	for _, row := range sorted {
		log.V(1).Info("csv row", "row", row.Record())
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
