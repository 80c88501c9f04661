package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xnetlist/pkg/report"
)

var (
	exportSel    selection
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the netlist as JSON or a KiCad netlist",
	Long: `Export every connected net after making --exclude-chip parts
transparent.

Formats:
  json   nets with their chip, pin and description
  kicad  KiCad netlist s-expression (components and nets)

Examples:
  xnet export --format json
  xnet export --format kicad -X 'R\d+' -o board.net`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportSel.addFlags(exportCmd, "chip never made transparent")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or kicad")
	exportCmd.Flags().StringVarP(&exportOutput, "output-file", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	start := time.Now()

	var render func(*report.Result) ([]byte, error)
	switch exportFormat {
	case "json":
		render = func(res *report.Result) ([]byte, error) {
			data, err := res.Graph.ExportJSON()
			if err != nil {
				return nil, fmt.Errorf("failed to export JSON: %w", err)
			}
			return append(data, '\n'), nil
		}
	case "kicad":
		render = func(res *report.Result) ([]byte, error) {
			return []byte(res.Graph.ExportKiCad(inputFile)), nil
		}
	default:
		return fmt.Errorf("unknown format %q (use json or kicad)", exportFormat)
	}

	res, err := report.LoadFile(exportSel.config(), inputFile, logger)
	if err != nil {
		return err
	}
	data, err := render(res)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, exportOutput)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		closeOut()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := closeOut(); err != nil {
		return err
	}
	return writeMetrics(res.Stats, time.Since(start))
}
