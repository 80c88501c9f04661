package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xnetlist/pkg/report"
)

var (
	reportSel    selection
	reportOutput string
	reportStrict bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a CSV of what each net of a chip connects to",
	Long: `Write one CSV row per net of the host chip:

  net, host pin description, far-end chip, far-end pin description

Chips matching --exclude-chip are removed first, joining the nets on their
two pins. Rows are in natural order.

Examples:
  xnet report -C U1
  xnet report -C U1 -N 'DDR_' -X 'R\d+' -o u1.csv
  xnet report -f pstxnet.dat -C J3 --strict`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportSel.addFlags(reportCmd, "host chip whose nets are reported")
	reportCmd.Flags().StringVarP(&reportOutput, "output-file", "o", "",
		"CSV output file (default stdout)")
	reportCmd.Flags().BoolVar(&reportStrict, "strict", false,
		"fail when a net has more than one far-end pin")
}

func runReport(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg := reportSel.config()
	cfg.Strict = reportStrict
	res, err := report.RunFile(cfg, inputFile, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, reportOutput)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(out, res.Rows, logger.WithName("csv")); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	logger.Info("report written",
		"rows", res.Stats.Rows,
		"eliminated", res.Stats.Eliminated,
		"complete", res.Stats.Complete)
	return writeMetrics(res.Stats, time.Since(start))
}
