package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xnetlist/internal/config"
	"github.com/OpenTraceLab/xnetlist/internal/logging"
	"github.com/OpenTraceLab/xnetlist/internal/metrics"
	"github.com/OpenTraceLab/xnetlist/pkg/report"
)

var (
	// Global flags
	verbosity   int
	logFormat   string
	inputFile   string
	metricsPath string
	envFile     string

	logger  = logr.Discard()
	syncLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "xnet",
	Short: "XNET netlist connectivity reports",
	Long: `Read an XNET netlist export, make pass-through parts transparent and
report what each net of a chip connects to.

Examples:
  xnet report -C U1                         # CSV of U1's nets from pstxnet.dat
  xnet report -C U1 -X 'R\d+' -X 'FB\d+'    # see through resistors and ferrites
  xnet info -f board.dat VCC_3V3            # pins on one net
  xnet export --format kicad -o board.net   # KiCad netlist`,
	Version:       "0.9.0",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		if err := config.ApplyEnv(cmd.Flags(), config.Bindings); err != nil {
			return err
		}
		log, sync, err := logging.NewLogger(verbosity, logFormat)
		if err != nil {
			return err
		}
		logger, syncLog = log, sync
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		syncLog()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "more output, repeat for debug (-vv)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input-file", "f", report.DefaultInputFile, "XNET netlist to read")
	rootCmd.PersistentFlags().StringVar(&metricsPath, "metrics-path", "", "write Prometheus metrics to this file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "load XNET_* settings from this file if it exists")
}

// selection holds the flags choosing the host chip, reported nets and
// transparent chips.
type selection struct {
	chip         string
	matchNet     string
	excludeChips []string
}

func (s *selection) addFlags(cmd *cobra.Command, chipUsage string) {
	cmd.Flags().StringVarP(&s.chip, "chip", "C", "", chipUsage)
	cmd.Flags().StringVarP(&s.matchNet, "match-net", "N", "",
		"only nets whose name starts with a match of this regex")
	cmd.Flags().StringArrayVarP(&s.excludeChips, "exclude-chip", "X", nil,
		"make two-pin chips matching this regex transparent (repeatable, applied in order)")
}

func (s *selection) config() *report.Config {
	cfg := report.DefaultConfig()
	cfg.HostChip = s.chip
	cfg.NetPattern = s.matchNet
	cfg.TransparentPatterns = s.excludeChips
	return cfg
}

// openOutput returns the command's stdout for "" or "-", or creates path.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return file, file.Close, nil
}

func writeMetrics(stats report.Stats, elapsed time.Duration) error {
	if metricsPath == "" {
		return nil
	}
	c := metrics.NewCollector()
	c.Observe(stats, elapsed)
	if err := c.Write(metricsPath); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	logger.V(1).Info("wrote metrics", "path", metricsPath)
	return nil
}
