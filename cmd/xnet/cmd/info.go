package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xnetlist/pkg/natsort"
	"github.com/OpenTraceLab/xnetlist/pkg/netlist"
	"github.com/OpenTraceLab/xnetlist/pkg/report"
)

var infoSel selection

var infoCmd = &cobra.Command{
	Use:   "info [net]",
	Short: "Show netlist statistics or the pins of one net",
	Long: `Without arguments, list every connected net with its pin count.
With a net name, list the pins on that net.

Examples:
  xnet info
  xnet info GND
  xnet info -X 'R\d+' SDA`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoSel.addFlags(infoCmd, "chip never made transparent")
}

func runInfo(cmd *cobra.Command, args []string) error {
	start := time.Now()

	res, err := report.LoadFile(infoSel.config(), inputFile, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		net, err := res.Graph.Net(args[0])
		if err != nil {
			return err
		}
		showNetDetails(out, net)
	} else {
		listAllNets(out, res)
	}
	return writeMetrics(res.Stats, time.Since(start))
}

func listAllNets(out io.Writer, res *report.Result) {
	g := res.Graph
	fmt.Fprintf(out, "Netlist: %d nets, %d chips, %d pins", g.NetCount(), g.ChipCount(), g.NodeCount())
	if res.Stats.Eliminated > 0 {
		fmt.Fprintf(out, ", %d chips made transparent", res.Stats.Eliminated)
	}
	fmt.Fprintln(out)
	if !res.Parse.Complete {
		fmt.Fprintf(out, "Incomplete: %v\n", res.Parse.Cause)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%-30s %6s\n", "Net Name", "Pins")
	fmt.Fprintln(out, "─────────────────────────────────────")

	byName := make(map[string]*netlist.Net)
	var names []string
	for _, net := range g.Nets() {
		if net.Len() == 0 {
			continue
		}
		byName[net.Name()] = net
		names = append(names, net.Name())
	}
	natsort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, "%-30s %6d\n", name, byName[name].Len())
	}
}

func showNetDetails(out io.Writer, net *netlist.Net) {
	nodes := net.Nodes()
	fmt.Fprintf(out, "Net: %s\n\n", net.Name())
	fmt.Fprintf(out, "Pins (%d):\n", len(nodes))

	keys := make([]string, len(nodes))
	byKey := make(map[string]*netlist.Node, len(nodes))
	for i, n := range nodes {
		keys[i] = n.Chip().Name()
		byKey[keys[i]] = n
	}
	natsort.Strings(keys)

	for _, key := range keys {
		n := byKey[key]
		fmt.Fprintf(out, "  %-16s %-8s %s\n", n.Chip().Name(), n.Name(), n.Desc())
	}
}
