// Package report drives one XNET run: parse the netlist, make pass-through
// chips transparent, extract the host chip's connectivity and write it out.
package report

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/OpenTraceLab/xnetlist/pkg/netlist"
	"github.com/OpenTraceLab/xnetlist/pkg/xnet"
)

// Stats summarizes a run.
type Stats struct {
	Nodes             int
	Nets              int
	Chips             int
	Complete          bool
	Eliminated        int
	ReductionFailures int
	Rows              int
}

// Result holds everything a run produced.
type Result struct {
	Graph *netlist.Graph
	Parse *xnet.Result

	// Nets are the nets that were reduced and, for Run, reported: the host
	// chip's nets, or every net when no host is configured.
	Nets []string

	Rows  []netlist.Row
	Stats Stats
}

// Load parses r and applies the configured reductions.
func Load(cfg *Config, r io.Reader, log logr.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	parser, err := xnet.NewParser(log.WithName("xnet"))
	if err != nil {
		return nil, err
	}

	g := netlist.NewGraph(netlist.WithLogger(log.WithName("netlist")))
	res := &Result{Graph: g, Parse: parser.Parse(r, g)}

	if cfg.HostChip != "" {
		nets, err := g.ChipNets(cfg.HostChip, cfg.netRegex)
		if err != nil {
			return nil, errors.Wrap(err, "report: host chip")
		}
		res.Nets = nets
	} else {
		for _, net := range g.Nets() {
			if net.Len() > 0 && (cfg.netRegex == nil || cfg.netRegex.MatchString(net.Name())) {
				res.Nets = append(res.Nets, net.Name())
			}
		}
	}

	stats, err := g.Reduce(res.Nets, cfg.Reducer())
	if err != nil {
		return nil, errors.Wrap(err, "report: reduce")
	}
	res.Stats = Stats{
		Nodes:             len(res.Parse.Nodes),
		Nets:              g.NetCount(),
		Chips:             g.ChipCount(),
		Complete:          res.Parse.Complete,
		Eliminated:        stats.Eliminated,
		ReductionFailures: stats.Failed,
	}
	return res, nil
}

// Run parses r, reduces the host chip's nets and extracts one row per net.
// Without a host chip no rows are produced. A host chip missing from the
// netlist, or missing from one of its nets, is an error wrapping
// netlist.ErrNotFound.
func Run(cfg *Config, r io.Reader, log logr.Logger) (*Result, error) {
	res, err := Load(cfg, r, log)
	if err != nil {
		return nil, err
	}
	if cfg.HostChip == "" {
		log.Info("no host chip given, nothing to report")
		res.Nets = nil
		return res, nil
	}

	rows, err := res.Graph.ExtractRows(res.Nets, cfg.HostChip, cfg.Policy())
	if err != nil {
		return nil, errors.Wrap(err, "report: extract")
	}
	res.Rows = rows
	res.Stats.Rows = len(rows)
	return res, nil
}

// RunFile is Run on a file path.
func RunFile(cfg *Config, filename string, log logr.Logger) (*Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "report: failed to open input")
	}
	defer file.Close()
	return Run(cfg, file, log)
}

// LoadFile is Load on a file path.
func LoadFile(cfg *Config, filename string, log logr.Logger) (*Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "report: failed to open input")
	}
	defer file.Close()
	return Load(cfg, file, log)
}
