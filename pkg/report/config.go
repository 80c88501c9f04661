package report

import (
	"regexp"

	"github.com/pkg/errors"

	"github.com/OpenTraceLab/xnetlist/pkg/netlist"
)

// DefaultInputFile is the conventional name of an XNET export.
const DefaultInputFile = "pstxnet.dat"

// Config controls which nets are reported and which chips are treated as
// pass-through parts.
type Config struct {
	HostChip            string   // Chip whose nets are reported; empty reports nothing
	NetPattern          string   // If set, only nets whose name starts with a match are reported
	TransparentPatterns []string // Chips whose name starts with a match are eliminated, in order
	Strict              bool     // Fail instead of picking the first pin on ambiguous nets

	// Internal compiled regexes
	netRegex    *regexp.Regexp
	transparent []*regexp.Regexp
}

// DefaultConfig returns a Config that reports nothing until a host chip is
// set.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate compiles the configured patterns. A pattern only matches at the
// start of a name.
func (c *Config) Validate() error {
	c.netRegex = nil
	if c.NetPattern != "" {
		re, err := anchored(c.NetPattern)
		if err != nil {
			return errors.Wrap(err, "report: net pattern")
		}
		c.netRegex = re
	}

	c.transparent = c.transparent[:0]
	for _, p := range c.TransparentPatterns {
		re, err := anchored(p)
		if err != nil {
			return errors.Wrapf(err, "report: transparent chip pattern %q", p)
		}
		c.transparent = append(c.transparent, re)
	}
	return nil
}

func anchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)`)
}

// Reducer returns the reduction settings. The host chip is never made
// transparent.
func (c *Config) Reducer() netlist.Reducer {
	r := netlist.Reducer{Patterns: c.transparent}
	if c.HostChip != "" {
		r.Skip = []string{c.HostChip}
	}
	return r
}

// Policy returns the extraction policy.
func (c *Config) Policy() netlist.Policy {
	if c.Strict {
		return netlist.Strict
	}
	return netlist.FirstMatch
}
