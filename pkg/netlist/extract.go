package netlist

import (
	"regexp"

	"github.com/pkg/errors"
)

// Row is one line of the connectivity report: a net, the host pin on it and
// the pin at the other end.
type Row struct {
	Net        string
	HostDesc   string
	ClientChip string
	ClientDesc string
}

// Record returns the row as CSV fields.
func (r Row) Record() []string {
	return []string{r.Net, r.HostDesc, r.ClientChip, r.ClientDesc}
}

// Policy decides what extraction does when a net still has more than one
// pin besides the host's.
type Policy int

const (
	// FirstMatch reports the earliest attached remaining pin and logs the
	// ambiguity.
	FirstMatch Policy = iota
	// Strict fails with ErrAmbiguous.
	Strict
)

// ChipNets returns the names of the nets the chip is attached to, in
// attachment order. When match is not nil only names it matches are kept.
func (g *Graph) ChipNets(chipName string, match *regexp.Regexp) ([]string, error) {
	chip, err := g.Chip(chipName)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, n := range chip.nodes.list() {
		if match != nil && !match.MatchString(n.net.name) {
			continue
		}
		names = append(names, n.net.name)
	}
	return names, nil
}

// ExtractRows builds one row per named net, as seen from the host chip.
// Rows follow the order of netNames.
func (g *Graph) ExtractRows(netNames []string, host string, policy Policy) ([]Row, error) {
	rows := make([]Row, 0, len(netNames))
	for _, name := range netNames {
		net, err := g.Net(name)
		if err != nil {
			return nil, err
		}
		hostNode, ok := net.nodes.get(host)
		if !ok {
			return nil, errors.Wrapf(ErrNotFound, "chip %q on net %q", host, name)
		}

		var clients []*Node
		for _, n := range net.nodes.list() {
			if n != hostNode {
				clients = append(clients, n)
			}
		}
		switch {
		case len(clients) == 0:
			return nil, errors.Wrapf(ErrNotFound, "pin besides %q on net %q", host, name)
		case len(clients) > 1 && policy == Strict:
			return nil, errors.Wrapf(ErrAmbiguous, "net %q has %d pins besides %q",
				name, len(clients), host)
		case len(clients) > 1:
			g.log.Info("ambiguous net, using first remaining pin", "net", name,
				"pins", len(clients), "chip", clients[0].chip.name)
		}

		client := clients[0]
		rows = append(rows, Row{
			Net:        net.name,
			HostDesc:   hostNode.desc,
			ClientChip: client.chip.name,
			ClientDesc: client.desc,
		})
	}
	return rows, nil
}
