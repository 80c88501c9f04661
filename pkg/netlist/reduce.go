package netlist

import (
	"regexp"

	"github.com/pkg/errors"
)

// Eliminate makes a two-pin chip transparent on net:
//
//	net - pin - chip - bridge - clientNet - client - ...
//
// becomes
//
//	net - client - ...
//
// Every pin of clientNet not owned by chip is moved onto net, and both pins
// of chip are detached, leaving clientNet and chip without pins. All
// preconditions are checked before the first edit, so an ErrReduction
// leaves the graph untouched.
func (g *Graph) Eliminate(net *Net, chip *Chip) error {
	if chip.Len() != 2 {
		return errors.Wrapf(ErrReduction, "chip %q has %d pins", chip.name, chip.Len())
	}
	pin, ok := chip.nodes.get(net.name)
	if !ok {
		return errors.Wrapf(ErrReduction, "chip %q is not on net %q", chip.name, net.name)
	}

	var bridge *Node
	for _, n := range chip.nodes.list() {
		if n != pin {
			bridge = n
		}
	}
	clientNet := bridge.net
	if clientNet == nil || clientNet == net {
		return errors.Wrapf(ErrReduction, "chip %q pin %q does not lead to another net",
			chip.name, bridge.name)
	}

	var clients []*Node
	for _, n := range clientNet.nodes.list() {
		if n.chip == chip {
			continue
		}
		if _, ok := net.nodes.get(n.chip.name); ok {
			return errors.Wrapf(ErrReduction, "chip %q is on both %q and %q",
				n.chip.name, net.name, clientNet.name)
		}
		clients = append(clients, n)
	}
	if len(clients) == 0 {
		return errors.Wrapf(ErrReduction, "net %q has nothing behind chip %q",
			clientNet.name, chip.name)
	}

	for _, n := range clients {
		g.Attach(n, net)
	}
	if err := g.DetachFromAll(chip.name, net.name); err != nil {
		return err
	}
	if err := g.DetachFromAll(chip.name, clientNet.name); err != nil {
		return err
	}

	g.log.V(1).Info("chip made transparent", "net", net.name, "chip", chip.name,
		"clientNet", clientNet.name, "moved", len(clients))
	return nil
}

// ReduceStats counts the outcome of Reduce.
type ReduceStats struct {
	Eliminated int
	Failed     int
}

// Reducer selects which chips Reduce makes transparent.
type Reducer struct {
	// Patterns are tried in order against chip names.
	Patterns []*regexp.Regexp

	// Skip lists chips that are never eliminated, such as the host.
	Skip []string
}

func (r Reducer) matches(chip *Chip) bool {
	for _, name := range r.Skip {
		if chip.name == name {
			return false
		}
	}
	for _, pat := range r.Patterns {
		if pat.MatchString(chip.name) {
			return true
		}
	}
	return false
}

type attempt struct {
	net, chip string
}

// Reduce eliminates every matching chip from each named net. A net is
// rescanned after each elimination so chains of pass-through parts collapse
// completely. Chips that cannot be eliminated are logged and left in place.
func (g *Graph) Reduce(netNames []string, r Reducer) (ReduceStats, error) {
	var stats ReduceStats
	if len(r.Patterns) == 0 {
		return stats, nil
	}

	failed := make(map[attempt]bool)
	for _, name := range netNames {
		net, err := g.Net(name)
		if err != nil {
			return stats, err
		}
		for {
			chip := g.nextTransparent(net, r, failed)
			if chip == nil {
				break
			}
			if err := g.Eliminate(net, chip); err != nil {
				g.log.Error(err, "leaving chip in place", "net", net.name, "chip", chip.name)
				failed[attempt{net: net.name, chip: chip.name}] = true
				stats.Failed++
				continue
			}
			stats.Eliminated++
		}
	}
	return stats, nil
}

func (g *Graph) nextTransparent(net *Net, r Reducer, failed map[attempt]bool) *Chip {
	for _, n := range net.nodes.list() {
		if failed[attempt{net: net.name, chip: n.chip.name}] {
			continue
		}
		if r.matches(n.chip) {
			return n.chip
		}
	}
	return nil
}
