package netlist

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// adjacency maps a name on the other side of an edge to the pin forming it.
type adjacency struct {
	m *orderedmap.OrderedMap[string, *Node]
}

func newAdjacency() adjacency {
	return adjacency{m: orderedmap.New[string, *Node]()}
}

func (a adjacency) get(key string) (*Node, bool) { return a.m.Get(key) }
func (a adjacency) set(key string, n *Node)      { a.m.Set(key, n) }
func (a adjacency) del(key string)               { a.m.Delete(key) }
func (a adjacency) len() int                     { return a.m.Len() }

func (a adjacency) list() []*Node {
	out := make([]*Node, 0, a.m.Len())
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Net is a named electrical signal. It holds one pin per chip connected to
// it, keyed by chip name.
type Net struct {
	name  string
	nodes adjacency
}

// Name returns the net name.
func (n *Net) Name() string { return n.name }

// Len returns the number of pins attached to the net.
func (n *Net) Len() int { return n.nodes.len() }

// Node returns the pin of the named chip on this net.
func (n *Net) Node(chipName string) (*Node, bool) { return n.nodes.get(chipName) }

// Nodes returns the attached pins in attachment order.
func (n *Net) Nodes() []*Node { return n.nodes.list() }

func (n *Net) String() string { return fmt.Sprintf("Net(%q)", n.name) }

// Chip is a named component. It holds one pin per net it touches, keyed by
// net name.
type Chip struct {
	name  string
	nodes adjacency
}

// Name returns the chip name.
func (c *Chip) Name() string { return c.name }

// Len returns the number of attached pins of the chip.
func (c *Chip) Len() int { return c.nodes.len() }

// Node returns the pin of this chip on the named net.
func (c *Chip) Node(netName string) (*Node, bool) { return c.nodes.get(netName) }

// Nodes returns the attached pins in attachment order.
func (c *Chip) Nodes() []*Node { return c.nodes.list() }

func (c *Chip) String() string { return fmt.Sprintf("Chip(%q)", c.name) }

// Node is one pin: the edge joining a Chip to a Net. Pin names are local to
// their chip. The owning chip never changes; the net changes only through
// Graph.Attach.
type Node struct {
	name string
	desc string
	chip *Chip
	net  *Net
}

// Name returns the pin name.
func (n *Node) Name() string { return n.name }

// Desc returns the pin description.
func (n *Node) Desc() string { return n.desc }

// Chip returns the owning chip.
func (n *Node) Chip() *Chip { return n.chip }

// Net returns the attached net, or nil for a detached pin.
func (n *Node) Net() *Net { return n.net }

func (n *Node) String() string {
	netName := ""
	if n.net != nil {
		netName = n.net.name
	}
	return fmt.Sprintf("Node(%q,%q,%q,%q)", n.name, n.desc, n.chip.name, netName)
}

// Graph owns every Net and Chip of one netlist. A Graph is not safe for
// concurrent use; independent runs should use independent graphs.
type Graph struct {
	nets  *registry[Net]
	chips *registry[Chip]
	pins  int
	log   logr.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for graph edits.
func WithLogger(log logr.Logger) Option {
	return func(g *Graph) { g.log = log }
}

// NewGraph creates an empty graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		nets: newRegistry(func(name string) *Net {
			return &Net{name: name, nodes: newAdjacency()}
		}),
		chips: newRegistry(func(name string) *Chip {
			return &Chip{name: name, nodes: newAdjacency()}
		}),
		log: logr.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Logger returns the logger the graph was configured with.
func (g *Graph) Logger() logr.Logger { return g.log }

// GetOrCreateNet returns the net registered under name, creating it if
// needed.
func (g *Graph) GetOrCreateNet(name string) *Net { return g.nets.getOrCreate(name) }

// GetOrCreateChip returns the chip registered under name, creating it if
// needed.
func (g *Graph) GetOrCreateChip(name string) *Chip { return g.chips.getOrCreate(name) }

// Net looks up an existing net.
func (g *Graph) Net(name string) (*Net, error) {
	net, ok := g.nets.get(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "net %q", name)
	}
	return net, nil
}

// Chip looks up an existing chip.
func (g *Graph) Chip(name string) (*Chip, error) {
	chip, ok := g.chips.get(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "chip %q", name)
	}
	return chip, nil
}

// Nets returns every registered net in registration order, including nets
// that no longer have pins.
func (g *Graph) Nets() []*Net { return g.nets.values() }

// Chips returns every registered chip in registration order.
func (g *Graph) Chips() []*Chip { return g.chips.values() }

// NetCount returns the number of registered nets.
func (g *Graph) NetCount() int { return g.nets.len() }

// ChipCount returns the number of registered chips.
func (g *Graph) ChipCount() int { return g.chips.len() }

// NodeCount returns the number of pins created in this graph.
func (g *Graph) NodeCount() int { return g.pins }

// CreateNode creates a pin of chip and attaches it to net. Both references
// are resolved by name (registering the entity on first use) or taken as
// handles. A zero net reference leaves the pin detached.
func (g *Graph) CreateNode(name, desc string, chip Ref[Chip], net Ref[Net]) (*Node, error) {
	c := resolveOrCreate(g.chips, chip)
	if c == nil {
		return nil, errors.Errorf("netlist: pin %q has no chip", name)
	}
	n := &Node{name: name, desc: desc, chip: c}
	g.pins++
	g.Attach(n, resolveOrCreate(g.nets, net))
	return n, nil
}

// Attach moves n onto net, or detaches it when net is nil. Both mirror
// entries are updated together. If another pin of the same chip is already
// on net it is detached first, since a chip has at most one pin per net.
func (g *Graph) Attach(n *Node, net *Net) {
	if net != nil && n.net == net && !g.IsOrphan(n) {
		return
	}
	g.detach(n)
	if net == nil {
		return
	}
	if prev, ok := net.nodes.get(n.chip.name); ok && prev != n {
		g.log.V(1).Info("displacing pin", "net", net.name, "chip", n.chip.name,
			"pin", prev.name, "by", n.name)
		g.detach(prev)
	}
	n.net = net
	net.nodes.set(n.chip.name, n)
	n.chip.nodes.set(net.name, n)
}

// detach removes the mirror entries of n, leaving entries that belong to
// other pins alone.
func (g *Graph) detach(n *Node) {
	if n.net == nil {
		return
	}
	if cur, ok := n.net.nodes.get(n.chip.name); ok && cur == n {
		n.net.nodes.del(n.chip.name)
	}
	if cur, ok := n.chip.nodes.get(n.net.name); ok && cur == n {
		n.chip.nodes.del(n.net.name)
	}
	n.net = nil
}

// DetachFromAll drops the pin of chipName from netName. Both sides of the
// edge are removed; the pin itself survives, detached.
func (g *Graph) DetachFromAll(chipName, netName string) error {
	net, err := g.Net(netName)
	if err != nil {
		return err
	}
	chip, err := g.Chip(chipName)
	if err != nil {
		return err
	}
	if n, ok := net.nodes.get(chipName); ok && n.net == net {
		g.Attach(n, nil)
	}
	if n, ok := chip.nodes.get(netName); ok && n.net == net {
		g.Attach(n, nil)
	}
	// Whatever is left points at pins attached elsewhere.
	net.nodes.del(chipName)
	chip.nodes.del(netName)
	return nil
}

// IsOrphan reports whether the mirror entries of n are inconsistent. An
// attached pin is an orphan unless both its net and its chip point back at
// it; a detached pin is an orphan if its chip still lists it.
func (g *Graph) IsOrphan(n *Node) bool {
	if n.net == nil {
		for _, other := range n.chip.nodes.list() {
			if other == n {
				return true
			}
		}
		return false
	}
	if cur, ok := n.chip.nodes.get(n.net.name); !ok || cur != n {
		return true
	}
	if cur, ok := n.net.nodes.get(n.chip.name); !ok || cur != n {
		return true
	}
	return false
}
