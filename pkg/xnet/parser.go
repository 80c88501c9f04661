package xnet

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/OpenTraceLab/xnetlist/pkg/netlist"
)

var (
	// ErrTruncated means the input ended, or hit a blank line, before the
	// END. terminator.
	ErrTruncated = errors.New("xnet: input truncated")

	// ErrMalformedRecord means a record did not have the expected shape.
	ErrMalformedRecord = errors.New("xnet: malformed record")
)

// Result describes one parse run.
type Result struct {
	// Nodes holds the pins created, in input order.
	Nodes []*netlist.Node

	// Complete is set when the END. terminator was reached.
	Complete bool

	// Cause explains why parsing stopped early. It wraps ErrTruncated or
	// ErrMalformedRecord and is nil when Complete is set.
	Cause error

	// Lines is the number of lines read.
	Lines int
}

// Parser reads XNET netlist exports (pstxnet.dat).
type Parser struct {
	header *participle.Parser[NodeHeader]
	log    logr.Logger
}

// NewParser creates a new XNET parser instance.
func NewParser(log logr.Logger) (*Parser, error) {
	header, err := participle.Build[NodeHeader](
		participle.Lexer(RecordLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "xnet: failed to build parser")
	}
	return &Parser{header: header, log: log}, nil
}

// ParseHeader parses a NODE_NAME line.
func (p *Parser) ParseHeader(line string) (*NodeHeader, error) {
	hdr, err := p.header.ParseString("", line)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "%q: %v", line, err)
	}
	return hdr, nil
}

// Parse reads records from r into g. Parsing never fails: a missing
// terminator, a blank line, a read error or a malformed record all end the
// run, and whatever was parsed up to that point is kept.
func (p *Parser) Parse(r io.Reader, g *netlist.Graph) *Result {
	lr := &lineReader{r: bufio.NewReader(r)}
	res := &Result{}
	net := UnknownNet

loop:
	for {
		line, ok := lr.next()
		if !ok {
			res.Cause = lr.truncated("end of input")
			break
		}
		if line == "" {
			res.Cause = lr.truncated("blank line")
			break
		}

		switch {
		case line == keywordNet:
			name, ok := lr.next()
			if !ok {
				res.Cause = errors.Wrapf(ErrMalformedRecord, "line %d: %s without a name", lr.line, keywordNet)
				break loop
			}
			net = netName(name)

		case strings.HasPrefix(line, keywordNode):
			node, err := p.parseNode(lr, line, net, g)
			if err != nil {
				res.Cause = err
				break loop
			}
			res.Nodes = append(res.Nodes, node)

		case line == keywordEnd:
			res.Complete = true
			break loop
		}
	}

	res.Lines = lr.line
	if res.Complete {
		p.log.V(1).Info("parsed netlist", "nodes", len(res.Nodes), "lines", res.Lines)
	} else {
		p.log.Info("netlist ended early", "nodes", len(res.Nodes), "lines", res.Lines,
			"reason", res.Cause.Error())
	}
	return res
}

func (p *Parser) parseNode(lr *lineReader, line, net string, g *netlist.Graph) (*netlist.Node, error) {
	start := lr.line
	hdr, err := p.ParseHeader(line)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", start)
	}
	if _, ok := lr.next(); !ok {
		return nil, errors.Wrapf(ErrMalformedRecord, "line %d: node record cut short", start)
	}
	desc, ok := lr.next()
	if !ok {
		return nil, errors.Wrapf(ErrMalformedRecord, "line %d: node record cut short", start)
	}

	node, err := g.CreateNode(hdr.Pin, description(desc),
		netlist.ChipByName(hdr.Chip), netlist.NetByName(net))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "line %d: %v", start, err)
	}
	p.log.V(2).Info("node", "net", net, "chip", hdr.Chip, "pin", hdr.Pin)
	return node, nil
}

// ParseString parses an XNET netlist held in a string.
func (p *Parser) ParseString(input string, g *netlist.Graph) *Result {
	return p.Parse(strings.NewReader(input), g)
}

// ParseFile parses an XNET netlist from a file path. Only failing to open
// the file is an error.
func (p *Parser) ParseFile(filename string, g *netlist.Graph) (*Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "xnet: failed to open file")
	}
	defer file.Close()

	return p.Parse(file, g), nil
}

// lineReader yields trimmed lines and remembers the first read error.
type lineReader struct {
	r    *bufio.Reader
	line int
	err  error
}

func (lr *lineReader) next() (string, bool) {
	if lr.err != nil {
		return "", false
	}
	s, err := lr.r.ReadString('\n')
	if err != nil {
		lr.err = err
		if s == "" {
			return "", false
		}
	}
	lr.line++
	return strings.TrimSpace(s), true
}

func (lr *lineReader) truncated(what string) error {
	if lr.err != nil && lr.err != io.EOF {
		return errors.Wrapf(ErrTruncated, "after line %d: %v", lr.line, lr.err)
	}
	return errors.Wrapf(ErrTruncated, "%s at line %d", what, lr.line)
}
