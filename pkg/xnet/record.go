package xnet

import "strings"

// NodeHeader is the first line of a node record:
//
//	NODE_NAME <chip> <pin>
//
// Words after the pin are kept but carry no meaning.
type NodeHeader struct {
	Keyword string   `parser:"@Word"`
	Chip    string   `parser:"@Word"`
	Pin     string   `parser:"@Word"`
	Extra   []string `parser:"@Word*"`
}

const (
	keywordNet  = "NET_NAME"
	keywordNode = "NODE_NAME"
	keywordEnd  = "END."

	// UnknownNet is the net assigned to nodes that precede any NET_NAME
	// record.
	UnknownNet = "UNKNOWN"
)

// netName strips one leading and one trailing quote from a NET_NAME value.
func netName(line string) string {
	line = strings.TrimPrefix(line, "'")
	return strings.TrimSuffix(line, "'")
}

// description returns the text between the opening quote of a node
// description line and the next quote. Anything after it, such as the
// trailing ":;" of a typical export, is dropped.
func description(line string) string {
	line = strings.TrimPrefix(line, "'")
	if i := strings.IndexByte(line, '\''); i >= 0 {
		line = line[:i]
	}
	return line
}
