package xnet

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// RecordLexer splits a single XNET record line into whitespace-separated
// words. XNET chip and pin names are free-form, so any run of non-space
// characters is a word.
var RecordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Word", Pattern: `\S+`},
})
