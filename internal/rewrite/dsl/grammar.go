package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// conditionLexer tokenizes the text following "if" on a rule line. It is
// only asked to recognize "and"/"or"/"not" as keywords and everything else
// as a bare identifier.
var conditionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(and|or|not)\b`},
	{Name: "Ident", Pattern: `[^\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// condTermAST is a single, possibly-negated operand: ["not"] name.
type condTermAST struct {
	Not  bool   `parser:"@\"not\"?"`
	Name string `parser:"@Ident"`
}

// condContinuationAST is one ("and"|"or") followed by another term.
type condContinuationAST struct {
	Op   string       `parser:"@(\"and\"|\"or\")"`
	Term *condTermAST `parser:"@@"`
}

// conditionGrammar is the top-level AST for "if <condition>": a term
// followed by zero or more (operator, term) continuations — structurally
// forbids leading/trailing/adjacent operators by construction. The
// explicit per-Kind fatal checks in validateConditionTokens still run
// first so a malformed condition gets a named ConfigError kind rather
// than a raw participle syntax error.
type conditionGrammar struct {
	First *condTermAST           `parser:"@@"`
	Rest  []*condContinuationAST `parser:"@@*"`
}

var conditionParser = participle.MustBuild[conditionGrammar](
	participle.Lexer(conditionLexer),
	participle.Elide("Whitespace"),
)
