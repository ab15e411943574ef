// Package dsl turns the filter's configuration text into a typed
// model.Program: a hand-written lexer/line-dispatcher plus per-concern
// parse functions (values.go, setbool.go, condition.go, rule.go) that
// convert text into model types, and a two-pass builder (builder.go) that
// resolves declarations before references.
package dsl

import "strings"

// Line is one non-empty, trimmed configuration line together with its
// 1-indexed position in the original text, tokenized by splitting on
// single spaces (token-preserving, no multi-space collapsing).
type Line struct {
	Number int
	Tokens []string
}

// Lex splits config into lines on '\n', trims each line, skips empty
// lines, and splits what remains on single-space characters.
func Lex(config string) []Line {
	var lines []Line
	for i, raw := range strings.Split(config, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, Line{
			Number: i + 1,
			Tokens: strings.Split(trimmed, " "),
		})
	}
	return lines
}
