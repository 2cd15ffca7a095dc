// Package textutil provides the token grammar of training files.
package textutil

import (
	"regexp"
	"strings"
)

// tokenPattern matches a grammar token: a run of non-space characters in
// which parenthesized groups may contain spaces, so "(D the)" is one token.
const tokenPattern = `(?:\([^()]*\)|\S)+`

var (
	tokenRe      = regexp.MustCompile(tokenPattern)
	wholeTokenRe = regexp.MustCompile(`^` + tokenPattern + `$`)
	fieldSepRe   = regexp.MustCompile(`\s*\|\s*`)
)

// Tokenize splits text into grammar tokens.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(text, -1)
}

// IsToken reports whether s is exactly one grammar token.
func IsToken(s string) bool {
	return wholeTokenRe.MatchString(s)
}

// SplitFields splits a record line on '|' separators, absorbing the
// whitespace around each separator.
func SplitFields(line string) []string {
	return fieldSepRe.Split(line, -1)
}

// IsSkippable reports whether a trimmed line carries no record: it is blank
// or a '#' comment.
func IsSkippable(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}
