// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lex

type class uint8

const (
	classEnd class = iota
	classNumber
	classIdentifier
	classWhitespace
	classString
	classCharacter
	classDirective
	classPunctuation
	classUndefined
)

// classify maps a single byte to its lexical class using static ASCII
// range membership. No lookahead, no side effects, total over all 256
// byte values. The punctuation alphabet here must stay in exact sync
// with the cases handled by matchPunctuation.
func classify(b byte) class {
	switch {
	case b == 0:
		return classEnd
	case b >= '0' && b <= '9':
		return classNumber
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b == '_':
		return classIdentifier
	case b == ' ', b == '\t', b == '\n', b == '\r':
		return classWhitespace
	case b == '"':
		return classString
	case b == '\'':
		return classCharacter
	case b == '#':
		return classDirective
	}
	switch b {
	case ',', ';', ':', '(', ')', '[', ']', '{', '}', '~',
		'!', '%', '<', '>', '=', '?', '*', '/', '+', '-', '.', '^', '&', '|':
		return classPunctuation
	}
	return classUndefined
}
