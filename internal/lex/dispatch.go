// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package lex implements the incremental matching engine for C-like
// source text: a byte classifier, per-class matchers, and a dispatcher
// that decides one token per call against a caller-owned window. The
// engine is pure and re-entrant; suspension is expressed by returning
// StateUndecided, never by blocking.
package lex

import "fmt"

// Dispatch classifies the first byte of the window and runs exactly
// one matcher for its class. The returned category is meaningful for
// every state so a failed byte can be reported with the class it was
// attempted as.
//
// The window must hold at least LookaheadMin bytes. A shorter window
// is a bug in the caller's refill protocol, not a recoverable
// condition, so it panics rather than risk a silently wrong token.
func Dispatch(w Window) (Category, Match) {
	if len(w) < LookaheadMin {
		panic(fmt.Sprintf("lex: window holds %d bytes, below the %d-byte lookahead floor", len(w), LookaheadMin))
	}
	switch classify(w[0]) {
	case classEnd:
		return CategoryUndefined, Match{State: StateEnd}
	case classNumber:
		return CategoryNumber, matchNumber(w)
	case classIdentifier:
		return CategoryIdentifier, matchRun(w, identByte)
	case classWhitespace:
		return CategoryWhitespace, matchRun(w, spaceByte)
	case classString:
		return CategoryString, matchEscaped(w, 1, '"', true)
	case classCharacter:
		return CategoryCharacter, matchEscaped(w, 1, '\'', true)
	case classDirective:
		return CategoryDirective, matchEscaped(w, 1, '\n', false)
	case classPunctuation:
		return CategoryPunctuation, matchPunctuation(w)
	default:
		return CategoryUndefined, Match{State: StateFail}
	}
}
