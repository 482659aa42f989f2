// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lex

import "fmt"

// matchPunctuation resolves the operator grammar of a C-like language
// over at most three bytes of lookahead, longest valid match first.
// Line comments are handled here because they begin with the divide
// byte; their body runs to an unescaped newline which, like the
// directive terminator, is excluded from the length.
//
// The classifier guarantees w[0] is in the punctuation alphabet. Any
// byte reaching the final case means the two alphabets drifted apart,
// which must fail loudly rather than emit a corrupt token.
func matchPunctuation(w Window) Match {
	b := w[0]
	switch b {
	case ',', ';', ':', '(', ')', '[', ']', '{', '}', '~':
		return Match{State: StateSuccess, Length: 1}

	case '-':
		// Arrow or minus-equals.
		if w[1] == '>' || w[1] == '=' {
			return Match{State: StateSuccess, Length: 2}
		}
		return Match{State: StateSuccess, Length: 1}

	case '&', '|', '+':
		if w[1] == b || w[1] == '=' {
			return Match{State: StateSuccess, Length: 2}
		}
		return Match{State: StateSuccess, Length: 1}

	case '<', '>':
		// Shift, shift-assign, or comparison.
		if w[1] == b {
			if w[2] == '=' {
				return Match{State: StateSuccess, Length: 3}
			}
			return Match{State: StateSuccess, Length: 2}
		}
		if w[1] == '=' {
			return Match{State: StateSuccess, Length: 2}
		}
		return Match{State: StateSuccess, Length: 1}

	case '^', '=', '*', '%', '!':
		// In the simple cases, just an equal-sign may follow.
		if w[1] == '=' {
			return Match{State: StateSuccess, Length: 2}
		}
		return Match{State: StateSuccess, Length: 1}

	case '?':
		if w[1] == ':' {
			return Match{State: StateSuccess, Length: 2}
		}
		return Match{State: StateSuccess, Length: 1}

	case '.':
		// A full ellipsis or a single dot. Two dots are never consumed
		// speculatively: without a third the match is one dot.
		if w[1] == '.' && w[2] == '.' {
			return Match{State: StateSuccess, Length: 3}
		}
		return Match{State: StateSuccess, Length: 1}

	case '/':
		switch w[1] {
		case '/':
			return matchEscaped(w, 2, '\n', false)
		case '=':
			return Match{State: StateSuccess, Length: 2}
		}
		return Match{State: StateSuccess, Length: 1}
	}

	panic(fmt.Sprintf("lex: byte %q reached the punctuation matcher outside its alphabet", b))
}
