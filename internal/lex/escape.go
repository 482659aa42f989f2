// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lex

// matchEscaped scans forward from offset start for an unescaped
// terminator byte. A backslash that is not itself escaped sets the
// escape-pending bit and is otherwise passed over; any other byte
// clears it; term ends the token only when the bit is clear at that
// position. Two consecutive backslashes therefore leave a following
// terminator unescaped, while a single backslash hides it.
//
// keepTerm selects whether the terminator byte counts toward the
// emitted length: string and character literals keep their closing
// quote, directives and line comments exclude their newline.
//
// Offsets below LookaheadMin are readable without a bounds check under
// the window invariant; the bounds-checked loop continues from there
// with the escape bit carried over.
func matchEscaped(w Window, start int, term byte, keepTerm bool) Match {
	esc := false
	i := start
	for ; i < LookaheadMin; i++ {
		b := w[i]
		if esc {
			esc = false
			continue
		}
		if b == '\\' {
			esc = true
			continue
		}
		if b == term {
			return matchAt(i, keepTerm)
		}
	}
	for ; i < len(w); i++ {
		b := w[i]
		if esc {
			esc = false
			continue
		}
		if b == '\\' {
			esc = true
			continue
		}
		if b == term {
			return matchAt(i, keepTerm)
		}
	}
	return Match{State: StateUndecided}
}

func matchAt(i int, keepTerm bool) Match {
	if keepTerm {
		return Match{State: StateSuccess, Length: i + 1}
	}
	return Match{State: StateSuccess, Length: i}
}
