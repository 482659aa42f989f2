// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package lex

// matchRun returns the length of the maximal prefix, starting at
// offset 1, for which pred holds. Offset 0 is already known to satisfy
// pred by classification. Offsets 1 through 3 are readable without a
// bounds check under the window invariant, so short runs resolve
// before the general loop takes over at LookaheadMin.
func matchRun(w Window, pred func(byte) bool) Match {
	if !pred(w[1]) {
		return Match{State: StateSuccess, Length: 1}
	}
	if !pred(w[2]) {
		return Match{State: StateSuccess, Length: 2}
	}
	if !pred(w[3]) {
		return Match{State: StateSuccess, Length: 3}
	}
	for i := LookaheadMin; i < len(w); i++ {
		if !pred(w[i]) {
			return Match{State: StateSuccess, Length: i}
		}
	}
	return Match{State: StateUndecided}
}

// identByte ::= A-Z | a-z | 0-9 | _
func identByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

// spaceByte ::= Space | Tab | NL | CR
func spaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// matchNumber is a stub. Numeric literal syntax is an extension point
// that no dialect has needed yet; digits still classify here so adding
// it is a one-function change.
func matchNumber(w Window) Match {
	return Match{State: StateFail}
}
