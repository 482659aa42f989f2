package lex

import "fmt"

// Category is the lexical class assigned to a token. Keywords and
// typenames are summarized under CategoryIdentifier, and line comments
// are emitted as CategoryPunctuation.
type Category uint8

const (
	CategoryUndefined Category = iota
	CategoryNumber
	CategoryIdentifier
	CategoryWhitespace
	CategoryString
	CategoryCharacter
	CategoryPunctuation
	CategoryDirective
)

func (c Category) String() string {
	switch c {
	case CategoryUndefined:
		return "Undefined"
	case CategoryNumber:
		return "Number"
	case CategoryIdentifier:
		return "Identifier"
	case CategoryWhitespace:
		return "Whitespace"
	case CategoryString:
		return "String"
	case CategoryCharacter:
		return "Character"
	case CategoryPunctuation:
		return "Punctuation"
	case CategoryDirective:
		return "Directive"
	default:
		return fmt.Sprintf("unknown-%d", uint8(c))
	}
}

// State is the outcome of a single match attempt. StateSuccess and
// StateFail are terminal per token. StateUndecided means the window
// does not hold enough bytes to decide the token's extent and the
// caller must refill before retrying from the same window start.
// StateEnd means the window starts with the \0 sentinel and no further
// tokens exist.
type State uint8

const (
	StateSuccess State = iota
	StateFail
	StateUndecided
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "Success"
	case StateFail:
		return "Fail"
	case StateUndecided:
		return "Undecided"
	case StateEnd:
		return "End"
	default:
		return fmt.Sprintf("unknown-%d", uint8(s))
	}
}

// Match is the result of running one matcher against a window. Length
// is defined only when State is StateSuccess.
type Match struct {
	State  State
	Length int
}

// Token is one lexical unit of the input stream. Offset is relative to
// the start of the original stream and is monotonically increasing
// across refills. The engine holds no token history; tokens are
// written fresh into caller-owned storage.
type Token struct {
	Category Category
	Offset   int64
	Length   int
}
