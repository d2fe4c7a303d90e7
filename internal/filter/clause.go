package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// Kind classifies a clause.
type Kind int

// Clause kinds.
const (
	KindWildcard Kind = iota + 1
	KindIndex
	KindRange
	KindName
)

func (k Kind) String() string {
	switch k {
	case KindWildcard:
		return "wildcard"
	case KindIndex:
		return "index"
	case KindRange:
		return "range"
	case KindName:
		return "name"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// invertMarker prefixes a clause whose indices are removed rather than added.
const invertMarker = "!"

// Clause is one classified unit of a filter expression.
type Clause struct {
	// Raw is the trimmed clause text as typed, including any '!'.
	Raw string
	// Term is Raw without the inversion marker.
	Term   string
	Invert bool
	Kind   Kind

	// Start and End are set for KindIndex (Start == End) and KindRange.
	Start int
	End   int

	// Tokens are the lower-cased words of a KindName clause.
	Tokens []string
}

// Split breaks expr on commas into trimmed, non-empty clause strings in
// their original order.
func Split(expr string) []string {
	var clauses []string
	for part := range strings.SplitSeq(expr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			clauses = append(clauses, part)
		}
	}
	return clauses
}

// Parse splits and classifies every clause of expr. An empty expression
// yields no clauses and no error.
func Parse(expr string) ([]Clause, error) {
	raws := Split(expr)
	clauses := make([]Clause, 0, len(raws))
	for _, raw := range raws {
		c, err := Classify(raw)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

// Classify turns one trimmed clause string into a Clause. It returns an
// error wrapping ErrSyntax when the clause fits no known form.
func Classify(raw string) (Clause, error) {
	c := Clause{Raw: raw, Term: raw}
	if term, ok := strings.CutPrefix(raw, invertMarker); ok {
		c.Invert = true
		c.Term = term
	}
	if c.Term == "" {
		return Clause{}, fmt.Errorf("%w: dangling '%s'", ErrSyntax, invertMarker)
	}

	switch {
	case c.Term == "*":
		c.Kind = KindWildcard
	case isNameTerm(c.Term):
		c.Kind = KindName
		c.Tokens = types.Tokenize(c.Term)
	case isNumericTerm(c.Term):
		if !strings.Contains(c.Term, "-") {
			c.Kind = KindIndex
			c.Start = parseIndex(c.Term)
			c.End = c.Start
			break
		}
		parts := strings.Split(c.Term, "-")
		if len(parts) != 2 || !isDigits(parts[0]) || !isDigits(parts[1]) {
			return Clause{}, fmt.Errorf("%w: invalid index range: %s", ErrSyntax, c.Term)
		}
		c.Kind = KindRange
		c.Start = parseIndex(parts[0])
		c.End = parseIndex(parts[1])
	default:
		return Clause{}, fmt.Errorf("%w: not a valid filter: %s", ErrSyntax, c.Term)
	}
	return c, nil
}

func isNameTerm(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isNumericTerm(s string) bool {
	for _, r := range s {
		if !isDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// parseIndex converts an all-digit string. Values too large for an int
// saturate to math.MaxInt, which no bounds contain.
func parseIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}
