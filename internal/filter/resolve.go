package filter

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// NoSelf is the self index reported when no self name was given.
const NoSelf = -1

// MatchObserver is told how many rows a name clause matched.
type MatchObserver func(term string, matches int)

// Option configures Resolve and Evaluate.
type Option func(*settings)

type settings struct {
	observe MatchObserver
}

// WithMatchObserver reports the match count of every name clause to fn.
func WithMatchObserver(fn MatchObserver) Option {
	return func(s *settings) {
		s.observe = fn
	}
}

// Result is the outcome of Evaluate.
type Result struct {
	Selection *Selection
	// Self is the index of the self row, or NoSelf.
	Self int
}

// HasSelf reports whether a self row was resolved.
func (r Result) HasSelf() bool {
	return r.Self != NoSelf
}

// Resolve evaluates expr against bounds, looking names up through lookup.
// lookup may be nil when expr has no name clauses.
func Resolve(expr string, bounds types.Bounds, lookup types.NameLookup, opts ...Option) (*Selection, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	clauses, err := Parse(expr)
	if err != nil {
		return nil, err
	}

	sel := NewSelection()
	for _, c := range clauses {
		set, err := resolveClause(c, bounds, lookup, cfg)
		if err != nil {
			return nil, err
		}
		if c.Invert {
			sel.subtract(set)
		} else {
			sel.union(set)
		}
	}
	return sel, nil
}

// ResolveSelf looks up the single row named selfName and returns a copy of
// sel without it, together with its index. The name is matched as a whole
// token set; '!' and '*' have no meaning here. A blank selfName skips the
// step and returns sel unchanged with NoSelf. Zero or several matching rows
// return an error wrapping ErrNameResolution.
func ResolveSelf(selfName string, bounds types.Bounds, lookup types.NameLookup, sel *Selection) (*Selection, int, error) {
	if strings.TrimSpace(selfName) == "" {
		return sel.Clone(), NoSelf, nil
	}
	if err := bounds.Validate(); err != nil {
		return nil, NoSelf, err
	}

	matches, err := lookupName(types.Tokenize(selfName), selfName, bounds, lookup)
	if err != nil {
		return nil, NoSelf, err
	}
	switch matches.GetCardinality() {
	case 0:
		return nil, NoSelf, fmt.Errorf("%w: name '%s' not found, it is needed for the return address", ErrNameResolution, selfName)
	case 1:
	default:
		return nil, NoSelf, fmt.Errorf("%w: name '%s' found %d times, the return address must match exactly one row",
			ErrNameResolution, selfName, matches.GetCardinality())
	}

	self := int(matches.Minimum())
	out := sel.Clone()
	out.remove(self)
	return out, self, nil
}

// Evaluate runs Resolve and then ResolveSelf.
func Evaluate(expr, selfName string, bounds types.Bounds, lookup types.NameLookup, opts ...Option) (Result, error) {
	sel, err := Resolve(expr, bounds, lookup, opts...)
	if err != nil {
		return Result{}, err
	}
	sel, self, err := ResolveSelf(selfName, bounds, lookup, sel)
	if err != nil {
		return Result{}, err
	}
	return Result{Selection: sel, Self: self}, nil
}

func resolveClause(c Clause, bounds types.Bounds, lookup types.NameLookup, cfg settings) (*roaring.Bitmap, error) {
	switch c.Kind {
	case KindWildcard:
		set := roaring.New()
		if bounds.Len() > 0 {
			set.AddRange(uint64(bounds.Min), uint64(bounds.Max)+1)
		}
		return set, nil

	case KindIndex:
		if !bounds.Contains(c.Start) {
			return nil, outOfBounds(c, bounds)
		}
		return roaring.BitmapOf(uint32(c.Start)), nil

	case KindRange:
		if !bounds.Contains(c.Start) || !bounds.Contains(c.End) {
			return nil, outOfBounds(c, bounds)
		}
		if c.Start > c.End {
			return nil, fmt.Errorf("%w: invalid range: start > end in %s", ErrRange, c.Term)
		}
		set := roaring.New()
		set.AddRange(uint64(c.Start), uint64(c.End)+1)
		return set, nil

	case KindName:
		set, err := lookupName(c.Tokens, c.Term, bounds, lookup)
		if err != nil {
			return nil, err
		}
		if cfg.observe != nil {
			cfg.observe(c.Term, int(set.GetCardinality()))
		}
		return set, nil

	default:
		return nil, fmt.Errorf("%w: not a valid filter: %s", ErrSyntax, c.Term)
	}
}

func outOfBounds(c Clause, bounds types.Bounds) error {
	return fmt.Errorf("%w: invalid index: %s, out of bounds %s", ErrRange, c.Term, bounds)
}

// lookupName asks lookup for tokens and checks that every returned index
// lies within bounds.
func lookupName(tokens []string, term string, bounds types.Bounds, lookup types.NameLookup) (*roaring.Bitmap, error) {
	if lookup == nil {
		return nil, fmt.Errorf("%w: no name lookup available for '%s'", ErrLookup, term)
	}
	indices, err := lookup.Match(tokens)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", ErrLookup, term, err)
	}
	set := roaring.New()
	for _, i := range indices {
		if !bounds.Contains(i) {
			return nil, fmt.Errorf("%w: '%s' matched row %d outside bounds %s", ErrLookup, term, i, bounds)
		}
		set.Add(uint32(i))
	}
	return set, nil
}
