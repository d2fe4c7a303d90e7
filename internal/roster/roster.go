// Package roster provides an in-memory types.Roster over a slice of
// records, matching names by token-set containment.
package roster

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// FirstIndex is the index of the first data row.
const FirstIndex = 1

// Roster holds records in row order. It is safe for concurrent reads.
type Roster struct {
	mu      sync.RWMutex
	closed  bool
	records []types.Record
	tokens  []map[string]struct{}
}

// New returns a Roster over records, numbered from FirstIndex.
func New(records []types.Record) *Roster {
	r := &Roster{
		records: records,
		tokens:  make([]map[string]struct{}, len(records)),
	}
	for i, rec := range records {
		set := make(map[string]struct{})
		for _, tok := range rec.NameTokens() {
			set[tok] = struct{}{}
		}
		r.tokens[i] = set
	}
	return r
}

// Bounds returns [FirstIndex, FirstIndex+len-1].
func (r *Roster) Bounds() types.Bounds {
	return types.Bounds{Min: FirstIndex, Max: FirstIndex + len(r.records) - 1}
}

// Len returns the number of records.
func (r *Roster) Len() int {
	return len(r.records)
}

// Get returns the record at index.
func (r *Roster) Get(index int) (types.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return types.Record{}, types.ErrSourceClosed
	}
	if !r.Bounds().Contains(index) {
		return types.Record{}, fmt.Errorf("%w: %d, bounds %s", types.ErrRowOutOfRange, index, r.Bounds())
	}
	return r.records[index-FirstIndex], nil
}

// Match returns the indices of every record whose name tokens include all
// of tokens, in ascending order. Tokens are compared as given; callers pass
// lower-cased words. An empty query matches nothing.
func (r *Roster) Match(tokens []string) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, types.ErrSourceClosed
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	var indices []int
	for i, set := range r.tokens {
		if containsAll(set, tokens) {
			indices = append(indices, i+FirstIndex)
		}
	}
	return indices, nil
}

// Close marks the roster closed. Idempotent.
func (r *Roster) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}

func containsAll(set map[string]struct{}, tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := set[tok]; !ok {
			return false
		}
	}
	return true
}

var _ types.Roster = (*Roster)(nil)
