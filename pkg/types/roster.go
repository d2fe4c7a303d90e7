package types

import (
	"errors"
	"fmt"
	"math"
)

// Bounds is the inclusive range of valid row indices of a data source.
type Bounds struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// MaxIndex is the largest row index a source may report.
const MaxIndex = math.MaxUint32

// ErrInvalidBounds is returned by Bounds.Validate.
var ErrInvalidBounds = errors.New("invalid bounds")

// Validate checks that Min is not negative and Max does not exceed
// MaxIndex. Max may be below Min, which describes a source with no rows.
func (b Bounds) Validate() error {
	if b.Min < 0 {
		return fmt.Errorf("%w: min %d is negative", ErrInvalidBounds, b.Min)
	}
	if int64(b.Max) > MaxIndex {
		return fmt.Errorf("%w: max %d exceeds %d", ErrInvalidBounds, b.Max, int64(MaxIndex))
	}
	return nil
}

// Contains reports whether i lies within the bounds.
func (b Bounds) Contains(i int) bool {
	return i >= b.Min && i <= b.Max
}

// Len returns the number of indices in the bounds.
func (b Bounds) Len() int {
	if b.Max < b.Min {
		return 0
	}
	return b.Max - b.Min + 1
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// NameLookup maps lower-cased query tokens to the indices of every record
// whose name tokens contain all of them.
type NameLookup interface {
	Match(tokens []string) ([]int, error)
}

// Roster is a loaded data source: a NameLookup that also exposes its bounds
// and individual records. Rows are numbered from 1 over data rows; header
// rows are not counted.
type Roster interface {
	NameLookup

	// Bounds returns the valid index range.
	Bounds() Bounds

	// Get returns the record at index. Returns ErrRowOutOfRange if the
	// index is outside Bounds.
	Get(index int) (Record, error)

	// Close releases resources held by the source. Idempotent.
	Close() error
}

// AddressBook is a persistent Roster whose contents are replaced by Import.
type AddressBook interface {
	Roster

	// Attach opens or creates the store named by config.
	Attach(config StoreConfig) error

	// Detach closes the store. Idempotent.
	Detach() error

	// Import replaces the stored records and returns how many were stored.
	// Records are numbered from 1 in slice order.
	Import(records []Record) (int, error)
}

// Roster errors.
var (
	ErrRowOutOfRange     = errors.New("row index out of range")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrSourceClosed      = errors.New("source is closed")
	ErrAlreadyAttached   = errors.New("address book is already attached")
	ErrStorePathEmpty    = errors.New("address book path must not be empty")
)
