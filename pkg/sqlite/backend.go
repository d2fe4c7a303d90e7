// Package sqlite provides the public API for the SQLite address book.
// It exposes the factory function while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/labels/internal/sqlite"
	"github.com/mesh-intelligence/labels/pkg/types"
)

// DefaultFileName is the address book file created in the data directory.
const DefaultFileName = sqlite.DefaultFileName

// NewAddressBook creates a new SQLite address book. It is not attached;
// call Attach with a StoreConfig before use.
//
// Example:
//
//	book := sqlite.NewAddressBook()
//	err := book.Attach(types.StoreConfig{Path: "addresses.db"})
//	defer book.Detach()
func NewAddressBook() types.AddressBook {
	return sqlite.NewBackend()
}
