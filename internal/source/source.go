// Package source opens a data source as a types.Roster, choosing the
// backend from the file extension.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/labels/internal/sheet"
	"github.com/mesh-intelligence/labels/internal/sqlite"
	"github.com/mesh-intelligence/labels/pkg/types"
)

// Address book extensions served by the SQLite backend.
var sqliteExts = map[string]bool{
	".db":      true,
	".sqlite":  true,
	".sqlite3": true,
}

// IsAddressBook reports whether path names a SQLite address book.
func IsAddressBook(path string) bool {
	return sqliteExts[strings.ToLower(filepath.Ext(path))]
}

// Open loads path. Spreadsheets are read fully into memory; header controls
// whether their first row is skipped. Address books are attached in place
// and must already exist. The caller must Close the returned roster.
func Open(path string, header bool) (types.Roster, error) {
	if IsAddressBook(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("address book: %w", err)
		}
		b := sqlite.NewBackend()
		if err := b.Attach(types.StoreConfig{Path: path}); err != nil {
			return nil, fmt.Errorf("attach address book: %w", err)
		}
		return b, nil
	}

	if !sheet.Supports(path) {
		return nil, fmt.Errorf("%w: %q, expected .xlsx, .csv or .db",
			types.ErrUnsupportedFormat, filepath.Ext(path))
	}
	r, err := sheet.Load(path, header)
	if err != nil {
		return nil, err
	}
	return r, nil
}
