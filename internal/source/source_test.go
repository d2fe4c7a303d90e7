package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labels/internal/roster"
	"github.com/mesh-intelligence/labels/internal/sqlite"
	"github.com/mesh-intelligence/labels/pkg/types"
)

func TestOpenCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.csv")
	require.NoError(t, os.WriteFile(path, []byte("Fry,Cindi\nWalker,John\n"), 0o644))

	r, err := Open(path, false)
	require.NoError(t, err)
	defer r.Close()

	assert.IsType(t, &roster.Roster{}, r)
	assert.Equal(t, types.Bounds{Min: 1, Max: 2}, r.Bounds())
}

func TestOpenAddressBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.db")

	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.StoreConfig{Path: path}))
	_, err := b.Import([]types.Record{{LastName1: "Fry", FirstName1: "Cindi"}})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	r, err := Open(path, true)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.Match([]string{"cindi"})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.db"), true)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(filepath.Join(dir, "missing.db"))
	assert.True(t, os.IsNotExist(err), "a missing address book is not created")

	_, err = Open(filepath.Join(dir, "addresses.ods"), true)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestIsAddressBook(t *testing.T) {
	assert.True(t, IsAddressBook("book.db"))
	assert.True(t, IsAddressBook("book.SQLITE"))
	assert.False(t, IsAddressBook("book.xlsx"))
}
