package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// DefaultFileName is the database file created in the data directory.
const DefaultFileName = "addresses.db"

// Backend implements types.Roster over a SQLite database. Rows are numbered
// from 1 in import order.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.StoreConfig
	db       *sql.DB
	count    int
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a StoreConfig to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the database at config.Path, creating the file, its parent
// directory and the schema if needed.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.StoreConfig) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return err
	}
	// One connection keeps import transactions and reads on the same file handle.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM addresses").Scan(&count); err != nil {
		db.Close()
		return fmt.Errorf("count addresses: %w", err)
	}

	b.db = db
	b.config = config
	b.count = count
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent. After Detach, operations return
// ErrSourceClosed.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.count = 0
	return nil
}

// Close is Detach, satisfying types.Roster.
func (b *Backend) Close() error {
	return b.Detach()
}

// Path returns the attached database path.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.Path
}

// Bounds returns [1, number of rows]. A detached backend has no rows.
func (b *Backend) Bounds() types.Bounds {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return types.Bounds{Min: 1, Max: b.count}
}

// Import replaces the address book with records in one transaction. Each
// row gets a new UUID v7 record id. Returns the number of rows stored.
func (b *Backend) Import(records []types.Record) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrSourceClosed
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM name_tokens", "DELETE FROM addresses"} {
		if _, err := tx.Exec(stmt); err != nil {
			return 0, fmt.Errorf("clear address book: %w", err)
		}
	}

	insertAddr, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO addresses (row_index, record_id, %s, imported_at) VALUES (?, ?, %s, ?)",
		strings.Join(addressColumns, ", "),
		placeholders(len(addressColumns)),
	))
	if err != nil {
		return 0, fmt.Errorf("prepare address insert: %w", err)
	}
	defer insertAddr.Close()

	insertToken, err := tx.Prepare("INSERT OR IGNORE INTO name_tokens (row_index, token) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare token insert: %w", err)
	}
	defer insertToken.Close()

	now := nowRFC3339()
	for i, rec := range records {
		row := i + 1
		args := []any{row, generateUUID()}
		for _, c := range rec.Cells() {
			args = append(args, c)
		}
		args = append(args, now)

		if _, err := insertAddr.Exec(args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", row, err)
		}
		for _, tok := range rec.NameTokens() {
			if _, err := insertToken.Exec(row, tok); err != nil {
				return 0, fmt.Errorf("insert token for row %d: %w", row, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	b.count = len(records)
	return len(records), nil
}

// Get returns the record at index.
func (b *Backend) Get(index int) (types.Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Record{}, types.ErrSourceClosed
	}
	bounds := types.Bounds{Min: 1, Max: b.count}
	if !bounds.Contains(index) {
		return types.Record{}, fmt.Errorf("%w: %d, bounds %s", types.ErrRowOutOfRange, index, bounds)
	}

	cells := make([]string, len(addressColumns))
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}
	query := fmt.Sprintf("SELECT %s FROM addresses WHERE row_index = ?", strings.Join(addressColumns, ", "))
	if err := b.db.QueryRow(query, index).Scan(dest...); err != nil {
		return types.Record{}, fmt.Errorf("get row %d: %w", index, err)
	}
	return types.RecordFromCells(cells), nil
}

// Match returns the rows whose name tokens include every query token, in
// ascending order. An empty query matches nothing.
func (b *Backend) Match(tokens []string) ([]int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrSourceClosed
	}

	distinct := dedupe(tokens)
	if len(distinct) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(
		"SELECT row_index FROM name_tokens WHERE token IN (%s) GROUP BY row_index HAVING COUNT(DISTINCT token) = ? ORDER BY row_index",
		placeholders(len(distinct)),
	)
	args := make([]any, 0, len(distinct)+1)
	for _, tok := range distinct {
		args = append(args, tok)
	}
	args = append(args, len(distinct))

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("match names: %w", err)
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var i int
		if err := rows.Scan(&i); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		indices = append(indices, i)
	}
	return indices, rows.Err()
}

// generateUUID generates a new UUID v7 for record IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// nowRFC3339 returns the current UTC time formatted for storage.
func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

var _ types.AddressBook = (*Backend)(nil)
