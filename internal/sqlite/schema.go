// Package sqlite implements the SQLite address book: spreadsheet rows
// imported into a database file and served as a types.Roster.
package sqlite

// Schema DDL. Absent fields are stored as empty strings.
const (
	createAddresses = `CREATE TABLE IF NOT EXISTS addresses (
    row_index INTEGER PRIMARY KEY,
    record_id TEXT NOT NULL UNIQUE,
    last_name1 TEXT NOT NULL DEFAULT '',
    first_name1 TEXT NOT NULL DEFAULT '',
    last_name2 TEXT NOT NULL DEFAULT '',
    first_name2 TEXT NOT NULL DEFAULT '',
    address1 TEXT NOT NULL DEFAULT '',
    address2 TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    state TEXT NOT NULL DEFAULT '',
    zip TEXT NOT NULL DEFAULT '',
    country TEXT NOT NULL DEFAULT '',
    imported_at TEXT NOT NULL
);`

	createNameTokens = `CREATE TABLE IF NOT EXISTS name_tokens (
    row_index INTEGER NOT NULL,
    token TEXT NOT NULL,
    PRIMARY KEY (row_index, token),
    FOREIGN KEY (row_index) REFERENCES addresses(row_index)
);`
)

// Index DDL for token lookups.
const (
	idxNameTokensToken = `CREATE INDEX IF NOT EXISTS idx_name_tokens_token ON name_tokens(token);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	createAddresses,
	createNameTokens,
	idxNameTokensToken,
}

// addressColumns are the record columns in types.Record.Cells order.
var addressColumns = []string{
	"last_name1", "first_name1", "last_name2", "first_name2",
	"address1", "address2", "city", "state", "zip", "country",
}
