package types

import "strings"

// Record is one address row. Every field is optional; an empty string means
// the cell was absent. A single name (a company, for example) belongs in
// LastName1.
type Record struct {
	LastName1  string `json:"last_name1,omitempty" yaml:"last_name1,omitempty"`
	FirstName1 string `json:"first_name1,omitempty" yaml:"first_name1,omitempty"`
	LastName2  string `json:"last_name2,omitempty" yaml:"last_name2,omitempty"`
	FirstName2 string `json:"first_name2,omitempty" yaml:"first_name2,omitempty"`
	Address1   string `json:"address1,omitempty" yaml:"address1,omitempty"`
	Address2   string `json:"address2,omitempty" yaml:"address2,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
	Zip        string `json:"zip,omitempty" yaml:"zip,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
}

// ColumnCount is the number of spreadsheet columns mapped onto a Record.
const ColumnCount = 10

// RecordFromCells builds a Record from cells in column order: last1, first1,
// last2, first2, address1, address2, city, state, zip, country. Missing
// trailing cells are treated as absent and surrounding whitespace is trimmed.
func RecordFromCells(cells []string) Record {
	get := func(i int) string {
		if i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}
	return Record{
		LastName1:  get(0),
		FirstName1: get(1),
		LastName2:  get(2),
		FirstName2: get(3),
		Address1:   get(4),
		Address2:   get(5),
		City:       get(6),
		State:      get(7),
		Zip:        get(8),
		Country:    get(9),
	}
}

// Cells returns the record's fields in column order, the inverse of
// RecordFromCells.
func (r Record) Cells() []string {
	return []string{
		r.LastName1, r.FirstName1, r.LastName2, r.FirstName2,
		r.Address1, r.Address2, r.City, r.State, r.Zip, r.Country,
	}
}

// NameTokens returns the lower-cased words of the name fields, skipping
// absent fields. Duplicates are kept; callers treat the result as a set.
func (r Record) NameTokens() []string {
	var tokens []string
	for _, field := range []string{r.LastName1, r.FirstName1, r.LastName2, r.FirstName2} {
		tokens = append(tokens, Tokenize(field)...)
	}
	return tokens
}

// IsBlank reports whether every field is absent.
func (r Record) IsBlank() bool {
	for _, c := range r.Cells() {
		if c != "" {
			return false
		}
	}
	return true
}

// Missing returns the names of required fields that are absent. A record
// needs a last name, a street address, a city, a state and a zip to be
// printed.
func (r Record) Missing() []string {
	var missing []string
	if r.LastName1 == "" {
		missing = append(missing, "last_name1")
	}
	if r.Address1 == "" {
		missing = append(missing, "address1")
	}
	if r.City == "" {
		missing = append(missing, "city")
	}
	if r.State == "" {
		missing = append(missing, "state")
	}
	if r.Zip == "" {
		missing = append(missing, "zip")
	}
	return missing
}

// Tokenize splits s on whitespace and lower-cases each word. Punctuation is
// not stripped.
func Tokenize(s string) []string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}
