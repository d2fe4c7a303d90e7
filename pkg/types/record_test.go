package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordFromCells(t *testing.T) {
	r := RecordFromCells([]string{"Walker", " John ", "", "", "231 Stark Hollow Road", "", "Greeley", "CO", "12345"})

	assert.Equal(t, "Walker", r.LastName1)
	assert.Equal(t, "John", r.FirstName1)
	assert.Equal(t, "231 Stark Hollow Road", r.Address1)
	assert.Equal(t, "12345", r.Zip)
	assert.Empty(t, r.Country, "missing trailing cell is absent")
	assert.Equal(t, r, RecordFromCells(r.Cells()))
}

func TestRecordNameTokens(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   []string
	}{
		{
			name:   "single field with several words",
			record: Record{LastName1: "Billy and Bob Walker"},
			want:   []string{"billy", "and", "bob", "walker"},
		},
		{
			name:   "all four name fields",
			record: Record{LastName1: "Miller", FirstName1: "John", LastName2: "Sue", FirstName2: "Mary"},
			want:   []string{"miller", "john", "sue", "mary"},
		},
		{
			name:   "absent fields skipped and whitespace trimmed",
			record: Record{LastName1: "Nevius     ", FirstName1: "  Ayesha"},
			want:   []string{"nevius", "ayesha"},
		},
		{
			name:   "address fields are not name tokens",
			record: Record{LastName1: "Fry", City: "Greeley"},
			want:   []string{"fry"},
		},
		{
			name:   "punctuation is kept",
			record: Record{LastName1: "Walker,", FirstName1: "Craig"},
			want:   []string{"walker,", "craig"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.NameTokens())
		})
	}
}

func TestRecordMissing(t *testing.T) {
	full := Record{LastName1: "Fry", Address1: "233 Stark Hollow Road", City: "Greeley", State: "CO", Zip: "12345"}
	assert.Empty(t, full.Missing())
	assert.False(t, full.IsBlank())

	assert.Equal(t, []string{"last_name1", "address1", "city", "state", "zip"}, Record{}.Missing())
	assert.True(t, Record{}.IsBlank())

	noZip := full
	noZip.Zip = ""
	assert.Equal(t, []string{"zip"}, noZip.Missing())
}

func TestBounds(t *testing.T) {
	b := Bounds{Min: 1, Max: 18}
	assert.NoError(t, b.Validate())
	assert.Equal(t, 18, b.Len())
	assert.True(t, b.Contains(1))
	assert.True(t, b.Contains(18))
	assert.False(t, b.Contains(0))
	assert.False(t, b.Contains(19))
	assert.Equal(t, "1-18", b.String())

	empty := Bounds{Min: 1, Max: 0}
	assert.NoError(t, empty.Validate())
	assert.Equal(t, 0, empty.Len())

	assert.ErrorIs(t, Bounds{Min: -1, Max: 3}.Validate(), ErrInvalidBounds)

	assert.NoError(t, Bounds{Min: 1, Max: MaxIndex}.Validate())
	assert.ErrorIs(t, Bounds{Min: 1, Max: MaxIndex + 1}.Validate(), ErrInvalidBounds)
}
