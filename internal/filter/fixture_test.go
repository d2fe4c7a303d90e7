package filter

import (
	"github.com/mesh-intelligence/labels/internal/roster"
	"github.com/mesh-intelligence/labels/pkg/types"
)

// fixtureNames are the 18 data rows used throughout the tests, indexed from 1.
var fixtureNames = []struct{ first, first2, last string }{
	{"John", "", "Walker"},
	{"Billy", "Bob", "Walker"},
	{"Cindi", "", "Fry"},
	{"Rafael", "", "Monaghan"},
	{"Ernesto", "", "Maldanado"},
	{"Elda", "", "Gurney"},
	{"Eleanor", "", "Steller"},
	{"Jean", "", "Mantle"},
	{"Jude", "", "Wishon"},
	{"Joselyn", "", "Viruet"},
	{"Lesa", "", "Kindig"},
	{"Lyn", "", "Klinger"},
	{"Craig", "", "Walker"},
	{"Tennie", "", "Otten"},
	{"Cira", "", "Trowell"},
	{"Madalene", "", "Raatz"},
	{"Darleen", "", "Mccluskey"},
	{"Ayesha", "", "Nevius     "},
}

func newFixture() *roster.Roster {
	records := make([]types.Record, len(fixtureNames))
	for i, n := range fixtureNames {
		records[i] = types.Record{
			LastName1:  n.last,
			FirstName1: n.first,
			FirstName2: n.first2,
			Address1:   "231 Stark Hollow Road",
			City:       "Greeley",
			State:      "CO",
			Zip:        "12345",
		}
	}
	return roster.New(records)
}

var fixtureBounds = types.Bounds{Min: 1, Max: 18}

// span returns the inclusive range [from, to].
func span(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// without returns indices minus the given values.
func without(indices []int, drop ...int) []int {
	skip := make(map[int]bool, len(drop))
	for _, d := range drop {
		skip[d] = true
	}
	var out []int
	for _, i := range indices {
		if !skip[i] {
			out = append(out, i)
		}
	}
	return out
}

// failingLookup returns err from every Match.
type failingLookup struct{ err error }

func (f failingLookup) Match([]string) ([]int, error) { return nil, f.err }

// fixedLookup returns the same indices for every query.
type fixedLookup []int

func (f fixedLookup) Match([]string) ([]int, error) { return f, nil }
