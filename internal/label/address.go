package label

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// FormatName composes the addressee line from whichever name fields are
// present:
//
//	John Miller & Mary Sue   both first and last names
//	John & Mary Miller       two first names, one last name
//	John Miller              one person
//	ACME Cars                last name only, for companies
//
// It returns false when no usable combination exists.
func FormatName(r types.Record) (string, bool) {
	switch {
	case r.LastName1 != "" && r.FirstName1 != "" && r.LastName2 != "" && r.FirstName2 != "":
		return fmt.Sprintf("%s %s & %s %s", r.FirstName1, r.LastName1, r.FirstName2, r.LastName2), true
	case r.LastName1 != "" && r.FirstName1 != "" && r.FirstName2 != "":
		return fmt.Sprintf("%s & %s %s", r.FirstName1, r.FirstName2, r.LastName1), true
	case r.LastName1 != "" && r.FirstName1 != "":
		return fmt.Sprintf("%s %s", r.FirstName1, r.LastName1), true
	case r.LastName1 != "":
		return r.LastName1, true
	default:
		return "", false
	}
}

// Lines returns the printed lines of a label from top to bottom: name,
// street, city line and country. Everything but the name is upper-cased for
// readability. A PO box in Address2 replaces the street address.
func Lines(r types.Record) ([]string, bool) {
	name, ok := FormatName(r)
	if !ok {
		return nil, false
	}

	street := r.Address1
	if r.Address2 != "" {
		street = r.Address2
	}

	lines := []string{name}
	if street != "" {
		lines = append(lines, strings.ToUpper(street))
	}
	lines = append(lines, strings.ToUpper(fmt.Sprintf("%s %s  %s", r.City, r.State, r.Zip)))
	if r.Country != "" {
		lines = append(lines, strings.ToUpper(r.Country))
	}
	return lines, true
}
