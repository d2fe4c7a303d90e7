// Package filter evaluates row-filter expressions such as
// "*, !5-20, !john, 15" against the bounds of a data source.
//
// An expression is a comma-separated list of clauses applied left to right
// to a selection that starts empty. A clause is one of:
//
//	"*"          every index in bounds
//	"3"          a single index
//	"4-9"        an inclusive range of indices
//	"mary jane"  every row whose name tokens contain all of the words
//
// A leading '!' removes the clause's indices from the selection instead of
// adding them, so "*, !5" and "!5, *" differ. Evaluation is all-or-nothing:
// any bad clause fails the whole expression and no partial selection is
// returned.
//
// The package holds no state and reads row data only through a
// types.NameLookup, so it is safe for concurrent use.
package filter
