// Package types defines the record, roster and option types shared by the
// label generator, together with the standard errors returned by its data
// sources.
package types
