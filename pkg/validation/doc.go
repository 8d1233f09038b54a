// Package validation checks value trees against schema nodes and reports
// path-tagged errors. Validation failures are returned as values, never as
// faults: a malformed branch degrades to fewer errors instead of aborting
// the walk.
package validation
