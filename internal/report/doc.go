// Package report formats validation results for the command line and maps
// failures onto process exit codes.
package report
