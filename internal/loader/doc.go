// Package loader reads schema and value documents for the command line tool.
package loader
