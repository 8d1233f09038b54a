// Package form holds the live state of one form: its value tree, its
// per-path errors and the last edited field. It forwards edits to path
// addressing and validation and exposes field descriptors for renderers.
package form
