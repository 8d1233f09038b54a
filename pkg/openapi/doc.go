// Package openapi imports form schemas from OpenAPI 3 documents. A component
// schema or an operation's request body becomes a schema.Node tree; the
// object-level required lists of OpenAPI are turned into node-local required
// flags.
package openapi
