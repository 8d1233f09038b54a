// Package fields maps schema kinds to the handlers that interpret values of
// each kind. Kinds without a handler are unsupported: consumers report a
// diagnostic instead of failing.
package fields
