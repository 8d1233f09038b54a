// Package terminal fills a form interactively. Each supported field is asked
// with a prompt suited to its kind: enumerations become selects, booleans
// confirmations, and textarea or password formats their dedicated prompts.
// Answers go through the form controller so field errors are shown and the
// field is asked again.
package terminal
