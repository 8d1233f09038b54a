// Package main is the entry point for the formschema CLI.
package main

import (
	"os"

	"github.com/goliatone/go-formschema/cmd/formschema/commands"
)

func main() {
	os.Exit(commands.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
