// Package main is the entry point of the pagesim command.
package main

import "github.com/sarchlab/pagesim/cmd"

func main() {
	cmd.Execute()
}
