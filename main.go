// Package main - enigma simulates the mechanical encipherment logic of the
// classic rotor cipher machine and repurposes its deterministic permutation
// sequence as a bounded pseudo-random generator.
package main

import "github.com/jgardner/enigma/cmd"

func main() {
	cmd.Execute()
}
