// Command scoreengrave lays out music notation from a score description:
// render it to JSON, preview it interactively, or validate it, via the
// cobra command tree in package cmd.
package main

import "github.com/ako-backing-tracks/scoreengrave/cmd"

func main() {
	cmd.Execute()
}
