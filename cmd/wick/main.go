// Command wick creates, inspects, plays and edits wick animation projects.
package main

import "github.com/wickgo/wick/cmd/wick/cmd"

func main() {
	cmd.Execute()
}
