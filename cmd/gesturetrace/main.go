// Command gesturetrace replays scripted touch input through a gesture
// coordinator and prints the gestures it recognizes.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/driftgesture/cmd/gesturetrace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
