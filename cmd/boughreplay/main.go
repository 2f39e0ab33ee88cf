// Command boughreplay loads a scene file and drives it with scripted or
// interactive input, printing what every item receives.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
