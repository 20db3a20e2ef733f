// Command logo runs Logo programs and an interactive Logo session.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "logo: %v\n", err)
		os.Exit(1)
	}
}
