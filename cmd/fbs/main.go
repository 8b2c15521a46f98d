// Package main is the fbs command, which loads a floating-base system and answers queries about it.
package main

import (
	"os"

	"go.viam.com/floatingbase/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logging.NewLogger("fbs").Fatal(err)
	}
}
