// SPDX-License-Identifier: MIT

// Command arborist runs forest operations over JSON records.
package main

import (
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
