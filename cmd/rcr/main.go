// Package main is the entry point for rcr.
package main

import (
	"os"
)

func main() {
	os.Exit(Execute())
}
