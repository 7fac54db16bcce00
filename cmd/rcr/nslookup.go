package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var nslookupCmd = &cobra.Command{
	Use:   "nslookup <nslookup-arguments...>",
	Short: "Run nslookup on the remote host",
	// Everything after "nslookup" belongs to the remote nslookup.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "rcr nslookup requires a hostname.")
			fmt.Fprintln(os.Stderr, "Example: rcr nslookup example.com")
			return &exitCodeError{code: 1}
		}
		return runRemote(cmd, append([]string{"nslookup"}, args...), "nslookup")
	},
}
