package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping <ping-arguments...>",
	Short: "Run ping on the remote host",
	// Everything after "ping" belongs to the remote ping, flags included.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "rcr ping requires ping arguments.")
			fmt.Fprintln(os.Stderr, "Example: rcr ping 8.8.8.8 -c 4")
			return &exitCodeError{code: 1}
		}
		return runRemote(cmd, append([]string{"ping"}, args...), "ping")
	},
}
