// Command shmqctl is a small operator CLI over the shmqueue package: it
// creates and opens named channels, writes and reads one message at a
// time from a terminal, prints channel state, and watches a channel's
// message-state signals — the cobra-based counterpart to the library's
// Go API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shmqctl",
		Short: "Inspect and drive shmqueue channels from the command line",
	}
	cmd.AddCommand(
		newCreateCmd(),
		newWriteCmd(),
		newReadCmd(),
		newStateCmd(),
		newWatchCmd(),
		newProbeCmd(),
	)
	return cmd
}
