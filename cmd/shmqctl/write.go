package main

import (
	"os"
	"time"

	"github.com/markrussinovich/shmqueue"
	"github.com/spf13/cobra"
)

func newWriteCmd() *cobra.Command {
	var global bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "write NAME MESSAGE",
		Short: "Open an existing channel as writer and append one message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, message := args[0], args[1]
			scope := resolveScope(global)

			ch, err := shmqueue.OpenOutbound(name, scope)
			if err != nil {
				return err
			}
			defer ch.Close()

			payload := []byte(message)
			state, status := ch.Write(int64(len(payload)), timeout, nil, func(window []byte) shmqueue.Status {
				copy(window, payload)
				return shmqueue.Completed
			})
			printState(state, status)
			if status != shmqueue.Completed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "use global (host-wide) visibility scope instead of local")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up and report Timeout after this long (0 = wait indefinitely)")
	return cmd
}
