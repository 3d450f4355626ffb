package main

import (
	"fmt"
	"os"
	"time"

	"github.com/markrussinovich/shmqueue"
	"github.com/spf13/cobra"
)

func newReadCmd() *cobra.Command {
	var global bool
	var timeout time.Duration
	var wait bool

	cmd := &cobra.Command{
		Use:   "read NAME",
		Short: "Open an existing channel as reader and remove one message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			scope := resolveScope(global)

			ch, err := shmqueue.OpenInbound(name, scope)
			if err != nil {
				return err
			}
			defer ch.Close()

			if wait {
				if st := ch.WaitHasMessages(timeout, nil); st != shmqueue.Completed {
					printState(shmqueue.ChannelState{}, st)
					os.Exit(1)
				}
			}

			var message []byte
			state, status := ch.Read(timeout, nil, func(window []byte) shmqueue.Status {
				message = append(message[:0], window...)
				return shmqueue.Completed
			})
			if status == shmqueue.Completed {
				fmt.Printf("message=%q\n", message)
			}
			printState(state, status)
			if status != shmqueue.Completed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "use global (host-wide) visibility scope instead of local")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up and report Timeout after this long (0 = wait indefinitely)")
	cmd.Flags().BoolVar(&wait, "wait", false, "block on WaitHasMessages before attempting the read")
	return cmd
}
