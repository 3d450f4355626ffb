package main

import (
	"fmt"
	"time"

	"github.com/markrussinovich/shmqueue"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var global bool
	var direction string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch NAME",
		Short: "Open an existing channel and print its message-state signal transitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			scope := resolveScope(global)

			var (
				ch  *shmqueue.Channel
				err error
			)
			if direction == "reader" {
				ch, err = shmqueue.OpenInbound(name, scope)
			} else {
				ch, err = shmqueue.OpenOutbound(name, scope)
			}
			if err != nil {
				return err
			}
			defer ch.Close()

			for {
				st := ch.WaitHasMessages(timeout, nil)
				if st != shmqueue.Completed {
					fmt.Printf("wait-has-messages: %s\n", st)
					return nil
				}
				state, _ := ch.State(0, nil)
				fmt.Printf("has messages: active_nodes=%d total_space=%d\n", state.ActiveNodes, state.TotalSpace)

				st = ch.WaitEmpty(timeout, nil)
				if st != shmqueue.Completed {
					fmt.Printf("wait-empty: %s\n", st)
					return nil
				}
				fmt.Println("drained")
			}
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "use global (host-wide) visibility scope instead of local")
	cmd.Flags().StringVar(&direction, "direction", "reader", "which side this session registers as: writer or reader")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up and report Timeout after this long (0 = wait indefinitely)")
	return cmd
}
