package main

import (
	"github.com/markrussinovich/shmqueue"
	"github.com/spf13/cobra"
)

func newStateCmd() *cobra.Command {
	var global bool
	var direction string

	cmd := &cobra.Command{
		Use:   "state NAME",
		Short: "Open an existing channel and print its current state",
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

			state, status := ch.State(0, nil)
			printState(state, status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "use global (host-wide) visibility scope instead of local")
	cmd.Flags().StringVar(&direction, "direction", "writer", "which side this session registers as: writer or reader")
	return cmd
}
