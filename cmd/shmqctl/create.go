package main

import (
	"fmt"

	"github.com/markrussinovich/shmqueue"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	var global bool
	var capacity int64
	var direction directionValue

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new channel and immediately close this session's registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			scope := resolveScope(global)

			var (
				ch  *shmqueue.Channel
				err error
			)
			switch direction {
			case "writer":
				ch, err = shmqueue.CreateOutbound(name, capacity, scope)
			case "reader":
				ch, err = shmqueue.CreateInbound(name, capacity, scope)
			}
			if err != nil {
				return err
			}
			defer ch.Close()

			fmt.Printf("created channel %q scope=%s direction=%s capacity=%d\n", name, scope, direction, capacity)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "use global (host-wide) visibility scope instead of local")
	cmd.Flags().Int64Var(&capacity, "capacity", shmqueue.DefaultCapacity, "region capacity in bytes")
	cmd.Flags().Var(newDirectionValue("writer", &direction), "direction", "which side this session registers as: writer or reader")
	return cmd
}
