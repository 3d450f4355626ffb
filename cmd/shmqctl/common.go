package main

import (
	"fmt"

	"github.com/markrussinovich/shmqueue"
	"github.com/spf13/pflag"
)

func resolveScope(global bool) shmqueue.Scope {
	if global {
		return shmqueue.Global
	}
	return shmqueue.Local
}

func printState(state shmqueue.ChannelState, status shmqueue.Status) {
	fmt.Printf("status=%s capacity=%d total_space=%d active_nodes=%d\n",
		status, state.Capacity, state.TotalSpace, state.ActiveNodes)
}

// directionValue is a pflag.Value restricting --direction to "writer" or
// "reader" at flag-parse time instead of after RunE has already started.
type directionValue string

var _ pflag.Value = (*directionValue)(nil)

func newDirectionValue(def string, p *directionValue) *directionValue {
	*p = directionValue(def)
	return p
}

func (d *directionValue) String() string { return string(*d) }

func (d *directionValue) Set(s string) error {
	switch s {
	case "writer", "reader":
		*d = directionValue(s)
		return nil
	default:
		return fmt.Errorf("must be \"writer\" or \"reader\", got %q", s)
	}
}

func (d *directionValue) Type() string { return "direction" }
