package main

import (
	"fmt"
	"os"

	"github.com/markrussinovich/shmqueue"
	"github.com/spf13/cobra"
)

// newProbeCmd exercises a fresh, throwaway channel with a ladder of
// write/read round-trips and then a fill-to-backpressure loop, printing
// the observed capacity behavior. It replaces the ad hoc capacity probe
// the original transport package used to ship as its own binary.
func newProbeCmd() *cobra.Command {
	var capacity int64

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Create a throwaway channel and report its effective capacity and backpressure point",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := fmt.Sprintf("shmqctl-probe-%d", os.Getpid())

			writer, err := shmqueue.CreateOutbound(name, capacity, shmqueue.Local)
			if err != nil {
				return err
			}
			defer writer.Close()

			reader, err := shmqueue.OpenInbound(name, shmqueue.Local)
			if err != nil {
				return err
			}
			defer reader.Close()

			fmt.Printf("=== capacity analysis ===\n")
			fmt.Printf("configured capacity: %d bytes\n", capacity)

			fmt.Printf("\n=== single write/read round trips ===\n")
			for _, size := range []int64{10, 20, 30, 50, 100, 500, 1000, 5000, 10000, capacity / 4, capacity / 2} {
				payload := make([]byte, size)
				_, status := writer.Write(size, 0, nil, func(window []byte) shmqueue.Status {
					copy(window, payload)
					return shmqueue.Completed
				})
				if status != shmqueue.Completed {
					fmt.Printf("size %d bytes: %s\n", size, status)
					continue
				}
				fmt.Printf("size %d bytes: OK\n", size)
				reader.Read(0, nil, func([]byte) shmqueue.Status { return shmqueue.Completed })
			}

			fmt.Printf("\n=== backpressure test ===\n")
			const chunk = 1000
			var written int64
			for i := 0; i < 1000; i++ {
				payload := make([]byte, chunk)
				_, status := writer.Write(chunk, 0, nil, func(window []byte) shmqueue.Status {
					copy(window, payload)
					return shmqueue.Completed
				})
				if status != shmqueue.Completed {
					fmt.Printf("stopped after %d bytes written (%d chunks): %s\n", written, i, status)
					break
				}
				written += chunk
			}
			state, _ := writer.State(0, nil)
			fmt.Printf("final state: active_nodes=%d total_space=%d capacity=%d\n", state.ActiveNodes, state.TotalSpace, state.Capacity)
			return nil
		},
	}

	cmd.Flags().Int64Var(&capacity, "capacity", 65536, "region capacity in bytes")
	return cmd
}
