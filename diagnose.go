package shmqueue

import (
	"fmt"
	"time"
)

// DiagnoseStalledPair checks whether a channel's writer-side and
// reader-side sessions look deadlocked against each other — the writer
// blocked on OutOfSpace while the reader never drains — and returns a
// human-readable diagnostic.
func DiagnoseStalledPair(writer, reader *Channel) (bool, string) {
	wState, wStatus := writer.State(time.Millisecond, nil)
	rState, rStatus := reader.State(time.Millisecond, nil)

	usedPercent := 0.0
	if wState.Capacity > 0 {
		usedPercent = float64(wState.TotalSpace) / float64(wState.Capacity) * 100
	}

	stalled := usedPercent >= 95.0 && wState.ActiveNodes == rState.ActiveNodes && wState.ActiveNodes > 0

	diagnostic := "Channel State:\n"
	if stalled {
		diagnostic = "STALLED PAIR DETECTED:\n"
	}
	diagnostic += fmt.Sprintf("writer: name=%s capacity=%d total_space=%d active_nodes=%d used=%.1f%% last_status=%s\n",
		writer.Name(), wState.Capacity, wState.TotalSpace, wState.ActiveNodes, usedPercent, wStatus)
	diagnostic += fmt.Sprintf("reader: name=%s capacity=%d total_space=%d active_nodes=%d last_status=%s\n",
		reader.Name(), rState.Capacity, rState.TotalSpace, rState.ActiveNodes, rStatus)

	if stalled {
		diagnostic += "The region has filled to its high-water mark and the reader has not drained any " +
			"messages since. Check that the reader session is actually calling Read rather than blocked " +
			"elsewhere, and that its WaitHasMessages loop is running.\n"
	}

	return stalled, diagnostic
}
