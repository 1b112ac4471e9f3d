package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
)

// writeTimerLog prints one line per timer, longest first, in the format the
// recorder uses for its own console log.
func writeTimerLog(w io.Writer, timers []Timer) error {
	sorted := make([]Timer, len(timers))
	copy(sorted, timers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DurationNs > sorted[j].DurationNs
	})

	for _, timer := range sorted {
		micros := int64(timer.DurationNs / 1000)
		if _, err := fmt.Fprintf(w, "[Timer log] %s (%s mcs.)\n", timer.Name, humanize.Comma(micros)); err != nil {
			return err
		}
	}
	return nil
}
