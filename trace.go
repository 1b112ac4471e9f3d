package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// errNoTimers is returned when a trace document has no "timers" array.
var errNoTimers = errors.New(`trace has no "timers" array`)

// Timer is one named interval recorded by the instrumented program.
// StartTime and EndTime share a unit (nanoseconds since the recorder started)
// and are not guaranteed to be ordered; use Span for the normalized range.
type Timer struct {
	Name       string  `json:"name"`
	StartTime  float64 `json:"startTime"`
	EndTime    float64 `json:"endTime"`
	DurationNs float64 `json:"durationNs"`
}

// Span returns the timer's range with start <= end.
func (t Timer) Span() (start, end float64) {
	return math.Min(t.StartTime, t.EndTime), math.Max(t.StartTime, t.EndTime)
}

// Trace is a decoded timers document.
type Trace struct {
	Timers []Timer
}

// traceDocument mirrors the file layout. Timers is a pointer so that a
// missing key can be told apart from an empty list.
type traceDocument struct {
	Timers *[]Timer `json:"timers"`
}

// parseTrace decodes a timers document from r.
func parseTrace(r io.Reader) (*Trace, error) {
	var doc traceDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("error parsing trace: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing trace: unexpected data after the timers document")
	}
	if doc.Timers == nil {
		return nil, errNoTimers
	}
	return &Trace{Timers: *doc.Timers}, nil
}

// loadTrace reads and decodes the trace file at path.
func loadTrace(path string) (*Trace, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading trace file: %w", err)
	}
	defer file.Close()

	trace, err := parseTrace(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	debugPrint("Parsed %d timers from %s", len(trace.Timers), path)
	return trace, nil
}

// Heavy returns the timers whose reported duration is at least minNs, in
// their original order. A non-positive minNs keeps everything.
func (t *Trace) Heavy(minNs float64) []Timer {
	if minNs <= 0 {
		return t.Timers
	}
	heavy := make([]Timer, 0, len(t.Timers))
	for _, timer := range t.Timers {
		if timer.DurationNs >= minNs {
			heavy = append(heavy, timer)
		}
	}
	debugPrint("Kept %d of %d timers at or above %v ns", len(heavy), len(t.Timers), minNs)
	return heavy
}
