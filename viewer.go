package main

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// viewer owns the currently displayed chart. A failed load leaves the last
// good layout in place and records the error for display.
type viewer struct {
	config Config

	mu      sync.RWMutex
	layout  *Layout
	source  string
	lastErr error
}

func newViewer(config Config) *viewer {
	return &viewer{
		config: config,
		layout: renderLayout(nil, config),
	}
}

// Load parses a trace from r and replaces the current layout with it.
func (v *viewer) Load(source string, r io.Reader) error {
	trace, err := parseTrace(r)
	if err != nil {
		err = fmt.Errorf("%s: %w", source, err)
		v.mu.Lock()
		v.lastErr = err
		v.mu.Unlock()
		return err
	}

	layout := renderLayout(trace.Heavy(v.config.Trace.MinDurationNs), v.config)

	v.mu.Lock()
	v.layout = layout
	v.source = source
	v.lastErr = nil
	v.mu.Unlock()
	return nil
}

// LoadFile opens path and loads it.
func (v *viewer) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("error reading trace file: %w", err)
		v.mu.Lock()
		v.lastErr = err
		v.mu.Unlock()
		return err
	}
	defer file.Close()
	return v.Load(path, file)
}

// Snapshot returns the current layout, its source and the last load error.
// The layout must not be modified by the caller.
func (v *viewer) Snapshot() (*Layout, string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.layout, v.source, v.lastErr
}
