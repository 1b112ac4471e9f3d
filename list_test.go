package main

import (
	"bytes"
	"testing"
)

func TestWriteTimerLog(t *testing.T) {
	timers := []Timer{
		timer("short", 0, 1500, 1500),
		timer("long", 0, 2500000, 2500000),
		timer("tie", 0, 1500, 1500),
		timer("sub", 0, 999, 999),
	}

	var buf bytes.Buffer
	if err := writeTimerLog(&buf, timers); err != nil {
		t.Fatalf("writeTimerLog: %v", err)
	}

	want := "[Timer log] long (2,500 mcs.)\n" +
		"[Timer log] short (1 mcs.)\n" +
		"[Timer log] tie (1 mcs.)\n" +
		"[Timer log] sub (0 mcs.)\n"
	if got := buf.String(); got != want {
		t.Errorf("writeTimerLog =\n%s\nwant\n%s", got, want)
	}

	if timers[0].Name != "short" {
		t.Error("writeTimerLog reordered its input")
	}
}
