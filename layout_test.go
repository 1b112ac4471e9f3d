package main

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestRenderLayout_MapsCoordinates(t *testing.T) {
	config := getDefaultConfig()
	timers := []Timer{
		timer("outer", 0, 100000, 100000),
		timer("left", 25000, 75000, 50000),
		timer("reversed", 80000, 90000, 10000),
	}

	layout := renderLayout(timers, config)

	if len(layout.Moments) != 3 {
		t.Fatalf("got %d moments, want 3", len(layout.Moments))
	}
	if layout.Rows != 2 {
		t.Errorf("Rows = %d, want 2", layout.Rows)
	}

	// Sorted by duration: reversed, left, outer.
	want := []Moment{
		{ID: 0, LeftPercent: 80, WidthPercent: 10, TopPixels: 0, Row: 0, Label: "reversed"},
		{ID: 1, LeftPercent: 25, WidthPercent: 50, TopPixels: 0, Row: 0, Label: "left"},
		{ID: 2, LeftPercent: 0, WidthPercent: 100, TopPixels: 20, Row: 1, Label: "outer"},
	}
	if !reflect.DeepEqual(layout.Moments, want) {
		t.Errorf("Moments = %+v\nwant %+v", layout.Moments, want)
	}

	detail, ok := layout.Lookup(2)
	if !ok || detail.Name != "outer" || detail.DurationNs != 100000 {
		t.Errorf("Lookup(2) = %+v, %v", detail, ok)
	}
	if _, ok := layout.Lookup(3); ok {
		t.Error("Lookup(3) found a detail for a missing moment")
	}
	if got := layout.Height(); got != 40 {
		t.Errorf("Height() = %d, want 40", got)
	}
}

func TestRenderLayout_UsesConfiguredScale(t *testing.T) {
	config := getDefaultConfig()
	config.Layout.Divisor = 10
	config.Layout.RowHeight = 30

	layout := renderLayout([]Timer{
		timer("a", 100, 300, 200),
		timer("b", 200, 400, 200),
	}, config)

	if layout.Moments[1].LeftPercent != 20 || layout.Moments[1].WidthPercent != 20 {
		t.Errorf("moment 1 = %+v, want left 20 width 20", layout.Moments[1])
	}
	if layout.Moments[1].TopPixels != 30 {
		t.Errorf("moment 1 top = %d, want 30", layout.Moments[1].TopPixels)
	}
}

func TestRenderLayout_DoesNotModifyInput(t *testing.T) {
	timers := []Timer{
		timer("long", 0, 10, 10),
		timer("short", 0, 1, 1),
	}
	renderLayout(timers, getDefaultConfig())
	if timers[0].Name != "long" || timers[1].Name != "short" {
		t.Errorf("input reordered: %v", timers)
	}
}

func TestRenderLayout_Idempotent(t *testing.T) {
	timers := randomTimers(rand.New(rand.NewSource(3)), 100)
	config := getDefaultConfig()

	first := renderLayout(timers, config)
	second := renderLayout(timers, config)
	if !reflect.DeepEqual(first, second) {
		t.Error("two layouts of the same timers differ")
	}
}

func TestRenderLayout_Empty(t *testing.T) {
	layout := renderLayout(nil, getDefaultConfig())
	if len(layout.Moments) != 0 || layout.Rows != 0 || layout.Height() != 0 {
		t.Errorf("empty layout = %+v", layout)
	}
}

func TestZoomWidth(t *testing.T) {
	tests := []struct {
		value float64
		want  float64
	}{
		{-3, 1000},
		{-2, 100},
		{0, 1},
		{1, 0.1},
	}
	for _, tt := range tests {
		if got := zoomWidth(tt.value); got != tt.want {
			t.Errorf("zoomWidth(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
