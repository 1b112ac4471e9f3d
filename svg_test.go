package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSVG(t *testing.T) {
	config := getDefaultConfig()
	layout := renderLayout([]Timer{
		timer("frame", 25000, 75000, 50000),
		timer("tick", 90000, 90000, 0),
		timer("a&b", 0, 100000, 100000),
	}, config)

	var buf bytes.Buffer
	writeSVG(&buf, layout, config)
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document:\n%s", out)
	}
	// 1000px chart plus a 10px margin on each side, two 20px rows.
	if !strings.Contains(out, `width="1020"`) || !strings.Contains(out, `height="60"`) {
		t.Errorf("unexpected canvas size:\n%s", out)
	}
	if got := strings.Count(out, "<rect"); got != 4 {
		t.Errorf("got %d rects, want background + 3 moments", got)
	}
	if got := strings.Count(out, `class="moment"`); got != 3 {
		t.Errorf("got %d moment groups, want 3", got)
	}

	// tick (id 0) is zero-width but still drawn one pixel wide.
	if !strings.Contains(out, `x="910" y="10" width="1" height="18"`) {
		t.Errorf("zero-width moment not drawn at x=910:\n%s", out)
	}
	// frame (id 1) spans 25%..75% on row 0.
	if !strings.Contains(out, `x="260" y="10" width="500" height="18"`) {
		t.Errorf("frame moment misplaced:\n%s", out)
	}
	// a&b (id 2) covers everything and sits on row 1.
	if !strings.Contains(out, `x="10" y="30" width="1000" height="18"`) {
		t.Errorf("outer moment misplaced:\n%s", out)
	}

	if !strings.Contains(out, "<title>Name: frame") || !strings.Contains(out, "Duration: 50,000 ns") {
		t.Error("moment tooltip missing")
	}
	if strings.Contains(out, "a&b") || !strings.Contains(out, "a&amp;b") {
		t.Error("label was not escaped")
	}
}

func TestWriteSVG_Empty(t *testing.T) {
	config := getDefaultConfig()
	var buf bytes.Buffer
	writeSVG(&buf, renderLayout(nil, config), config)
	out := buf.String()

	if !strings.Contains(out, `height="20"`) {
		t.Errorf("empty chart should only have margins:\n%s", out)
	}
	if strings.Contains(out, `class="moment"`) {
		t.Error("empty layout drew moments")
	}
}

func TestEstimateTextWidth(t *testing.T) {
	if got := estimateTextWidth("abcde", 10); got != 30 {
		t.Errorf("estimateTextWidth = %d, want 30", got)
	}
	if got := estimateTextWidth("日本", 10); got != 12 {
		t.Errorf("estimateTextWidth counts bytes instead of runes: %d", got)
	}
}
