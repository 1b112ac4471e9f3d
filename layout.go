package main

import "math"

// Moment is the drawable box for one timer.
type Moment struct {
	ID           int     `json:"id"`
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
	TopPixels    int     `json:"topPixels"`
	Row          int     `json:"row"`
	Label        string  `json:"label"`
}

// Detail is what the hover inspector shows for a moment.
type Detail struct {
	Name       string  `json:"name"`
	DurationNs float64 `json:"durationNs"`
}

// Layout is a fully placed chart. Moment IDs index Details and are the
// positions of the timers after sorting by duration.
type Layout struct {
	Moments   []Moment       `json:"moments"`
	Details   map[int]Detail `json:"details"`
	Rows      int            `json:"rows"`
	RowHeight int            `json:"rowHeight"`
}

// renderLayout sorts a copy of timers, assigns rows and maps every timer to
// chart coordinates. It does not modify timers.
func renderLayout(timers []Timer, config Config) *Layout {
	sorted := make([]Timer, len(timers))
	copy(sorted, timers)
	sortByDuration(sorted)

	rows := assignRows(sorted)

	layout := &Layout{
		Moments:   make([]Moment, len(sorted)),
		Details:   make(map[int]Detail, len(sorted)),
		RowHeight: config.Layout.RowHeight,
	}

	for i, timer := range sorted {
		left, width := mapSpan(timer, config.Layout.Divisor)
		layout.Moments[i] = Moment{
			ID:           i,
			LeftPercent:  left,
			WidthPercent: width,
			TopPixels:    rows[i] * config.Layout.RowHeight,
			Row:          rows[i],
			Label:        timer.Name,
		}
		layout.Details[i] = Detail{Name: timer.Name, DurationNs: timer.DurationNs}
		if rows[i]+1 > layout.Rows {
			layout.Rows = rows[i] + 1
		}
	}

	debugPrint("Laid out %d moments on %d rows", len(layout.Moments), layout.Rows)
	return layout
}

// mapSpan converts a timer's normalized range into a left offset and a width,
// both in percent of the chart width.
func mapSpan(timer Timer, divisor float64) (left, width float64) {
	start, end := timer.Span()
	start /= divisor
	end /= divisor
	return start, end - start
}

// zoomWidth maps a zoom slider value to the chart width in pixels. The slider
// is an exponent: -3 is 1000px, -4 is 10000px.
func zoomWidth(value float64) float64 {
	return math.Pow(10, -value)
}

// Lookup returns the inspector details for a moment id.
func (l *Layout) Lookup(id int) (Detail, bool) {
	detail, ok := l.Details[id]
	return detail, ok
}

// Height returns the pixel height needed to show every row.
func (l *Layout) Height() int {
	return l.Rows * l.RowHeight
}
