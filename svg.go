package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/dustin/go-humanize"
)

// writeSVG draws the layout as a static SVG image. The canvas is as wide as
// the zoom slider's initial value makes the HTML chart; each moment carries a
// <title> so viewers show the inspector text as a tooltip.
func writeSVG(w io.Writer, layout *Layout, config Config) {
	margin := config.Layout.Margin
	chartWidth := int(math.Round(zoomWidth(config.Zoom.Value)))
	width := chartWidth + 2*margin
	height := layout.Height() + 2*margin

	momentHeight := config.Layout.MomentHeight
	if momentHeight <= 0 || momentHeight > config.Layout.RowHeight {
		momentHeight = config.Layout.RowHeight
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+config.Colors.Background)

	labelStyle := fmt.Sprintf("font-family:%s;font-size:%dpx;fill:%s",
		strings.ReplaceAll(config.Font.Family, `"`, "'"), config.Font.Size, config.Colors.Text)

	for _, moment := range layout.Moments {
		x := margin + int(math.Round(moment.LeftPercent*float64(chartWidth)/100))
		y := margin + moment.TopPixels
		boxWidth := int(math.Round(moment.WidthPercent * float64(chartWidth) / 100))
		if boxWidth < 1 {
			boxWidth = 1
		}

		fill := config.Colors.Moment
		if moment.Row%2 == 1 {
			fill = config.Colors.MomentAlt
		}

		canvas.Group(`class="moment"`, fmt.Sprintf(`data-moment-id="%d"`, moment.ID))
		if detail, ok := layout.Lookup(moment.ID); ok {
			canvas.Title(fmt.Sprintf("Name: %s\nDuration: %s ns", detail.Name, humanize.Commaf(detail.DurationNs)))
		}
		canvas.Rect(x, y, boxWidth, momentHeight,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fill, config.Colors.Border))
		if estimateTextWidth(moment.Label, config.Font.Size) <= boxWidth-4 {
			canvas.Text(x+2, y+momentHeight-(momentHeight-config.Font.Size)/2-2, moment.Label, labelStyle)
		}
		canvas.Gend()
	}

	canvas.End()
	debugPrint("Drew %d moments on a %dx%d canvas", len(layout.Moments), width, height)
}

// estimateTextWidth estimates the width of text in pixels based on character count
func estimateTextWidth(text string, fontSize int) int {
	// Rough estimation: average character width is about 0.6 * font size
	avgCharWidth := float64(fontSize) * 0.6
	return int(float64(len([]rune(text))) * avgCharWidth)
}
