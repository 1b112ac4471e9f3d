package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// cellPixels is how many chart pixels one terminal column stands for.
const cellPixels = 8

var (
	colorBlue   = lipgloss.Color("#3182BD")
	colorLight  = lipgloss.Color("#6BAED6")
	colorOrange = lipgloss.Color("#FD8D3C")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")
	colorRed    = lipgloss.Color("#FF5555")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	errStyle      = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	evenStyle     = lipgloss.NewStyle().Background(colorBlue).Foreground(colorWhite)
	oddStyle      = lipgloss.NewStyle().Background(colorLight).Foreground(colorWhite)
	selectedStyle = lipgloss.NewStyle().Background(colorOrange).Foreground(colorWhite).Bold(true)
)

type inspectKeys struct {
	Prev    key.Binding
	Next    key.Binding
	Up      key.Binding
	Down    key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Left    key.Binding
	Right   key.Binding
	Clear   key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultInspectKeys() inspectKeys {
	return inspectKeys{
		Prev:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Next:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "row up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "row down")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Left:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "scroll left")),
		Right:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "scroll right")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k inspectKeys) help() string {
	bindings := []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.ZoomIn, k.ZoomOut, k.Left, k.Right, k.Clear, k.Reload, k.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// reloadMsg is sent after the trace file has been read again.
type reloadMsg struct {
	err error
}

// inspectModel is the bubbletea model of the terminal inspector. The cursor
// plays the role of the mouse pointer: the selected moment is the one whose
// name and duration are shown.
type inspectModel struct {
	viewer *viewer
	path   string
	config Config
	keys   inspectKeys

	layout *Layout
	byRow  [][]int // row -> moment ids ordered by start

	cursor    int     // selected moment id, -1 for none
	scale     float64 // zoom exponent, same meaning as the HTML slider
	offset    int     // first visible column
	rowOffset int     // first visible row
	width     int
	height    int
	status    string
}

func newInspectModel(v *viewer, path string, config Config) inspectModel {
	m := inspectModel{
		viewer: v,
		path:   path,
		config: config,
		keys:   defaultInspectKeys(),
		cursor: -1,
		scale:  config.Zoom.Value,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// refresh pulls the current layout from the viewer.
func (m *inspectModel) refresh() {
	layout, _, err := m.viewer.Snapshot()
	m.status = ""
	if err != nil {
		m.status = err.Error()
	}
	if layout == m.layout {
		return
	}
	m.layout = layout
	m.byRow = groupByRow(layout)
	if m.cursor >= len(layout.Moments) {
		m.cursor = -1
	}
	if m.rowOffset > layout.Rows-m.viewRows() {
		m.rowOffset = layout.Rows - m.viewRows()
	}
	if m.rowOffset < 0 {
		m.rowOffset = 0
	}
}

// groupByRow lists moment ids per row, ordered by left edge.
func groupByRow(layout *Layout) [][]int {
	byRow := make([][]int, layout.Rows)
	for _, moment := range layout.Moments {
		byRow[moment.Row] = append(byRow[moment.Row], moment.ID)
	}
	for _, ids := range byRow {
		sort.SliceStable(ids, func(i, j int) bool {
			return layout.Moments[ids[i]].LeftPercent < layout.Moments[ids[j]].LeftPercent
		})
	}
	return byRow
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) reload() tea.Cmd {
	v, path := m.viewer, m.path
	return func() tea.Msg {
		return reloadMsg{err: v.LoadFile(path)}
	}
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.follow()
		return m, nil

	case reloadMsg:
		m.refresh()
		m.follow()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reload):
			if m.path == "" {
				return m, nil
			}
			return m, m.reload()
		case key.Matches(msg, m.keys.Clear):
			m.cursor = -1
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
		case key.Matches(msg, m.keys.Next):
			m.step(1)
		case key.Matches(msg, m.keys.Up):
			m.changeRow(-1)
		case key.Matches(msg, m.keys.Down):
			m.changeRow(1)
		case key.Matches(msg, m.keys.ZoomIn):
			m.zoom(-m.config.Zoom.Step * 10)
		case key.Matches(msg, m.keys.ZoomOut):
			m.zoom(m.config.Zoom.Step * 10)
		case key.Matches(msg, m.keys.Left):
			m.offset -= m.viewWidth() / 4
			if m.offset < 0 {
				m.offset = 0
			}
			return m, nil
		case key.Matches(msg, m.keys.Right):
			if maxOffset := m.maxOffset(); m.offset < maxOffset {
				m.offset += m.viewWidth() / 4
				if m.offset > maxOffset {
					m.offset = maxOffset
				}
			}
			return m, nil
		}
		m.follow()
	}
	return m, nil
}

// step moves the cursor along its row.
func (m *inspectModel) step(delta int) {
	if m.cursor < 0 {
		m.selectFirst()
		return
	}
	ids := m.byRow[m.layout.Moments[m.cursor].Row]
	for i, id := range ids {
		if id == m.cursor {
			if next := i + delta; next >= 0 && next < len(ids) {
				m.cursor = ids[next]
			}
			return
		}
	}
}

// changeRow moves the cursor to the moment on the adjacent row whose left
// edge is closest to the current one.
func (m *inspectModel) changeRow(delta int) {
	if m.cursor < 0 {
		m.selectFirst()
		return
	}
	current := m.layout.Moments[m.cursor]
	row := current.Row + delta
	if row < 0 || row >= len(m.byRow) {
		return
	}
	best, bestDist := -1, math.Inf(1)
	for _, id := range m.byRow[row] {
		if d := math.Abs(m.layout.Moments[id].LeftPercent - current.LeftPercent); d < bestDist {
			best, bestDist = id, d
		}
	}
	if best >= 0 {
		m.cursor = best
	}
}

func (m *inspectModel) selectFirst() {
	if len(m.byRow) > 0 && len(m.byRow[0]) > 0 {
		m.cursor = m.byRow[0][0]
	}
}

func (m *inspectModel) zoom(delta float64) {
	m.scale += delta
	if m.scale < m.config.Zoom.Min {
		m.scale = m.config.Zoom.Min
	}
	if m.scale > m.config.Zoom.Max {
		m.scale = m.config.Zoom.Max
	}
}

// columns is the full chart width in terminal columns at the current zoom.
func (m inspectModel) columns() int {
	cols := int(math.Round(zoomWidth(m.scale) / cellPixels))
	if cols < 1 {
		cols = 1
	}
	return cols
}

// extent is the number of columns up to the right edge of the chart or of
// the rightmost moment, whichever is further. Traces often run past 100%.
func (m inspectModel) extent() int {
	extent := m.columns()
	for _, moment := range m.layout.Moments {
		if _, end := m.span(moment); end+1 > extent {
			extent = end + 1
		}
	}
	return extent
}

func (m inspectModel) maxOffset() int {
	return m.extent() - m.viewWidth()
}

func (m inspectModel) viewWidth() int {
	if m.width < 10 {
		return 10
	}
	return m.width
}

// viewRows is how many chart rows fit between the header and the footer.
func (m inspectModel) viewRows() int {
	rows := m.height - 7
	if rows < 1 {
		rows = 1
	}
	return rows
}

// follow scrolls so that the selected moment is visible.
func (m *inspectModel) follow() {
	if m.cursor >= 0 {
		moment := m.layout.Moments[m.cursor]
		start, _ := m.span(moment)
		if start < m.offset || start >= m.offset+m.viewWidth() {
			m.offset = start - m.viewWidth()/4
		}
		if moment.Row < m.rowOffset {
			m.rowOffset = moment.Row
		}
		if moment.Row >= m.rowOffset+m.viewRows() {
			m.rowOffset = moment.Row - m.viewRows() + 1
		}
	}
	if maxOffset := m.maxOffset(); m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// span returns the first and last column covered by a moment.
func (m inspectModel) span(moment Moment) (int, int) {
	cols := float64(m.columns())
	start := int(math.Floor(moment.LeftPercent / 100 * cols))
	end := int(math.Ceil((moment.LeftPercent+moment.WidthPercent)/100*cols)) - 1
	if end < start {
		end = start
	}
	return start, end
}

func (m inspectModel) View() string {
	var sb strings.Builder

	source := m.path
	if source == "" {
		source = "(no trace)"
	}
	sb.WriteString(titleStyle.Render("TIMERS"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %d timers  %d rows  width %spx",
		source, len(m.layout.Moments), m.layout.Rows, humanize.Commaf(math.Round(zoomWidth(m.scale))))))
	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(errStyle.Render("Error: " + m.status))
	}
	sb.WriteString("\n")

	last := m.rowOffset + m.viewRows()
	if last > m.layout.Rows {
		last = m.layout.Rows
	}
	if last < m.rowOffset {
		last = m.rowOffset
	}
	for row := m.rowOffset; row < last; row++ {
		sb.WriteString(m.renderRow(row))
		sb.WriteString("\n")
	}
	for row := last - m.rowOffset; row < m.viewRows(); row++ {
		sb.WriteString("\n")
	}

	name, duration := "Name:", "Duration:"
	if detail, ok := m.layout.Lookup(m.cursor); ok {
		name = "Name: " + detail.Name
		duration = fmt.Sprintf("Duration: %s ns", humanize.Commaf(detail.DurationNs))
	}
	sb.WriteString(name + "\n")
	sb.WriteString(duration + "\n")
	sb.WriteString(dimStyle.Render(m.keys.help()))
	return sb.String()
}

// renderRow draws the visible part of one row. Consecutive columns owned by
// the same moment are rendered as one styled run carrying the moment label.
func (m inspectModel) renderRow(row int) string {
	width := m.viewWidth()
	cells := make([]int, width)
	for i := range cells {
		cells[i] = -1
	}
	for _, id := range m.byRow[row] {
		start, end := m.span(m.layout.Moments[id])
		for c := max(start, m.offset); c <= min(end, m.offset+width-1); c++ {
			cells[c-m.offset] = id
		}
	}

	var sb strings.Builder
	for i := 0; i < width; {
		j := i
		for j < width && cells[j] == cells[i] {
			j++
		}
		run := j - i
		id := cells[i]
		if id < 0 {
			sb.WriteString(strings.Repeat(" ", run))
		} else {
			style := evenStyle
			if row%2 == 1 {
				style = oddStyle
			}
			if id == m.cursor {
				style = selectedStyle
			}
			sb.WriteString(style.Render(fitLabel(m.layout.Moments[id].Label, run)))
		}
		i = j
	}
	return sb.String()
}

// fitLabel pads or truncates label to exactly width runes.
func fitLabel(label string, width int) string {
	runes := []rune(label)
	if len(runes) > width {
		return string(runes[:width])
	}
	return label + strings.Repeat(" ", width-len(runes))
}

// runInspector starts the full-screen terminal inspector.
func runInspector(v *viewer, path string, config Config) error {
	program := tea.NewProgram(newInspectModel(v, path, config), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
