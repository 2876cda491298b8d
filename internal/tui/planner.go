package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"weekplan/internal/grid"
	"weekplan/internal/interaction"
	"weekplan/internal/plan"
)

const (
	plannerZone = "planner-grid"
	gutterWidth = 6
)

// plannerModel renders the weekly grid and owns the pointer gesture state.
// The event collection itself lives in App; committed gestures travel back
// up as intent messages.
type plannerModel struct {
	width  int
	height int
	scroll int

	geom grid.Geometry
	week plan.WeekType
	dark bool

	events     []plan.Event
	categories []plan.Category

	istate   interaction.State
	focusID  string
	focusDay int // DayOfWeek the keyboard cursor sits on
}

func newPlannerModel() plannerModel {
	return plannerModel{
		geom:     grid.Geometry{HourHeight: grid.DefaultHourHeight},
		week:     plan.WeekA,
		dark:     true,
		istate:   interaction.Idle{},
		focusDay: 1, // Monday
	}
}

func (p *plannerModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.clampScroll()
}

func (p *plannerModel) setData(events []plan.Event, cats []plan.Category) {
	p.events = events
	p.categories = cats
}

func (p *plannerModel) setWeek(w plan.WeekType) {
	p.week = w
	p.istate = interaction.Idle{}
}

func (p *plannerModel) setZoom(h float64) {
	minute := p.topMinute()
	p.geom.HourHeight = grid.ClampZoom(h)
	// Keep the same time at the top of the window across zoom changes.
	p.scroll = int(float64(minute) / 60 * p.geom.HourHeight)
	p.clampScroll()
}

// visible filters the collection down to the active week.
func (p plannerModel) visible() []plan.Event {
	var out []plan.Event
	for _, e := range p.events {
		if e.VisibleIn(p.week) {
			out = append(out, e)
		}
	}
	return out
}

func (p plannerModel) layout() grid.Layout {
	dayW := (p.width - gutterWidth) / 7
	if dayW < 6 {
		dayW = 6
	}
	// Keep the two sub-columns the same width.
	dayW = (dayW / 2) * 2
	return grid.Layout{
		Geom:        p.geom,
		GutterWidth: gutterWidth,
		DayWidth:    float64(dayW),
	}
}

func (p plannerModel) totalRows() int {
	return int(24 * p.geom.HourHeight)
}

func (p plannerModel) gridRows() int {
	rows := p.height - 1 // day header
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (p *plannerModel) clampScroll() {
	max := p.totalRows() - p.gridRows()
	if max < 0 {
		max = 0
	}
	if p.scroll > max {
		p.scroll = max
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func (p plannerModel) topMinute() int {
	return int(float64(p.scroll) / p.geom.HourHeight * 60)
}

// resizePreview is non-nil while a resize gesture is live.
func (p plannerModel) resizePreview() *grid.ResizePreview {
	if st, ok := p.istate.(interaction.Resizing); ok {
		prev := st.Preview()
		return &prev
	}
	return nil
}

// columnSegments returns the renderable segments for one column, ghost
// included, in paint order (later wins).
func (p plannerModel) columnSegments(col int) []grid.Segment {
	segs := grid.SegmentsForColumn(p.visible(), col, p.geom, p.resizePreview())
	if st, ok := p.istate.(interaction.Dragging); ok && st.HasTarget {
		day := plan.DayForColumn(st.Target.Column)
		ghosts := grid.GhostSegments(st.Event, day, st.Target.Minutes(), st.Target.User, col, p.geom)
		segs = append(segs, ghosts...)
	}
	return segs
}

// --- intents ---

type createSpanMsg struct {
	intent interaction.CreateSpan
}

type moveEventMsg struct {
	intent interaction.Move
}

type resizeEventMsg struct {
	intent interaction.Resize
}

func intentCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// --- update ---

func (p plannerModel) update(msg tea.Msg) (plannerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			p.scroll--
			p.clampScroll()
		case key.Matches(msg, keys.Down):
			p.scroll++
			p.clampScroll()
		case key.Matches(msg, keys.Left):
			col := plan.ColumnForDay(p.focusDay)
			if col > 0 {
				p.focusDay = plan.DayForColumn(col - 1)
			}
			p.focusID = ""
		case key.Matches(msg, keys.Right):
			col := plan.ColumnForDay(p.focusDay)
			if col < 6 {
				p.focusDay = plan.DayForColumn(col + 1)
			}
			p.focusID = ""
		case key.Matches(msg, keys.Next):
			p.cycleFocus()
		case key.Matches(msg, keys.Back):
			p.istate = interaction.Idle{}
			p.focusID = ""
		}
	}
	return p, nil
}

// cycleFocus walks the focused day's events in start order.
func (p *plannerModel) cycleFocus() {
	var day []plan.Event
	for _, e := range p.visible() {
		if e.DayOfWeek == p.focusDay {
			day = append(day, e)
		}
	}
	if len(day) == 0 {
		p.focusID = ""
		return
	}
	next := 0
	for i, e := range day {
		if e.ID == p.focusID {
			next = (i + 1) % len(day)
			break
		}
	}
	p.focusID = day[next].ID
	// Bring it into view.
	top := int(float64(day[next].StartMinutes()) / 60 * p.geom.HourHeight)
	if top < p.scroll || top >= p.scroll+p.gridRows() {
		p.scroll = top - p.gridRows()/2
		p.clampScroll()
	}
}

func (p plannerModel) focusedEvent() (plan.Event, bool) {
	for _, e := range p.events {
		if e.ID != "" && e.ID == p.focusID {
			return e, true
		}
	}
	return plan.Event{}, false
}

// --- mouse ---

func (p plannerModel) handleMouse(msg tea.MouseMsg) (plannerModel, tea.Cmd) {
	z := zone.Get(plannerZone)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.scroll -= 2
		p.clampScroll()
		return p, nil
	case tea.MouseButtonWheelDown:
		p.scroll += 2
		p.clampScroll()
		return p, nil
	}

	if !z.InBounds(msg) {
		// A release outside the grid still ends the gesture; drags cancel,
		// selections and resizes commit at their last known extent.
		if msg.Action == tea.MouseActionRelease {
			return p.finishGesture()
		}
		return p, nil
	}

	x, y := z.Pos(msg)
	gx := float64(x)
	gy := float64(y + p.scroll)
	l := p.layout()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return p, nil
		}
		var segs []grid.Segment
		for col := 0; col < 7; col++ {
			segs = append(segs, p.columnSegments(col)...)
		}
		if seg, ok := l.SegmentAt(segs, gx, gy); ok {
			p.focusID = seg.Event.ID
			p.focusDay = seg.Event.DayOfWeek
			if l.OnResizeHandle(seg, gx, gy) {
				if st, ok := interaction.StartResize(seg, gy); ok {
					p.istate = st
				}
				return p, nil
			}
			p.istate = interaction.StartDrag(seg.Event)
			return p, nil
		}
		if cell, ok := l.ResolveCell(gx, gy); ok {
			p.istate = interaction.StartSelection(cell)
		}
		return p, nil

	case tea.MouseActionMotion:
		switch st := p.istate.(type) {
		case interaction.RangeSelecting:
			if cell, ok := l.ResolveCell(gx, gy); ok {
				p.istate = interaction.ExtendSelection(st, cell)
			}
		case interaction.Dragging:
			if cell, ok := l.ResolveCell(gx, gy); ok {
				p.istate = interaction.DragOver(st, cell)
			}
		case interaction.Resizing:
			p.istate = interaction.ResizeTo(st, gy, p.geom)
		}
		return p, nil

	case tea.MouseActionRelease:
		return p.finishGesture()
	}

	return p, nil
}

// finishGesture commits whatever gesture is live and returns to idle.
func (p plannerModel) finishGesture() (plannerModel, tea.Cmd) {
	var cmd tea.Cmd
	switch st := p.istate.(type) {
	case interaction.RangeSelecting:
		cmd = intentCmd(createSpanMsg{intent: interaction.FinishSelection(st)})
	case interaction.Dragging:
		if m, ok, changed := interaction.FinishDrag(st); ok && changed {
			cmd = intentCmd(moveEventMsg{intent: m})
		}
	case interaction.Resizing:
		if r, changed := interaction.FinishResize(st); changed {
			cmd = intentCmd(resizeEventMsg{intent: r})
		}
	}
	p.istate = interaction.Idle{}
	return p, cmd
}

// --- view ---

func (p plannerModel) view() string {
	if p.width == 0 {
		return ""
	}
	l := p.layout()
	dayW := int(l.DayWidth)

	header := p.renderHeader(dayW)
	body := p.renderGrid(l, dayW)

	return lipgloss.JoinVertical(lipgloss.Left, header, zone.Mark(plannerZone, body))
}

func (p plannerModel) renderHeader(dayW int) string {
	cells := make([]string, 0, 8)
	weekTag := gutterStyle.Render(fmt.Sprintf("%*s", gutterWidth, string(p.week)+" "))
	cells = append(cells, weekTag)
	for col := 0; col < 7; col++ {
		name := plan.DayNames[col]
		if len(name) > dayW-1 {
			name = name[:dayW-1]
		}
		cells = append(cells, dayHeaderStyle.Width(dayW).Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (p plannerModel) renderGrid(l grid.Layout, dayW int) string {
	segsByCol := make([][]grid.Segment, 7)
	for col := 0; col < 7; col++ {
		segsByCol[col] = p.columnSegments(col)
	}

	rows := p.gridRows()
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		y := row + p.scroll
		if y >= p.totalRows() {
			break
		}
		var b strings.Builder
		b.WriteString(p.renderGutter(y))
		for col := 0; col < 7; col++ {
			b.WriteString(p.renderColumnRow(l, segsByCol[col], col, y, dayW))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// renderGutter labels rows that start a full hour.
func (p plannerModel) renderGutter(y int) string {
	m := int(float64(y)*60/p.geom.HourHeight + 0.5)
	if m%60 == 0 {
		return gutterStyle.Render(fmt.Sprintf("%5s ", plan.ToTime(m)))
	}
	return strings.Repeat(" ", gutterWidth)
}

// renderColumnRow paints one row of one day column: two half-width lanes,
// or a single full-width block when a combined segment covers the row.
func (p plannerModel) renderColumnRow(l grid.Layout, segs []grid.Segment, col, y, dayW int) string {
	halfW := dayW / 2
	yc := float64(y) + 0.5

	left, leftOK := topSegmentAt(segs, yc, false)
	right, rightOK := topSegmentAt(segs, yc, true)

	if leftOK && rightOK && left.Event.ID == right.Event.ID && left.Event.UserType == plan.Combined {
		return p.renderSegmentCell(left, y, dayW)
	}

	day := plan.DayForColumn(col)
	var b strings.Builder
	if leftOK {
		b.WriteString(p.renderSegmentCell(left, y, halfW))
	} else {
		b.WriteString(p.renderEmptyCell(col, day, plan.Husband, y, halfW))
	}
	if rightOK {
		b.WriteString(p.renderSegmentCell(right, y, halfW))
	} else {
		b.WriteString(p.renderEmptyCell(col, day, plan.Wife, y, halfW))
	}
	return b.String()
}

// topSegmentAt finds the topmost segment covering row center yc on one
// lane; wifeLane selects the right half.
func topSegmentAt(segs []grid.Segment, yc float64, wifeLane bool) (grid.Segment, bool) {
	var hit grid.Segment
	found := false
	for _, s := range segs {
		if yc < s.Top || yc >= s.Top+s.Height {
			continue
		}
		switch s.Event.UserType {
		case plan.Combined:
		case plan.Wife:
			if !wifeLane {
				continue
			}
		default:
			if wifeLane {
				continue
			}
		}
		hit = s
		found = true
	}
	return hit, found
}

func (p plannerModel) renderSegmentCell(s grid.Segment, y, w int) string {
	ghost := s.Event.ID != "" && p.isGhostOf(s.Event.ID)
	style := eventStyle(plan.CategoryColor(p.categories, s.Event.CategoryID, s.Event.UserType, p.dark))
	if ghost {
		style = ghostStyle
	} else if s.Event.ID == p.focusID {
		style = style.Inherit(focusedEventStyle)
	}

	text := strings.Repeat(" ", w)
	if y == int(s.Top) {
		label := s.Event.Title
		if s.Continuation {
			label = "↪ " + label
		}
		text = padTo(" "+label, w)
	} else if y == int(s.Top+s.Height)-1 && s.Height >= 2 {
		text = padTo(" "+s.DisplayStart()+"–"+s.DisplayEnd(), w)
	}
	return style.Render(text)
}

// isGhostOf reports whether id belongs to the event currently being
// dragged, whose real segments should render as the ghost of its origin.
func (p plannerModel) isGhostOf(id string) bool {
	st, ok := p.istate.(interaction.Dragging)
	return ok && st.Event.ID == id && st.HasTarget
}

func (p plannerModel) renderEmptyCell(col, day int, user plan.UserType, y, w int) string {
	if st, ok := p.istate.(interaction.RangeSelecting); ok {
		q := int((float64(y) + 0.5) / p.geom.QuarterHeight())
		cell := grid.Cell{Column: col, User: user, Hour: q / 4, Minute: (q % 4) * plan.SlotMinutes}
		if st.Contains(cell) {
			return selectionStyle.Render(strings.Repeat(" ", w))
		}
	}

	m := int(float64(y)*60/p.geom.HourHeight + 0.5)
	if m%60 == 0 {
		return gridLineStyle.Render(strings.Repeat("╌", w))
	}
	fill := strings.Repeat(" ", w-1) + "│"
	if user == plan.Husband {
		fill = strings.Repeat(" ", w)
	}
	return gridLineStyle.Render(fill)
}

func padTo(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
