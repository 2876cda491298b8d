package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"weekplan/internal/plan"
	"weekplan/internal/store"
)

// editorModel is the modal create/edit form for a single event.
type editorModel struct {
	store  *store.Store
	width  int
	height int

	active bool
	form   *huh.Form

	editingID string // empty when creating

	// Form field pointers (survive value copies)
	formTitle *string
	formDesc  *string
	formCat   *string
	formSide  *string
	formWeek  *string
	formDay   *string
	formStart *string
	formEnd   *string
}

func newEditorModel(s *store.Store) editorModel {
	title, desc, cat, side, week, day, start, end := "", "", "", "", "", "", "", ""
	return editorModel{
		store:     s,
		formTitle: &title,
		formDesc:  &desc,
		formCat:   &cat,
		formSide:  &side,
		formWeek:  &week,
		formDay:   &day,
		formStart: &start,
		formEnd:   &end,
	}
}

func (m *editorModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// open prepares the form for the given event. An empty ID means a new
// event; the caller pre-fills day, times and side from the gesture or
// cursor that triggered it.
func (m editorModel) open(e plan.Event, cats []plan.Category) (editorModel, tea.Cmd) {
	m.editingID = e.ID
	*m.formTitle = e.Title
	*m.formDesc = e.Description
	*m.formCat = e.CategoryID
	if *m.formCat == "" {
		*m.formCat = plan.DefaultCategoryID
	}
	*m.formSide = string(e.UserType)
	if *m.formSide == "" {
		*m.formSide = string(plan.Combined)
	}
	*m.formWeek = string(e.WeekType)
	if *m.formWeek == "" {
		*m.formWeek = string(plan.WeekBoth)
	}
	*m.formDay = strconv.Itoa(e.DayOfWeek)
	*m.formStart = e.StartTime
	*m.formEnd = displayEnd(e.EndTime)

	catOptions := make([]huh.Option[string], len(cats))
	for i, c := range cats {
		catOptions[i] = huh.NewOption(c.Name, c.ID)
	}
	sideOptions := []huh.Option[string]{
		huh.NewOption("Him", string(plan.Husband)),
		huh.NewOption("Her", string(plan.Wife)),
		huh.NewOption("Both", string(plan.Combined)),
	}
	weekOptions := []huh.Option[string]{
		huh.NewOption("Week A", string(plan.WeekA)),
		huh.NewOption("Week B", string(plan.WeekB)),
		huh.NewOption("Every week", string(plan.WeekBoth)),
	}
	dayOptions := make([]huh.Option[string], 7)
	for col := 0; col < 7; col++ {
		day := plan.DayForColumn(col)
		dayOptions[col] = huh.NewOption(plan.DayNames[col], strconv.Itoa(day))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewInput().Title("Description").Value(m.formDesc),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(m.formCat),
			huh.NewSelect[string]().Title("Side").Options(sideOptions...).Value(m.formSide),
			huh.NewSelect[string]().Title("Week").Options(weekOptions...).Value(m.formWeek),
			huh.NewSelect[string]().Title("Day").Options(dayOptions...).Value(m.formDay),
			huh.NewInput().Title("Start (HH:mm)").Value(m.formStart).Validate(validateTime),
			huh.NewInput().Title("End (HH:mm, 24:00 = midnight)").Value(m.formEnd).Validate(validateTime),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.active = true
	return m, m.form.Init()
}

func (m editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.active = false
			m.form = nil
			return m, intentCmd(editorDoneMsg{saved: false})
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.active = false
		if *m.formTitle == "" {
			return m, intentCmd(editorDoneMsg{saved: false})
		}
		return m, m.save()
	}
	return m, cmd
}

func (m editorModel) save() tea.Cmd {
	day, _ := strconv.Atoi(*m.formDay)
	e := plan.Event{
		ID:          m.editingID,
		Title:       *m.formTitle,
		Description: *m.formDesc,
		CategoryID:  *m.formCat,
		DayOfWeek:   day,
		StartTime:   *m.formStart,
		EndTime:     storedEnd(*m.formEnd),
		UserType:    plan.UserType(*m.formSide),
		WeekType:    plan.WeekType(*m.formWeek),
	}

	return func() tea.Msg {
		var err error
		if e.ID == "" {
			_, err = m.store.CreateEvent(e)
		} else {
			err = m.store.UpdateEvent(e)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save failed: %v", err), isError: true}
		}
		return editorDoneMsg{saved: true}
	}
}

func (m editorModel) view() string {
	title := titleStyle.Render("New Event")
	if m.editingID != "" {
		title = titleStyle.Render("Edit Event")
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
	return panelStyle.Width(m.width - 4).Render(content)
}

// validateTime accepts "HH:mm" between 00:00 and 24:00.
func validateTime(v string) error {
	if len(v) != 5 || v[2] != ':' {
		return fmt.Errorf("use HH:mm")
	}
	h, err := strconv.Atoi(v[:2])
	if err != nil {
		return fmt.Errorf("use HH:mm")
	}
	mnt, err := strconv.Atoi(v[3:])
	if err != nil {
		return fmt.Errorf("use HH:mm")
	}
	if h == 24 && mnt == 0 {
		return nil
	}
	if h < 0 || h > 23 || mnt < 0 || mnt > 59 {
		return fmt.Errorf("time out of range")
	}
	if mnt%plan.SlotMinutes != 0 {
		return fmt.Errorf("minutes must be a multiple of %d", plan.SlotMinutes)
	}
	return nil
}

// displayEnd shows a midnight end as "24:00" in the form.
func displayEnd(end string) string {
	if end == "00:00" {
		return "24:00"
	}
	return end
}

// storedEnd maps the "24:00" form value back to the stored "00:00".
func storedEnd(end string) string {
	if strings.TrimSpace(end) == "24:00" {
		return "00:00"
	}
	return end
}
