package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"

	"weekplan/internal/export"
	"weekplan/internal/grid"
	"weekplan/internal/interaction"
	"weekplan/internal/plan"
	"weekplan/internal/store"
)

// App is the root Bubble Tea model. It owns the live event collection:
// gestures mutate it immediately for instant feedback while the store
// write runs in the background, and a failed write triggers a refetch
// that rolls the collection back to persisted state.
type App struct {
	store  *store.Store
	log    *logrus.Logger
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	events     []plan.Event
	categories []plan.Category
	week       plan.WeekType
	zoom       float64
	dark       bool

	planner plannerModel
	stats   statsModel
	catview categoriesModel
	editor  editorModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, log *logrus.Logger, theme string) App {
	h := help.New()
	h.ShowAll = false

	dark := theme != "light"
	a := App{
		store:      s,
		log:        log,
		activeView: viewPlanner,
		week:       plan.WeekA,
		zoom:       grid.DefaultHourHeight,
		dark:       dark,
		planner:    newPlannerModel(),
		stats:      newStatsModel(),
		catview:    newCategoriesModel(s),
		editor:     newEditorModel(s),
		help:       h,
	}
	a.planner.dark = dark
	a.stats.dark = dark
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadCollection(), a.loadSettings())
}

func (a App) loadCollection() tea.Cmd {
	return func() tea.Msg {
		events, cats, err := a.store.ListAll()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Load failed: %v", err), isError: true}
		}
		return collectionMsg{events: events, categories: cats}
	}
}

func (a App) loadSettings() tea.Cmd {
	return func() tea.Msg {
		z, err := a.store.Zoom()
		if err != nil {
			z = grid.DefaultHourHeight
		}
		w, err := a.store.ActiveWeek()
		if err != nil {
			w = plan.WeekA
		}
		return settingsMsg{zoom: grid.ClampZoom(z), week: w}
	}
}

// pushData hands the current collection to every view.
func (a *App) pushData() {
	a.planner.setData(a.events, a.categories)
	a.stats.setData(a.events, a.categories)
	a.catview.setData(a.categories)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.planner.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.catview.setSize(a.width, contentHeight)
		a.editor.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.editor.active {
			var cmd tea.Cmd
			a.editor, cmd = a.editor.update(msg)
			return a, cmd
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.catview.formActive && a.activeView == viewCategories {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Week):
			return a.toggleWeek()
		case key.Matches(msg, keys.ZoomIn):
			return a.setZoom(a.zoom + 1)
		case key.Matches(msg, keys.ZoomOut):
			return a.setZoom(a.zoom - 1)
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewPlanner
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewStats
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewCategories
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			return a, nil
		case key.Matches(msg, keys.New):
			if a.activeView == viewPlanner {
				return a.openEditorFor(plan.Event{
					DayOfWeek: a.planner.focusDay,
					StartTime: "09:00",
					EndTime:   "10:00",
					UserType:  plan.Combined,
					WeekType:  plan.WeekBoth,
				})
			}
		case key.Matches(msg, keys.Edit):
			if a.activeView == viewPlanner {
				if e, ok := a.planner.focusedEvent(); ok {
					return a.openEditorFor(e)
				}
			}
		case key.Matches(msg, keys.Delete):
			if a.activeView == viewPlanner {
				return a.deleteFocused()
			}
		case key.Matches(msg, keys.Duplicate):
			if a.activeView == viewPlanner {
				return a.duplicateFocused()
			}
		}
		return a.updateActiveView(msg)

	case tea.MouseMsg:
		if a.activeView == viewPlanner && !a.editor.active && !a.exportPicking {
			var cmd tea.Cmd
			a.planner, cmd = a.planner.handleMouse(msg)
			return a, cmd
		}
		return a, nil

	case collectionMsg:
		a.events = msg.events
		a.categories = msg.categories
		a.pushData()
		return a, nil

	case settingsMsg:
		a.week = msg.week
		a.zoom = msg.zoom
		a.planner.setWeek(a.week)
		a.planner.setZoom(a.zoom)
		a.stats.setWeek(a.week)
		return a, nil

	case createSpanMsg:
		return a.applyCreate(msg.intent)

	case moveEventMsg:
		return a.applyMove(msg.intent)

	case resizeEventMsg:
		return a.applyResize(msg.intent)

	case eventSavedMsg:
		// Swap the optimistic placeholder for the persisted row.
		for i := range a.events {
			if a.events[i].ID == msg.tempID {
				a.events[i] = msg.saved
				break
			}
		}
		a.pushData()
		return a, nil

	case mutationDoneMsg:
		return a, nil

	case mutationErrMsg:
		a.log.WithError(msg.err).Error("mutation failed, refetching")
		a.status = errorStyle.Render(fmt.Sprintf("Save failed: %v", msg.err))
		return a, a.loadCollection()

	case categoriesChangedMsg:
		return a, a.loadCollection()

	case editorDoneMsg:
		if msg.saved {
			a.status = "Saved"
			return a, a.loadCollection()
		}
		return a, nil

	case statusMsg:
		if msg.isError {
			a.status = errorStyle.Render(msg.text)
		} else {
			a.status = msg.text
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.editor.active {
		a.editor, cmd = a.editor.update(msg)
		return a, cmd
	}
	switch a.activeView {
	case viewPlanner:
		a.planner, cmd = a.planner.update(msg)
	case viewCategories:
		a.catview, cmd = a.catview.update(msg)
	}
	return a, cmd
}

// --- settings ---

func (a App) toggleWeek() (tea.Model, tea.Cmd) {
	if a.week == plan.WeekA {
		a.week = plan.WeekB
	} else {
		a.week = plan.WeekA
	}
	a.planner.setWeek(a.week)
	a.stats.setWeek(a.week)
	a.status = "Week " + string(a.week)

	week := a.week
	return a, func() tea.Msg {
		if err := a.store.SetActiveWeek(week); err != nil {
			a.log.WithError(err).Warn("persist active week")
		}
		return nil
	}
}

func (a App) setZoom(z float64) (tea.Model, tea.Cmd) {
	a.zoom = grid.ClampZoom(z)
	a.planner.setZoom(a.zoom)

	zoom := a.zoom
	return a, func() tea.Msg {
		if err := a.store.SetZoom(zoom); err != nil {
			a.log.WithError(err).Warn("persist zoom")
		}
		return nil
	}
}

// --- optimistic mutations ---

func tempID() string {
	return fmt.Sprintf("temp-%d", time.Now().UnixNano())
}

func (a App) applyCreate(in interaction.CreateSpan) (tea.Model, tea.Cmd) {
	e := plan.Event{
		ID:         tempID(),
		Title:      "New event",
		CategoryID: plan.DefaultCategoryID,
		DayOfWeek:  in.Day,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		UserType:   in.User,
		WeekType:   plan.WeekBoth,
	}
	a.events = append(a.events, e)
	a.planner.focusID = e.ID
	a.pushData()

	temp := e.ID
	toSave := e
	toSave.ID = ""
	return a, func() tea.Msg {
		saved, err := a.store.CreateEvent(toSave)
		if err != nil {
			return mutationErrMsg{err: err}
		}
		return eventSavedMsg{tempID: temp, saved: saved}
	}
}

func (a App) applyMove(in interaction.Move) (tea.Model, tea.Cmd) {
	idx := -1
	for i := range a.events {
		if a.events[i].ID == in.EventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return a, nil
	}

	a.events[idx].DayOfWeek = in.Day
	a.events[idx].UserType = in.User
	a.events[idx].StartTime = in.StartTime
	a.events[idx].EndTime = in.EndTime
	a.pushData()

	updated := a.events[idx]
	return a, func() tea.Msg {
		if err := a.store.UpdateEvent(updated); err != nil {
			return mutationErrMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

func (a App) applyResize(in interaction.Resize) (tea.Model, tea.Cmd) {
	idx := -1
	for i := range a.events {
		if a.events[i].ID == in.EventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return a, nil
	}

	a.events[idx].EndTime = in.EndTime
	a.pushData()

	updated := a.events[idx]
	return a, func() tea.Msg {
		if err := a.store.UpdateEvent(updated); err != nil {
			return mutationErrMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

func (a App) deleteFocused() (tea.Model, tea.Cmd) {
	e, ok := a.planner.focusedEvent()
	if !ok {
		return a, nil
	}
	kept := a.events[:0:0]
	for _, ev := range a.events {
		if ev.ID != e.ID {
			kept = append(kept, ev)
		}
	}
	a.events = kept
	a.planner.focusID = ""
	a.pushData()

	id := e.ID
	return a, func() tea.Msg {
		if err := a.store.DeleteEvent(id); err != nil {
			return mutationErrMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

// duplicateFocused clones the focused event as a new row, same slot and
// sides, titled "<title> (Copy)".
func (a App) duplicateFocused() (tea.Model, tea.Cmd) {
	src, ok := a.planner.focusedEvent()
	if !ok {
		return a, nil
	}

	dup := src
	dup.ID = tempID()
	dup.Title = src.Title + " (Copy)"
	a.events = append(a.events, dup)
	a.planner.focusID = dup.ID
	a.pushData()

	temp := dup.ID
	toSave := dup
	toSave.ID = ""
	return a, func() tea.Msg {
		saved, err := a.store.CreateEvent(toSave)
		if err != nil {
			return mutationErrMsg{err: err}
		}
		return eventSavedMsg{tempID: temp, saved: saved}
	}
}

func (a App) openEditorFor(e plan.Event) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.editor, cmd = a.editor.open(e, a.categories)
	return a, cmd
}

// --- view ---

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch {
	case a.editor.active:
		content = a.editor.view()
	case a.activeView == viewPlanner:
		content = a.planner.view()
	case a.activeView == viewStats:
		content = a.stats.view()
	case a.activeView == viewCategories:
		content = a.catview.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("weekplan")
	weekTag := successStyle.Render(" Week " + string(a.week))
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(weekTag) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, weekTag, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" ") + a.status
	}

	left := footerStyle.Render(helpView)
	right := status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	events := a.events
	cats := a.categories
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("weekplan-export-%s.csv", dateStr))
			if err := export.ToCSV(events, cats, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("weekplan-export-%s.json", dateStr))
			if err := export.ToJSON(events, cats, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
