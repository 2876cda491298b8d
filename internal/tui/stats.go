package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"weekplan/internal/plan"
)

// statsModel shows how the planned week is spent: stacked hours per day
// and a per-category breakdown by side. It works off the same collection
// the planner renders, filtered to the active week.
type statsModel struct {
	width  int
	height int

	week       plan.WeekType
	dark       bool
	events     []plan.Event
	categories []plan.Category

	chart barchart.Model
}

func newStatsModel() statsModel {
	return statsModel{
		week:  plan.WeekA,
		dark:  true,
		chart: barchart.New(60, 12),
	}
}

func (s *statsModel) setSize(w, h int) {
	s.width = w
	s.height = h
	s.buildChart()
}

func (s *statsModel) setData(events []plan.Event, cats []plan.Category) {
	s.events = events
	s.categories = cats
	s.buildChart()
}

func (s *statsModel) setWeek(w plan.WeekType) {
	s.week = w
	s.buildChart()
}

func (s statsModel) visible() []plan.Event {
	var out []plan.Event
	for _, e := range s.events {
		if e.VisibleIn(s.week) {
			out = append(out, e)
		}
	}
	return out
}

func (s *statsModel) buildChart() {
	chartWidth := s.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if s.height > 30 {
		chartHeight = 16
	}

	s.chart = barchart.New(chartWidth, chartHeight)

	// One bar per display column, stacked by category.
	var bars []barchart.BarData
	for col := 0; col < 7; col++ {
		day := plan.DayForColumn(col)

		perCat := make(map[string]int)
		for _, e := range s.visible() {
			if e.DayOfWeek == day {
				perCat[e.CategoryID] += e.DurationMinutes()
			}
		}

		var values []barchart.BarValue
		for _, c := range s.categories {
			mins := perCat[c.ID]
			if mins == 0 {
				continue
			}
			color := plan.CategoryColor(s.categories, c.ID, plan.Combined, s.dark)
			values = append(values, barchart.BarValue{
				Name:  c.Name,
				Value: float64(mins) / 60,
				Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  plan.DayNames[col][:3],
			Values: values,
		})
	}

	s.chart.PushAll(bars)
	s.chart.Draw()
}

// categoryTotals sums minutes per category and side for the table.
type categoryTotal struct {
	id       string
	name     string
	husband  int
	wife     int
	combined int
}

func (s statsModel) categoryTotals() []categoryTotal {
	byID := make(map[string]*categoryTotal)
	for _, e := range s.visible() {
		t, ok := byID[e.CategoryID]
		if !ok {
			name := "Unknown"
			for _, c := range s.categories {
				if c.ID == e.CategoryID {
					name = c.Name
					break
				}
			}
			t = &categoryTotal{id: e.CategoryID, name: name}
			byID[e.CategoryID] = t
		}
		switch e.UserType {
		case plan.Husband:
			t.husband += e.DurationMinutes()
		case plan.Wife:
			t.wife += e.DurationMinutes()
		default:
			t.combined += e.DurationMinutes()
		}
	}

	totals := make([]categoryTotal, 0, len(byID))
	for _, t := range byID {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		ti := totals[i].husband + totals[i].wife + totals[i].combined
		tj := totals[j].husband + totals[j].wife + totals[j].combined
		if ti != tj {
			return ti > tj
		}
		return totals[i].name < totals[j].name
	})
	return totals
}

func (s statsModel) view() string {
	w := s.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ",
		mutedStyle.Render("Week "+string(s.week)),
	)

	chartView := s.chart.View()
	tableView := s.renderTotals()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView,
		),
	)
}

func (s statsModel) renderTotals() string {
	totals := s.categoryTotals()
	if len(totals) == 0 {
		return mutedStyle.Render("  Nothing planned for this week yet")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-20s %10s %10s %10s", "Category", "Him", "Her", "Both")))

	for _, t := range totals {
		color := plan.CategoryColor(s.categories, t.id, plan.Combined, s.dark)
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
		rows = append(rows, fmt.Sprintf("  %s %-18s %10s %10s %10s",
			dot, t.name,
			formatMinutes(t.husband), formatMinutes(t.wife), formatMinutes(t.combined),
		))
	}
	return strings.Join(rows, "\n")
}
