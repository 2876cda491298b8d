package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"weekplan/internal/plan"
	"weekplan/internal/store"
)

var categoryColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

// categoriesChangedMsg tells the root model to reload the collection after
// a category mutation.
type categoriesChangedMsg struct{}

type categoriesModel struct {
	store  *store.Store
	width  int
	height int

	categories []plan.Category
	cursor     int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName  *string
	formColor *string
}

func newCategoriesModel(s *store.Store) categoriesModel {
	name, color := "", categoryColors[0]
	return categoriesModel{
		store:     s,
		formName:  &name,
		formColor: &color,
	}
}

func (c *categoriesModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *categoriesModel) setData(cats []plan.Category) {
	c.categories = cats
	if c.cursor >= len(c.categories) {
		c.cursor = len(c.categories) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c categoriesModel) update(msg tea.Msg) (categoriesModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.categories)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.New):
			return c.showNewForm()
		case key.Matches(msg, keys.Delete):
			return c.deleteSelected()
		}
	}
	return c, nil
}

func (c categoriesModel) deleteSelected() (categoriesModel, tea.Cmd) {
	if len(c.categories) == 0 {
		return c, nil
	}
	cat := c.categories[c.cursor]

	// Refuse built-ins before touching anything.
	if plan.IsFixedCategory(cat.ID) {
		return c, intentCmd(statusMsg{text: "Built-in categories cannot be deleted", isError: true})
	}

	return c, func() tea.Msg {
		if err := c.store.DeleteCategory(cat.ID); err != nil {
			if errors.Is(err, store.ErrFixedCategory) {
				return statusMsg{text: "Built-in categories cannot be deleted", isError: true}
			}
			return statusMsg{text: fmt.Sprintf("Delete failed: %v", err), isError: true}
		}
		return categoriesChangedMsg{}
	}
}

func (c categoriesModel) showNewForm() (categoriesModel, tea.Cmd) {
	*c.formName = ""
	*c.formColor = categoryColors[0]

	colorOptions := make([]huh.Option[string], len(categoryColors))
	for i, col := range categoryColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", col), col)
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Category Name").Value(c.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(c.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	c.formActive = true
	return c, c.form.Init()
}

func (c categoriesModel) updateForm(msg tea.Msg) (categoriesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		if *c.formName == "" {
			return c, nil
		}
		name, color := *c.formName, *c.formColor
		return c, func() tea.Msg {
			if _, err := c.store.CreateCategory(name, color); err != nil {
				return statusMsg{text: fmt.Sprintf("Create failed: %v", err), isError: true}
			}
			return categoriesChangedMsg{}
		}
	}
	return c, cmd
}

func (c categoriesModel) view() string {
	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Category")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View())
		return panelStyle.Width(c.width - 4).Render(content)
	}

	w := c.width - 4
	title := titleStyle.Render("Categories")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, cat := range c.categories {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		tag := ""
		if plan.IsFixedCategory(cat.ID) {
			tag = mutedStyle.Render(" (built-in)")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s", cursor, colorDot, cat.Name))+tag)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
