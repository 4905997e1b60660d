package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
)

// tagItem represents a selectable tag in the multi-select
type tagItem struct {
	tag   string
	steps []string
}

// multiSelectModel is the bubbletea model for multi-select
type multiSelectModel struct {
	items     []tagItem
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
}

func initialMultiSelectModel(items []tagItem, title string) multiSelectModel {
	return multiSelectModel{
		items:    items,
		selected: make(map[int]bool, len(items)),
		title:    title,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "a":
			all := len(m.selectedIndices()) < len(m.items)
			for i := range m.items {
				m.selected[i] = all
			}
		case "enter":
			if len(m.selectedIndices()) > 0 {
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, item := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		tag := color.New(color.FgWhite).Sprint(item.tag)
		steps := ""
		if len(item.steps) > 1 || (len(item.steps) == 1 && item.steps[0] != item.tag) {
			steps = color.New(color.FgYellow).Sprintf(" (%s)", strings.Join(item.steps, ", "))
		}

		b.WriteString(fmt.Sprintf("%s %s %s%s\n", cursor, checkbox, tag, steps))
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// selectedIndices returns the selected item indices in display order
func (m multiSelectModel) selectedIndices() []int {
	var indices []int
	for i := range m.items {
		if m.selected[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

// SelectTags shows a multi-select interface and returns the chosen tags
func SelectTags(items []tagItem, title string) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no tags to select")
	}

	p := tea.NewProgram(initialMultiSelectModel(items, title))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	m := finalModel.(multiSelectModel)
	if !m.done || m.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	tags := make([]string, 0, len(m.items))
	for _, i := range m.selectedIndices() {
		tags = append(tags, m.items[i].tag)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags selected")
	}

	return tags, nil
}
