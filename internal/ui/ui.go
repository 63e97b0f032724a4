// Package ui implements the built-in Bubble Tea host picker, used by the
// browse command and as a fallback when the external selector is not
// installed. It produces the same Selection shape as the fzf path: enter
// confirms, alt+enter stages, esc cancels.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sshsel/internal/model"
	"sshsel/internal/util"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type pickerModel struct {
	hosts    []model.HostRecord
	filtered []model.HostRecord
	filter   textinput.Model
	sel      int
	pageSize int
	result   *model.Selection
}

func newPickerModel(hosts []model.HostRecord, query string, pageSize int) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter hosts"
	ti.Prompt = "> "
	ti.SetValue(query)
	ti.Focus()
	if pageSize <= 0 {
		pageSize = 15
	}
	m := pickerModel{hosts: hosts, filter: ti, pageSize: pageSize}
	m.applyFilter()
	return m
}

func (m *pickerModel) applyFilter() {
	f := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if f == "" {
		m.filtered = append([]model.HostRecord(nil), m.hosts...)
	} else {
		m.filtered = nil
		for _, h := range m.hosts {
			haystack := strings.ToLower(h.Alias + " " + h.HostName + " " + h.User + " " + h.Description)
			if strings.Contains(haystack, f) {
				m.filtered = append(m.filtered, h)
			}
		}
	}
	if m.sel >= len(m.filtered) {
		m.sel = len(m.filtered) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "alt+k":
			if m.sel > 0 {
				m.sel--
			}
			return m, nil
		case "down", "alt+j":
			if m.sel < len(m.filtered)-1 {
				m.sel++
			}
			return m, nil
		case "enter":
			if m.sel < len(m.filtered) {
				m.result = &model.Selection{Mode: model.ModeConfirm, Alias: m.filtered[m.sel].Alias}
			}
			return m, tea.Quit
		case "alt+enter":
			if m.sel < len(m.filtered) {
				m.result = &model.Selection{Mode: model.ModeStage, Alias: m.filtered[m.sel].Alias}
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(m.filter.View() + "\n")
	b.WriteString(headerStyle.Render("Alias            Hostname                 User         Description") + "\n")

	start := 0
	if m.sel >= m.pageSize {
		start = m.sel - m.pageSize + 1
	}
	end := min(start+m.pageSize, len(m.filtered))
	for i := start; i < end; i++ {
		h := m.filtered[i]
		row := formatRow(h)
		if i == m.sel {
			b.WriteString(selectedStyle.Render("» " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no matching hosts") + "\n")
	}
	b.WriteString(dimStyle.Render("enter connect · alt+enter stage · esc cancel"))
	return b.String()
}

func formatRow(h model.HostRecord) string {
	return pad(h.Alias, 16) + " " + pad(h.HostName, 24) + " " + pad(util.EmptyDash(h.User), 12) + " " + util.EmptyDash(h.Description)
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

// Pick runs the interactive picker and returns the selection, or nil when the
// user cancels or no hosts exist.
func Pick(hosts []model.HostRecord, query string, pageSize int) (*model.Selection, error) {
	if len(hosts) == 0 {
		return nil, nil
	}
	prog := tea.NewProgram(newPickerModel(hosts, query, pageSize))
	final, err := prog.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(pickerModel); ok {
		return m.result, nil
	}
	return nil, nil
}
