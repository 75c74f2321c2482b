package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type refreshedMsg struct {
	records []historyRecord
	err     error
}

type model struct {
	baseURL string
	table   table.Model
	errMsg  string
}

func initialModel(baseURL string, records []historyRecord) model {
	columns := []table.Column{
		{Title: "Submitted", Width: 20},
		{Title: "Problem", Width: 32},
		{Title: "Language", Width: 12},
		{Title: "Path", Width: 44},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rowsFromRecords(records)),
		table.WithFocused(true),
		table.WithHeight(16),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return model{baseURL: baseURL, table: t}
}

func rowsFromRecords(records []historyRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, table.Row{
			rec.SubmittedAt.Format("2006-01-02 15:04:05"),
			rec.ProblemTitle,
			rec.Language,
			rec.Path,
		})
	}
	return rows
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) refresh() tea.Msg {
	records, err := fetchHistory(m.baseURL)
	return refreshedMsg{records: records, err: err}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.refresh
		}
	case refreshedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.table.SetRows(rowsFromRecords(msg.records))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	view := baseStyle.Render(m.table.View()) + "\n"
	if m.errMsg != "" {
		view += errStyle.Render(fmt.Sprintf("refresh failed: %s", m.errMsg)) + "\n"
	}
	view += helpStyle.Render("↑/↓ navigate · r refresh · q quit") + "\n"
	return view
}
