package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

type dashboardState int

const (
	dashboardStateBrowse dashboardState = iota
	dashboardStateConfirm
)

// DashboardModel lists the visible transactions with their totals.
type DashboardModel struct {
	CommonModel
	app *app.App

	state   dashboardState
	table   table.Model
	view    app.View
	form    *huh.Form
	confirm *bool

	status string
	err    error
}

func NewDashboardModel(a *app.App) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 16},
		{Title: "Reason", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := DashboardModel{app: a, table: t}
	m.refresh()

	return m
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateConfirm {
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | d: delete | e: export csv | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppliedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.status = "Transaction deleted."
		}

		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-14, 5))
		return m, nil
	}

	if m.state == dashboardStateConfirm {
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		case "d", "delete":
			return m.enterConfirm()
		case "e":
			return m.exportCSV()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *DashboardModel) selected() (ledger.Transaction, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.view.Transactions) {
		return ledger.Transaction{}, false
	}

	return m.view.Transactions[idx], true
}

func (m DashboardModel) enterConfirm() (tea.Model, tea.Cmd) {
	tx, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q (%s)?", tx.Reason, FormatAmount(tx.Amount))).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = dashboardStateConfirm
	m.table.Blur()

	return m, m.form.Init()
}

func (m DashboardModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveConfirm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	tx, ok := m.selected()
	confirmed := *m.confirm
	m = m.leaveConfirm()

	if !ok || !confirmed {
		return m, nil
	}

	return m, applyCmd(m.app, app.DeleteTransaction{ID: tx.ID})
}

func (m DashboardModel) leaveConfirm() DashboardModel {
	m.state = dashboardStateBrowse
	m.form = nil
	m.confirm = nil
	m.table.Focus()

	return m
}

// exportCSV writes the visible transactions into the working directory.
func (m DashboardModel) exportCSV() (tea.Model, tea.Cmd) {
	scope := m.view.State.MemberID
	if m.view.State.Private {
		scope = ledger.ScopePrivate.String()
	}

	dir, err := os.Getwd()
	if err != nil {
		m.err = err
		return m, nil
	}

	path, err := export.ToFile(dir, export.Filename(scope, m.view.State.Month), m.view.Transactions)
	m.err = err

	if err == nil {
		m.status = fmt.Sprintf("Exported %d transactions to %s.", len(m.view.Transactions), path)
	}

	return m, nil
}

func (m *DashboardModel) refresh() {
	m.view = m.app.View()

	rows := make([]table.Row, 0, len(m.view.Transactions))
	for _, tx := range m.view.Transactions {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Kind),
			FormatSigned(tx),
			tx.Reason,
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m DashboardModel) View() string {
	totals := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render("Balance\n"+FormatAmount(m.view.Totals.Balance)),
		panelStyle.Render("Income\n"+incomeStyle.Render(FormatAmount(m.view.Totals.Income))),
		panelStyle.Render("Expense\n"+expenseStyle.Render(FormatAmount(m.view.Totals.Expense))),
	)

	body := faintStyle.Render("No transactions yet.")
	if len(m.view.Transactions) > 0 {
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(Header(m.app)),
		totals,
		body,
	)

	if m.state == dashboardStateConfirm && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(54).Render(m.form.View()))
	}

	content = lipgloss.JoinVertical(lipgloss.Left,
		content,
		statusLine(m.status, m.err),
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
