package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

// AllocationModel shows each income with the expenses it funded, newest first.
type AllocationModel struct {
	CommonModel
	app *app.App

	viewport viewport.Model
}

func NewAllocationModel(a *app.App) AllocationModel {
	vp := viewport.New(80, 20)

	m := AllocationModel{app: a, viewport: vp}
	m.refresh()

	return m
}

func (m AllocationModel) Title() string     { return "Income Allocation" }
func (m AllocationModel) ShortHelp() string { return "↑/↓: scroll | r: refresh | Esc: back" }

func (m AllocationModel) Init() tea.Cmd {
	return nil
}

func (m AllocationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-8, 5)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m *AllocationModel) refresh() {
	m.viewport.SetContent(RenderBlocks(m.app.View().Blocks))
	m.viewport.GotoTop()
}

// RenderBlocks draws allocation blocks as stacked panels.
func RenderBlocks(blocks []ledger.Block) string {
	if len(blocks) == 0 {
		return faintStyle.Render("No transactions to allocate.")
	}

	panels := make([]string, 0, len(blocks))
	for _, b := range blocks {
		panels = append(panels, renderBlock(b))
	}

	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func renderBlock(b ledger.Block) string {
	var sb strings.Builder

	if b.Income != nil {
		fmt.Fprintf(&sb, "%s  %s  %s\n",
			FormatDate(b.Income.Date),
			incomeStyle.Render(FormatAmount(b.Income.Amount)),
			b.Income.Reason)
	} else {
		sb.WriteString(faintStyle.Render("Before any income") + "\n")
	}

	for _, e := range b.Expenses {
		fmt.Fprintf(&sb, "  %s  %s  %s\n",
			FormatDate(e.Date),
			expenseStyle.Render(FormatAmount(e.Amount)),
			e.Reason)
	}

	if len(b.Expenses) == 0 {
		sb.WriteString(faintStyle.Render("  no expenses") + "\n")
	}

	remaining := FormatAmount(b.Remaining)
	if b.Remaining.IsNegative() {
		remaining = expenseStyle.Render(remaining)
	}

	fmt.Fprintf(&sb, "Spent %s | Remaining %s", FormatAmount(b.TotalExpense), remaining)

	return panelStyle.Width(70).Render(sb.String())
}

func (m AllocationModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(Header(m.app)),
		m.viewport.View(),
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
