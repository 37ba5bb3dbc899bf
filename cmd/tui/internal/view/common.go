package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
)

const storeTimeout = 5 * time.Second

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// AppliedMsg carries the outcome of a command run against the app.
type AppliedMsg struct {
	Result app.Result
	Err    error
}

// storeCtx returns a context with the standard timeout for store writes.
func storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

func applyCmd(a *app.App, cmd app.Command) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		res, err := a.Apply(ctx, cmd)

		return AppliedMsg{Result: res, Err: err}
	}
}

var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	privateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	panelStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// Header describes the partition currently on screen.
func Header(a *app.App) string {
	st := a.State()

	scope := "Family: " + activeStyle(memberName(a, st.MemberID))
	if st.Private {
		scope = privateStyle.Render("Private mode")
	}

	return fmt.Sprintf("%s | Month: %s", scope, activeStyle(MonthLabel(st.Month)))
}

func memberName(a *app.App, id string) string {
	name, err := a.Members.Name(id)
	if err != nil {
		return id
	}

	return name
}

func statusLine(status string, err error) string {
	if err != nil {
		return errorStyle.Render("Error: " + err.Error())
	}

	return faintStyle.Render(status)
}
