package view

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

// Month presets offered before falling back to free input.
const (
	monthAll    = "all"
	monthThis   = "this"
	monthLast   = "last"
	monthCustom = "custom"
)

type monthFields struct {
	preset string
	custom string
}

// MonthModel narrows every view to one calendar month.
type MonthModel struct {
	CommonModel
	app *app.App
	now func() time.Time

	custom bool
	form   *huh.Form
	fields *monthFields

	err error
}

func NewMonthModel(a *app.App) MonthModel {
	m := MonthModel{app: a, now: time.Now}
	m.presetForm()

	return m
}

func (m MonthModel) Title() string     { return "Month Filter" }
func (m MonthModel) ShortHelp() string { return "Enter: apply | Esc: back" }

func (m MonthModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *MonthModel) presetForm() {
	m.custom = false
	m.fields = &monthFields{preset: monthAll, custom: m.app.State().Month}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Show").
				Options(
					huh.NewOption("All time", monthAll),
					huh.NewOption("This month", monthThis),
					huh.NewOption("Last month", monthLast),
					huh.NewOption("Pick a month…", monthCustom),
				).
				Value(&m.fields.preset),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m *MonthModel) customForm() {
	m.custom = true

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Month").
				Placeholder("YYYY-MM").
				CharLimit(7).
				Value(&m.fields.custom).
				Validate(ledger.ParseMonth),
		),
	).WithWidth(40).WithShowHelp(false)
}

// month resolves the chosen preset into a YYYY-MM key, empty for all time.
func (m MonthModel) month() string {
	switch m.fields.preset {
	case monthThis:
		return MonthKey(m.now(), 0)
	case monthLast:
		return MonthKey(m.now(), -1)
	case monthCustom:
		return m.fields.custom
	}

	return ""
}

func (m MonthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppliedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			m.presetForm()
			return m, m.form.Init()
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.fields.preset == monthCustom && !m.custom {
		m.customForm()
		return m, m.form.Init()
	}

	return m, applyCmd(m.app, app.SetMonth{Month: m.month()})
}

func (m MonthModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(Header(m.app)),
		panelStyle.Width(44).Render(m.form.View()),
		statusLine("", m.err),
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
