package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/gate"
)

type pinFields struct {
	pin     string
	confirm string
}

// PrivateModel is the PIN prompt guarding private mode. It asks for a new PIN
// twice when none exists and for the stored PIN afterwards. Failed attempts
// only clear the inputs.
type PrivateModel struct {
	CommonModel
	app *app.App

	form   *huh.Form
	fields *pinFields

	err error
}

func NewPrivateModel(a *app.App) PrivateModel {
	m := PrivateModel{app: a}
	m.pinForm()

	return m
}

func (m PrivateModel) Title() string { return "Private Mode" }

func (m PrivateModel) ShortHelp() string {
	if m.app.State().Private {
		return "x: exit private mode | Esc: back"
	}

	return "Enter: submit | Esc: back"
}

func (m PrivateModel) Init() tea.Cmd {
	if m.app.State().Private {
		return nil
	}

	return m.form.Init()
}

func pinInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		CharLimit(gate.PINLength).
		Value(value)
}

func (m *PrivateModel) pinForm() {
	m.fields = &pinFields{}

	fields := []huh.Field{pinInput("PIN", &m.fields.pin)}
	if m.app.Gate.State() == gate.StateNoPIN {
		fields[0] = pinInput("Choose a 6-digit PIN", &m.fields.pin)
		fields = append(fields, pinInput("Confirm PIN", &m.fields.confirm))
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(40).WithShowHelp(false)
}

func (m PrivateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppliedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			return m, Back
		}

		m.pinForm()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.app.State().Private {
			if msg.String() == "x" {
				return m, applyCmd(m.app, app.SetPrivateMode{Enabled: false})
			}

			return m, nil
		}
	}

	if m.app.State().Private {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, applyCmd(m.app, app.GateSubmit{PIN: m.fields.pin, Confirm: m.fields.confirm})
}

func (m PrivateModel) View() string {
	body := m.form.View()
	if m.app.State().Private {
		body = privateStyle.Render("Private mode is active.") + "\n\nFamily transactions are hidden until you exit."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(Header(m.app)),
		panelStyle.Width(44).Render(body),
		statusLine("", m.err),
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
