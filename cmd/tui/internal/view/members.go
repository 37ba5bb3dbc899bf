package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/member"
)

const addMemberOption = "__add__"

type membersState int

const (
	membersStateSelect membersState = iota
	membersStateAdd
)

type memberFields struct {
	selected string
	name     string
}

// MembersModel switches the active family member or creates a new one.
type MembersModel struct {
	CommonModel
	app *app.App

	state  membersState
	form   *huh.Form
	fields *memberFields

	status string
	err    error
}

func NewMembersModel(a *app.App) MembersModel {
	m := MembersModel{app: a}
	m.selectForm()

	return m
}

func (m MembersModel) Title() string     { return "Members" }
func (m MembersModel) ShortHelp() string { return "Enter: choose | Esc: back" }

func (m MembersModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *MembersModel) selectForm() {
	m.state = membersStateSelect
	m.fields = &memberFields{selected: m.app.State().MemberID}

	options := make([]huh.Option[string], 0, len(m.app.Members.List())+1)
	for _, mem := range m.app.Members.List() {
		options = append(options, huh.NewOption(mem.Name, mem.ID))
	}

	options = append(options, huh.NewOption("+ Add member", addMemberOption))

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Show transactions for").
				Options(options...).
				Value(&m.fields.selected),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m *MembersModel) addForm() {
	m.state = membersStateAdd
	m.fields.name = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Member name").
				Value(&m.fields.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return member.ErrEmptyName
					}

					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m MembersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppliedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			m.selectForm()
			return m, m.form.Init()
		}

		// A freshly added member is selected straight away.
		if msg.Result.Member != nil {
			m.status = fmt.Sprintf("Added %s.", msg.Result.Member.Name)
			return m, applyCmd(m.app, app.SelectMember{MemberID: msg.Result.Member.ID})
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == membersStateAdd {
				m.selectForm()
				return m, m.form.Init()
			}

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

	switch {
	case m.state == membersStateAdd:
		return m, applyCmd(m.app, app.AddMember{Name: m.fields.name})
	case m.fields.selected == addMemberOption:
		m.addForm()
		return m, m.form.Init()
	default:
		return m, applyCmd(m.app, app.SelectMember{MemberID: m.fields.selected})
	}
}

func (m MembersModel) View() string {
	note := ""
	if m.app.State().Private {
		note = faintStyle.Render("Member selection applies once private mode is left.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(Header(m.app)),
		panelStyle.Width(44).Render(m.form.View()),
		note,
		statusLine(m.status, m.err),
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
