package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
)

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

// ImportModel loads a CSV file into the active partition.
type ImportModel struct {
	CommonModel
	app *app.App

	state      importState
	filePicker filepicker.Model

	status string
	err    error
}

func NewImportModel(a *app.App) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{app: a, filePicker: fp}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: pick another file"
	}

	return "Enter: select | Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == importStateResult {
				m.state = importStateFilePick
				m.status = ""
				m.err = nil

				return m, m.filePicker.Init()
			}

			return m, Back
		}

	case AppliedMsg:
		m.state = importStateResult
		m.err = msg.Err

		if msg.Err == nil {
			m.status = fmt.Sprintf("Imported %d transactions.", len(msg.Result.Transactions))
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	a := m.app

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return AppliedMsg{Err: fmt.Errorf("failed to open file: %w", err)}
		}
		defer f.Close()

		cmd, err := app.ImportCSV(f)
		if err != nil {
			return AppliedMsg{Err: err}
		}

		return applyCmd(a, cmd)()
	}
}

func (m ImportModel) View() string {
	var body string

	switch m.state {
	case importStateFilePick:
		body = "Pick a CSV with date, type, amount and reason columns:\n\n" + m.filePicker.View()
	case importStateImporting:
		body = m.status
	case importStateResult:
		body = statusLine(m.status, m.err)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(Header(m.app)),
		body,
		"",
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
