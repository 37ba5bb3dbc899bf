package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbook/internal/matching"
)

type addFields struct {
	kind   ledger.Kind
	amount string
	reason string
	date   string
}

// AddModel is the new transaction form. It writes to whichever partition is
// active when it is submitted.
type AddModel struct {
	CommonModel
	app *app.App

	form   *huh.Form
	fields *addFields

	status string
	err    error
}

func NewAddModel(a *app.App) AddModel {
	m := AddModel{app: a}
	m.reset()

	return m
}

func (m AddModel) Title() string     { return "Add Transaction" }
func (m AddModel) ShortHelp() string { return "Tab: next field | Enter: submit | Esc: back" }

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *AddModel) reset() {
	m.fields = &addFields{kind: ledger.KindExpense, date: time.Now().Format(time.DateOnly)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ledger.Kind]().
				Title("Type").
				Options(
					huh.NewOption("Expense", ledger.KindExpense),
					huh.NewOption("Income", ledger.KindIncome),
				).
				Value(&m.fields.kind),

			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.amount).
				Validate(validateAmount),

			huh.NewInput().
				Title("Reason").
				Suggestions(m.suggestions()).
				Value(&m.fields.reason).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return ledger.ErrEmptyReason
					}

					return nil
				}),

			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.date).
				Validate(func(s string) error {
					_, err := ledger.ParseDate(s)
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

// suggestions offers reasons already used in the active partition.
func (m AddModel) suggestions() []string {
	st := m.app.State()
	st.Month = ""

	return matching.Reasons(app.Snapshot(st, m.app.Ledger).Transactions, 50)
}

// parseAmount reads a typed amount. Only the rupee sign and spaces are
// stripped; the dot is always the decimal point.
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("₹", "", " ", "").Replace(s)

	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ledger.ErrInvalidAmount, s)
	}

	return amount, nil
}

func validateAmount(s string) error {
	amount, err := parseAmount(s)
	if err != nil {
		return err
	}

	if !amount.IsPositive() {
		return ledger.ErrInvalidAmount
	}

	return nil
}

func (m AddModel) params() (ledger.CreateParams, error) {
	amount, err := parseAmount(m.fields.amount)
	if err != nil {
		return ledger.CreateParams{}, err
	}

	date, err := ledger.ParseDate(m.fields.date)
	if err != nil {
		return ledger.CreateParams{}, err
	}

	return ledger.CreateParams{
		Amount: amount,
		Kind:   m.fields.kind,
		Reason: m.fields.reason,
		Date:   date,
	}, nil
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AppliedMsg:
		m.err = msg.Err
		if msg.Err == nil && len(msg.Result.Transactions) == 1 {
			tx := msg.Result.Transactions[0]
			m.status = fmt.Sprintf("Added %s %s for %q.", tx.Kind, FormatAmount(tx.Amount), tx.Reason)
		}

		m.reset()

		return m, m.form.Init()

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

	params, err := m.params()
	if err != nil {
		m.err = errors.Join(errors.New("invalid transaction"), err)
		m.reset()

		return m, m.form.Init()
	}

	return m, applyCmd(m.app, app.AddTransaction{Params: params})
}

func (m AddModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(Header(m.app)),
		panelStyle.Width(54).Render(m.form.View()),
		statusLine(m.status, m.err),
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
