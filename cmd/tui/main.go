package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pocketbook/internal/app"
	"github.com/MrJamesThe3rd/pocketbook/internal/config"
	"github.com/MrJamesThe3rd/pocketbook/internal/kv/backend"
)

type model struct {
	app  *app.App
	name string

	currentView View
	screen      tea.Model
	width       int
	height      int
}

type View int

const (
	ViewMenu       View = 0
	ViewDashboard  View = 1
	ViewAdd        View = 2
	ViewAllocation View = 3
	ViewMembers    View = 4
	ViewMonth      View = 5
	ViewPrivate    View = 6
	ViewImport     View = 7
)

func (m model) open(v View) (tea.Model, tea.Cmd) {
	m.currentView = v

	switch v {
	case ViewDashboard:
		m.screen = view.NewDashboardModel(m.app)
	case ViewAdd:
		m.screen = view.NewAddModel(m.app)
	case ViewAllocation:
		m.screen = view.NewAllocationModel(m.app)
	case ViewMembers:
		m.screen = view.NewMembersModel(m.app)
	case ViewMonth:
		m.screen = view.NewMonthModel(m.app)
	case ViewPrivate:
		m.screen = view.NewPrivateModel(m.app)
	case ViewImport:
		m.screen = view.NewImportModel(m.app)
	default:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	resize := func() tea.Msg { return tea.WindowSizeMsg{Width: m.width, Height: m.height} }

	return m, tea.Batch(m.screen.Init(), resize)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5", "6", "7":
				return m.open(View(msg.String()[0] - '0'))
			}
		}
	case view.BackMsg:
		return m.open(ViewMenu)
	}

	if m.screen == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.screen != nil {
		return m.screen.View()
	}

	v := m.app.View()

	privateLabel := "6. Private Mode"
	if v.State.Private {
		privateLabel = "6. Exit Private Mode"
	}

	return lipgloss.NewStyle().Padding(2).Render(
		m.name + "\n" +
			view.Header(m.app) + "\n" +
			"Balance " + view.FormatAmount(v.Totals.Balance) +
			" | Income " + view.FormatAmount(v.Totals.Income) +
			" | Expense " + view.FormatAmount(v.Totals.Expense) + "\n\n" +
			"1. Dashboard\n" +
			"2. Add Transaction\n" +
			"3. Income Allocation\n" +
			"4. Members\n" +
			"5. Month Filter\n" +
			privateLabel + "\n" +
			"7. Import CSV\n\n" +
			"q. Quit",
	)
}

// setupLogging keeps the terminal clean: only errors reach stderr unless debug
// logging is enabled, which goes to a file.
func setupLogging(cfg *config.Config) func() {
	if cfg.LogLevel() != slog.LevelDebug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		return func() {}
	}

	f, err := tea.LogToFile("pocketbook-debug.log", "")
	if err != nil {
		slog.Error("failed to open debug log", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))

	return func() { _ = f.Close() }
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	closeLog := setupLogging(cfg)
	defer closeLog()

	store, closeStore, err := backend.Open(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	pocketbook := app.NewFromStore(store)
	if err := pocketbook.Load(context.Background()); err != nil {
		slog.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model{app: pocketbook, name: cfg.App.Name}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
