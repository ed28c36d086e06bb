package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"kanbanwatch/internal/adapters/tui/views"
	"kanbanwatch/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener

	state     ViewState
	dashboard *views.DashboardModel
	help      *views.HelpModel
}

// Config wires the application. Opener, Editor and Notices may be nil.
type Config struct {
	Engine     views.CycleEngine
	Opener     ports.BoardOpener
	Editor     ports.EditorOpener
	Notices    *ChannelNotifier
	ConfigPath string
}

// NewApp creates a new TUI application
func NewApp(ctx context.Context, cfg Config) *App {
	var notices <-chan string
	if cfg.Notices != nil {
		notices = cfg.Notices.C()
	}
	configPath := cfg.ConfigPath
	if cfg.Editor == nil {
		configPath = ""
	}

	return &App{
		editor:    cfg.Editor,
		state:     ViewDashboard,
		dashboard: views.NewDashboardModel(ctx, cfg.Engine, cfg.Opener, notices, configPath),
		help:      views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.dashboard.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToDashboardMsg:
		a.state = ViewDashboard
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewDashboard
		return a, a.openEditor(msg.Path)

	case tea.KeyMsg:
		// Keys go to the visible view only
		var cmd tea.Cmd
		switch a.state {
		case ViewHelp:
			_, cmd = a.help.Update(msg)
		default:
			_, cmd = a.dashboard.Update(msg)
		}
		return a, cmd
	}

	// Cycle results, ticks and notices keep flowing while help is open
	_, cmd := a.dashboard.Update(msg)
	return a, cmd
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return views.EditorFinishedMsg{Err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return views.EditorFinishedMsg{Err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.dashboard.View()
	}
}
