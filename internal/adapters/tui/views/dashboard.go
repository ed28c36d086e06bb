package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"kanbanwatch/internal/adapters/tui/styles"
	"kanbanwatch/internal/application/commands"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

// maxReports is how many cycles the dashboard keeps on screen
const maxReports = 8

// DashboardKeyMap defines key bindings for the dashboard view
type DashboardKeyMap struct {
	Sync key.Binding
	Open key.Binding
	Copy key.Binding
	Edit key.Binding
	Help key.Binding
	Quit key.Binding
}

var DashboardKeys = DashboardKeyMap{
	Sync: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sync now"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open board"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit settings"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// CycleEngine is the part of the engine the dashboard drives
type CycleEngine interface {
	commands.CycleRunner
	Settings() domain.Settings
	SnapshotSize() int
}

// Messages produced by the dashboard's commands
type (
	cycleTickMsg struct{ gen int }
	cycleDoneMsg struct{ report *domain.CycleReport }
	noticeMsg    struct{ text string }
	boardOpenMsg struct{ err error }
	copiedMsg    struct {
		link string
		err  error
	}
)

// DashboardModel shows the watcher state and runs cycles on a timer
type DashboardModel struct {
	ViewState
	ctx        context.Context
	engine     CycleEngine
	opener     ports.BoardOpener
	notices    <-chan string
	configPath string
	copy       func(string) error

	spinner  spinner.Model
	running  bool
	gen      int
	reports  []*domain.CycleReport
	lastLink string
}

// NewDashboardModel creates the dashboard. opener and notices may be nil.
func NewDashboardModel(ctx context.Context, engine CycleEngine, opener ports.BoardOpener, notices <-chan string, configPath string) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &DashboardModel{
		ctx:        ctx,
		engine:     engine,
		opener:     opener,
		notices:    notices,
		configPath: configPath,
		copy:       clipboard.WriteAll,
		spinner:    s,
	}
}

// Init runs the first cycle immediately
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.startCycle(), m.waitForNotice(), m.spinner.Tick)
}

// Update handles messages for the dashboard
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cycleTickMsg:
		// Ticks from a superseded schedule are dropped
		if msg.gen != m.gen || m.running {
			return m, nil
		}
		return m, m.startCycle()

	case cycleDoneMsg:
		m.running = false
		m.record(msg.report)
		m.gen++
		gen := m.gen
		return m, tea.Tick(m.engine.Settings().Interval(), func(time.Time) tea.Msg {
			return cycleTickMsg{gen: gen}
		})

	case noticeMsg:
		m.SetMessage(msg.text, false)
		return m, m.waitForNotice()

	case boardOpenMsg:
		if msg.err != nil {
			m.SetMessage("Could not open board: "+msg.err.Error(), true)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.SetMessage("Copy failed: "+msg.err.Error(), true)
		} else {
			m.SetMessage("Copied "+msg.link, false)
		}
		return m, nil

	case EditorFinishedMsg:
		if msg.Err != nil {
			m.SetMessage("Editor failed: "+msg.Err.Error(), true)
		} else {
			m.SetMessage("Settings saved; they apply from the next cycle", false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DashboardKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, DashboardKeys.Help):
		return m, func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, DashboardKeys.Sync):
		if m.running {
			return m, nil
		}
		return m, m.startCycle()

	case key.Matches(msg, DashboardKeys.Open):
		return m, m.openBoard()

	case key.Matches(msg, DashboardKeys.Copy):
		if m.lastLink == "" {
			m.SetMessage("No link added yet", true)
			return m, nil
		}
		link, copyFn := m.lastLink, m.copy
		return m, func() tea.Msg {
			return copiedMsg{link: link, err: copyFn(link)}
		}

	case key.Matches(msg, DashboardKeys.Edit):
		if m.configPath == "" {
			return m, nil
		}
		path := m.configPath
		return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
	}

	return m, nil
}

func (m *DashboardModel) startCycle() tea.Cmd {
	m.running = true
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		return cycleDoneMsg{report: engine.RunCycle(ctx)}
	}
}

func (m *DashboardModel) waitForNotice() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	ch := m.notices
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg{text: text}
	}
}

func (m *DashboardModel) openBoard() tea.Cmd {
	if m.opener == nil {
		m.SetMessage("Opening the board is not available", true)
		return nil
	}
	board := m.engine.Settings().KanbanBoardLocation
	opener := m.opener
	return func() tea.Msg {
		return boardOpenMsg{err: opener.OpenFile(board)}
	}
}

// record keeps the report and remembers the newest inserted link
func (m *DashboardModel) record(report *domain.CycleReport) {
	m.reports = append(m.reports, report)
	if len(m.reports) > maxReports {
		m.reports = m.reports[len(m.reports)-maxReports:]
	}
	if n := len(report.Inserted); n > 0 {
		m.lastLink = report.Inserted[n-1].Link()
	}
	if report.Err != nil && !report.Skipped {
		m.SetMessage(commands.SummarizeCycle(report), true)
	}
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Kanban Watch"))
	b.WriteString("\n")

	settings := m.engine.Settings()
	panel := strings.Join([]string{
		RenderLabelValue("Vault", settings.Vault),
		RenderLabelValue("Folder", settings.TargetFolder),
		RenderLabelValue("Board", settings.KanbanBoardLocation),
		RenderLabelValue("Interval", settings.Interval().String()),
		RenderLabelValue("Tracked", fmt.Sprintf("%d file(s)", m.engine.SnapshotSize())),
	}, "\n")
	b.WriteString(styles.Panel.Render(panel))
	b.WriteString("\n")

	if m.running {
		b.WriteString(m.spinner.View() + " Checking for new files...")
	} else {
		b.WriteString(styles.MutedText.Render("Waiting for the next check"))
	}
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderReports())
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		DashboardKeys.Sync,
		DashboardKeys.Open,
		DashboardKeys.Copy,
		DashboardKeys.Edit,
		DashboardKeys.Help,
		DashboardKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *DashboardModel) renderReports() string {
	if len(m.reports) == 0 {
		return styles.MutedText.Render("No cycles yet") + "\n"
	}

	var b strings.Builder
	for i := len(m.reports) - 1; i >= 0; i-- {
		r := m.reports[i]
		fmt.Fprintf(&b, "%s %s %s\n",
			styles.Timestamp.Render(r.StartedAt.Format("15:04:05")),
			styles.OutcomeStyle(r.Outcome()).Render(padRight(r.Outcome(), 9)),
			commands.SummarizeCycle(r),
		)
		for _, e := range r.Inserted {
			b.WriteString("           " + styles.Entry.Render(e.Line()) + "\n")
		}
	}
	return b.String()
}
