package code

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prenaissance/steam-desktop-authenticator/internal/application"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

// Fetcher resolves the current one-time password for the active account.
type Fetcher func(context.Context) (string, error)

type Options struct {
	Account     string
	Granularity time.Duration
	Clock       ports.Clock
}

type tickMsg time.Time

type codeFetchedMsg struct {
	code string
	err  error
}

// refreshSignal bridges the scheduler callback into the update loop. The
// callback runs synchronously inside Tick, so no locking is needed.
type refreshSignal struct {
	fired bool
}

type Model struct {
	ctx         context.Context
	fetch       Fetcher
	scheduler   *application.Scheduler
	signal      *refreshSignal
	spinner     spinner.Model
	progress    progress.Model
	styles      styles
	granularity time.Duration
	account     string
	cycle       application.RefreshCycle
	code        string
	err         error
	loading     bool
	quitting    bool
}

func NewModel(ctx context.Context, fetch Fetcher, opts Options) Model {
	granularity := opts.Granularity
	if granularity <= 0 {
		granularity = time.Second
	}
	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	signal := &refreshSignal{}
	scheduler := application.NewScheduler(clock, granularity, func() {
		signal.fired = true
	})

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		ctx:         ctx,
		fetch:       fetch,
		scheduler:   scheduler,
		signal:      signal,
		spinner:     s,
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		styles:      newStyles(),
		granularity: granularity,
		account:     opts.Account,
		loading:     true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(), m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case codeFetchedMsg:
		m.loading = false
		m.code = msg.code
		m.err = msg.err
		return m, nil
	case tickMsg:
		m.cycle = m.scheduler.Tick()
		cmds := []tea.Cmd{m.tickCmd()}
		if m.signal.fired {
			m.signal.fired = false
			cmds = append(cmds, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.loading && m.code == "" && m.err == nil {
		return fmt.Sprintf("%s Fetching code...\n", m.spinner.View())
	}

	lines := make([]string, 0, 4)
	if m.account != "" {
		lines = append(lines, m.styles.account.Render(m.account))
	}

	if m.err != nil {
		lines = append(lines, m.styles.warning.Render("could not fetch code: "+m.err.Error()))
	} else if m.code == "" {
		lines = append(lines, m.styles.warning.Render("no active account"))
	} else {
		lines = append(lines, m.styles.code.Render(m.code))
	}

	lines = append(lines,
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.progress.ViewAs(m.cycle.ProgressPercent/100),
			" ",
			m.styles.meta.Render(fmt.Sprintf("%2ds", m.cycle.RemainingSeconds)),
		),
		m.styles.help.Render("q to quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		code, err := m.fetch(m.ctx)
		return codeFetchedMsg{code: code, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.granularity, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run drives the interactive code view until the user quits.
func Run(ctx context.Context, fetch Fetcher, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, fetch, opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
