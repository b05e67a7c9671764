package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmate/internal/progress"
	"github.com/abhisek/mathmate/internal/router"
	"github.com/abhisek/mathmate/internal/screen"
	"github.com/abhisek/mathmate/internal/screens/dashboard"
	"github.com/abhisek/mathmate/internal/store"
	"github.com/abhisek/mathmate/internal/ui/layout"
)

// refreshInterval drives the periodic re-render so streak and day buckets
// roll over without user input.
const refreshInterval = time.Minute

// Options carries the dependencies the TUI needs.
type Options struct {
	Aggregator *progress.Aggregator
	Store      *store.Store
	Name       string
}

type tickMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	agg      *progress.Aggregator
	router   *router.Router
	width    int
	height   int
	quitting bool
}

// newAppModel creates a new AppModel with the dashboard screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		agg:    opts.Aggregator,
		router: router.New(dashboard.New(opts.Aggregator, opts.Store, opts.Name)),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tick(),
		func() tea.Msg { return router.RefreshMsg{Now: time.Now()} },
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		cmd := m.router.Broadcast(router.RefreshMsg{Now: time.Time(msg)})
		return m, tea.Batch(cmd, tick())

	case tea.FocusMsg:
		// Every screen gets the focus event, not just the active one, so a
		// covered dashboard rolls its streak too.
		return m, m.router.Broadcast(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	rec := m.agg.Snapshot()
	header := layout.RenderHeader(title, rec.Level, rec.Streak, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. Focus reporting is enabled so returning
// to the terminal rolls the streak without waiting for the next tick.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
