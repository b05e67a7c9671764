package journal

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmate/internal/router"
	"github.com/abhisek/mathmate/internal/screen"
	"github.com/abhisek/mathmate/internal/store"
	"github.com/abhisek/mathmate/internal/ui/layout"
	"github.com/abhisek/mathmate/internal/ui/theme"
)

const pageLimit = 200

type journalLoadedMsg struct {
	Rows []store.JournalRecord
	Err  error
}

// JournalScreen displays the full durable activity journal, newest first.
type JournalScreen struct {
	st       *store.Store
	rows     []store.JournalRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*JournalScreen)(nil)
var _ screen.KeyHintProvider = (*JournalScreen)(nil)

// New creates a new JournalScreen.
func New(st *store.Store) *JournalScreen {
	return &JournalScreen{st: st}
}

func (s *JournalScreen) Init() tea.Cmd {
	return func() tea.Msg {
		rows, err := s.st.QueryJournal(context.Background(), store.QueryOpts{Limit: pageLimit})
		return journalLoadedMsg{Rows: rows, Err: err}
	}
}

func (s *JournalScreen) Title() string {
	return "Activity Log"
}

func (s *JournalScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *JournalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case journalLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Rows
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *JournalScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading activity log...")
	}
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No activity yet. Start learning!")
	}

	// Keep the selected row inside the visible window.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	top := 0
	if s.selected >= visible {
		top = s.selected - visible + 1
	}
	end := top + visible
	if end > len(s.rows) {
		end = len(s.rows)
	}

	var b strings.Builder
	b.WriteString("\n")

	for i := top; i < end; i++ {
		row := s.rows[i]
		e := row.Entry

		scoreStr := ""
		if e.Score != nil {
			scoreStr = fmt.Sprintf("  +%d XP", *e.Score)
		}
		subjectStr := ""
		if e.Subject != "" {
			subjectStr = "  [" + e.Subject + "]"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s %s  %s%s%s  %s",
			prefix, e.Type.Glyph(), e.At.Format("Jan 02, 2006 15:04"),
			e.Title, subjectStr, scoreStr, e.Type.DisplayName())

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
