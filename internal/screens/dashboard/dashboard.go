package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathmate/internal/achievements"
	"github.com/abhisek/mathmate/internal/activity"
	"github.com/abhisek/mathmate/internal/analytics"
	"github.com/abhisek/mathmate/internal/progress"
	"github.com/abhisek/mathmate/internal/router"
	"github.com/abhisek/mathmate/internal/screen"
	"github.com/abhisek/mathmate/internal/screens/journal"
	"github.com/abhisek/mathmate/internal/store"
	"github.com/abhisek/mathmate/internal/ui/components"
	"github.com/abhisek/mathmate/internal/ui/layout"
	"github.com/abhisek/mathmate/internal/ui/theme"
)

const recentShown = 5

// DashboardScreen is the landing screen: greeting, XP bar, completion bars,
// weekly and XP growth charts, achievements, and the recent activity feed.
type DashboardScreen struct {
	agg    *progress.Aggregator
	st     *store.Store
	name   string
	errMsg string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard over the given aggregator. st may be nil, which
// disables the journal screen.
func New(agg *progress.Aggregator, st *store.Store, name string) *DashboardScreen {
	return &DashboardScreen{agg: agg, st: st, name: name}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.st != nil {
		hints = append(hints, layout.KeyHint{Key: "A", Description: "Activity log"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.RefreshMsg:
		s.touch(msg.Now)
		return s, nil

	case tea.FocusMsg:
		s.touch(time.Now())
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			if s.st == nil {
				return s, nil
			}
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: journal.New(s.st)}
			}
		}
	}
	return s, nil
}

// touch runs the daily streak transition. A storage failure keeps the
// in-memory state and surfaces as a dim notice instead of killing the TUI.
func (s *DashboardScreen) touch(now time.Time) {
	if _, err := s.agg.UpdateStreak(context.Background(), now); err != nil {
		s.errMsg = err.Error()
	} else {
		s.errMsg = ""
	}
}

func (s *DashboardScreen) View(width, height int) string {
	rec := s.agg.Snapshot()
	log := s.agg.Log()
	now := time.Now()

	compact := layout.IsCompactWidth(width) || layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)

	if compact {
		return s.viewCompact(rec, log, now, width)
	}
	return s.viewFull(rec, log, now, width)
}

func (s *DashboardScreen) viewFull(rec progress.Record, log *activity.Log, now time.Time, width int) string {
	colWidth := (width - 6) / 2
	cardInner := colWidth - 4

	left := strings.Join([]string{
		card("", renderGreeting(s.name, rec, cardInner), colWidth),
		card("Level Progress", renderXPBar(rec, cardInner), colWidth),
		card("Completion", renderCompletion(rec, cardInner), colWidth),
		card("Subjects", renderSubjects(rec, cardInner), colWidth),
		card("Activity Distribution", components.NewBarChart(analytics.Distribution(rec, log), cardInner).View(), colWidth),
	}, "\n")

	right := strings.Join([]string{
		card("This Week", components.NewBarChart(analytics.WeeklyBuckets(log, now), cardInner).View(), colWidth),
		card("XP Growth", components.NewBarChart(analytics.XPGrowth(log, analytics.XPGrowthWindow, now), cardInner).View(), colWidth),
		card("Achievements", components.NewBadgeGrid(achievements.Evaluate(rec), 2).View(), colWidth),
		card("Recent Activity", renderRecent(log, now, cardInner), colWidth),
	}, "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	if s.errMsg != "" {
		body += "\n" + theme.Hint.Render("  sync issue: "+s.errMsg)
	}
	return body
}

func (s *DashboardScreen) viewCompact(rec progress.Record, log *activity.Log, now time.Time, width int) string {
	cardInner := width - 6

	sections := []string{
		card("", renderGreeting(s.name, rec, cardInner), width-2),
		card("Level Progress", renderXPBar(rec, cardInner), width-2),
		card("Completion", renderCompletion(rec, cardInner), width-2),
		card("This Week", components.NewBarChart(analytics.WeeklyBuckets(log, now), cardInner).View(), width-2),
		card("Recent Activity", renderRecent(log, now, cardInner), width-2),
	}
	body := strings.Join(sections, "\n")
	if s.errMsg != "" {
		body += "\n" + theme.Hint.Render("  sync issue: "+s.errMsg)
	}
	return body
}

func card(title, content string, width int) string {
	if title != "" {
		content = theme.CardTitle.Render(title) + "\n" + content
	}
	return theme.Card.Width(width).Render(content)
}

func renderGreeting(name string, rec progress.Record, width int) string {
	who := name
	if who == "" {
		who = "mathematician"
	}
	greeting := theme.Title.Render(fmt.Sprintf("Welcome back, %s!", who))
	sub := theme.Subtitle.Render(fmt.Sprintf("Level %d  ·  %d XP  ·  ⚡ %d day streak", rec.Level, rec.XP, rec.Streak))
	return greeting + "\n" + sub
}

func renderXPBar(rec progress.Record, width int) string {
	bar := components.NewXPBar(width).View(rec.XPPercent())
	label := theme.Subtitle.Render(fmt.Sprintf("%d / %d XP to level %d", rec.XP, rec.TotalXP, rec.Level+1))
	if rec.Level >= progress.MaxLevel {
		label = theme.Subtitle.Render(fmt.Sprintf("%d XP · max level reached", rec.XP))
	}
	return bar + "\n" + label
}

func renderCompletion(rec progress.Record, width int) string {
	problems := components.NewProgressBar(
		fmt.Sprintf("Problems %3d/%d", rec.ProblemsSolved, rec.TotalProblems),
		progress.Ratio(rec.ProblemsSolved, rec.TotalProblems), true, width).View()
	quizzes := components.NewProgressBar(
		fmt.Sprintf("Quizzes  %3d/%d", rec.QuizzesPassed, rec.TotalQuizzes),
		progress.Ratio(rec.QuizzesPassed, rec.TotalQuizzes), true, width).View()
	return problems + "\n" + quizzes
}

func renderSubjects(rec progress.Record, width int) string {
	names := make([]string, 0, len(rec.SubjectProgress))
	for name := range rec.SubjectProgress {
		names = append(names, name)
	}
	sort.Strings(names)

	labelWidth := 0
	for _, name := range names {
		if len(name) > labelWidth {
			labelWidth = len(name)
		}
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		sp := rec.SubjectProgress[name]
		lines = append(lines, components.NewProgressBar(
			fmt.Sprintf("%-*s %2d/%d", labelWidth, name, sp.Completed, sp.Total),
			sp.Percent(), false, width).View())
	}
	if len(lines) == 0 {
		return theme.Hint.Render("No subjects yet")
	}
	return strings.Join(lines, "\n")
}

func renderRecent(log *activity.Log, now time.Time, width int) string {
	entries := log.Entries()
	if len(entries) == 0 {
		return theme.Hint.Render("Nothing yet. Record your first activity!")
	}
	if len(entries) > recentShown {
		entries = entries[:recentShown]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("%s %s  %s",
			theme.ChartBar.Render(e.Type.Glyph()),
			theme.Body.Render(truncate(e.Title, width-24)),
			theme.Subtitle.Render(relativeDay(e.At, now)))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// relativeDay renders a human day distance on UTC calendar days.
func relativeDay(at, now time.Time) string {
	a := at.UTC()
	n := now.UTC()
	days := int(time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC).
		Sub(time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return a.Format("Jan 2")
	}
}
