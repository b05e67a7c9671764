package progress

import (
	"fmt"
	"time"

	"github.com/abhisek/mathmate/internal/activity"
)

// DateLayout is the calendar-day format used for streak and week tracking.
// All calendar arithmetic is done on UTC days.
const DateLayout = "2006-01-02"

// Curriculum sizing defaults. Totals are denominators for the dashboard's
// completion bars; completed counters are clamped so they never exceed them.
const (
	DefaultTotalProblems = 100
	DefaultTotalQuizzes  = 20
	DefaultSubjectTotal  = 10
)

// Weekdays lists the weekly-stats bucket labels in display order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// SubjectProgress tracks completion within one subject.
type SubjectProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns the completion ratio in [0, 1], treating a zero total as
// zero rather than dividing.
func (s SubjectProgress) Percent() float64 {
	return Ratio(s.Completed, s.Total)
}

// Record is the single source of truth for a learner's progress. All
// mutation goes through the Aggregator; everyone else reads snapshots.
type Record struct {
	XP             int    `json:"xp"`
	TotalXP        int    `json:"total_xp"`
	Level          int    `json:"level"`
	Streak         int    `json:"streak"`
	LastActiveDate string `json:"last_active_date,omitempty"`

	ProblemsSolved int `json:"problems_solved"`
	TotalProblems  int `json:"total_problems"`
	QuizzesPassed  int `json:"quizzes_passed"`
	TotalQuizzes   int `json:"total_quizzes"`

	SubjectProgress map[string]SubjectProgress `json:"subject_progress"`

	// WeeklyStats counts activities per weekday label for the week starting
	// at WeekStart (the Monday of the current UTC week). The map is reset
	// when an activity lands in a later week.
	WeeklyStats map[string]int `json:"weekly_stats"`
	WeekStart   string         `json:"week_start,omitempty"`

	RecentActivity []activity.Entry `json:"recent_activity"`
}

// Default returns the zeroed record a first-time learner starts from.
func Default() Record {
	return Record{
		XP:            0,
		TotalXP:       TierCeiling(1),
		Level:         1,
		Streak:        0,
		TotalProblems: DefaultTotalProblems,
		TotalQuizzes:  DefaultTotalQuizzes,
		SubjectProgress: map[string]SubjectProgress{
			"algebra":    {Completed: 0, Total: 12},
			"geometry":   {Completed: 0, Total: 10},
			"fractions":  {Completed: 0, Total: 8},
			"statistics": {Completed: 0, Total: 6},
		},
		WeeklyStats:    zeroWeek(),
		RecentActivity: nil,
	}
}

func zeroWeek() map[string]int {
	m := make(map[string]int, len(Weekdays))
	for _, d := range Weekdays {
		m[d] = 0
	}
	return m
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	out.SubjectProgress = make(map[string]SubjectProgress, len(r.SubjectProgress))
	for k, v := range r.SubjectProgress {
		out.SubjectProgress[k] = v
	}
	out.WeeklyStats = make(map[string]int, len(r.WeeklyStats))
	for k, v := range r.WeeklyStats {
		out.WeeklyStats[k] = v
	}
	out.RecentActivity = make([]activity.Entry, len(r.RecentActivity))
	copy(out.RecentActivity, r.RecentActivity)
	return out
}

// XPPercent returns progress toward the current tier ceiling in [0, 1].
func (r Record) XPPercent() float64 {
	p := Ratio(r.XP, r.TotalXP)
	if p > 1 {
		p = 1
	}
	return p
}

// Validate checks the invariants every well-formed record satisfies. A
// persisted record failing these checks is treated as malformed and replaced
// with Default().
func (r Record) Validate() error {
	if r.XP < 0 {
		return fmt.Errorf("xp %d is negative", r.XP)
	}
	if r.TotalXP <= 0 {
		return fmt.Errorf("total_xp %d must be positive", r.TotalXP)
	}
	if r.Level < 1 {
		return fmt.Errorf("level %d must be at least 1", r.Level)
	}
	if r.Streak < 0 {
		return fmt.Errorf("streak %d is negative", r.Streak)
	}
	if r.LastActiveDate != "" {
		if _, err := time.Parse(DateLayout, r.LastActiveDate); err != nil {
			return fmt.Errorf("last_active_date %q: %w", r.LastActiveDate, err)
		}
	}
	if r.WeekStart != "" {
		if _, err := time.Parse(DateLayout, r.WeekStart); err != nil {
			return fmt.Errorf("week_start %q: %w", r.WeekStart, err)
		}
	}
	if err := checkPair("problems", r.ProblemsSolved, r.TotalProblems); err != nil {
		return err
	}
	if err := checkPair("quizzes", r.QuizzesPassed, r.TotalQuizzes); err != nil {
		return err
	}
	for name, sp := range r.SubjectProgress {
		if err := checkPair("subject "+name, sp.Completed, sp.Total); err != nil {
			return err
		}
	}
	for day, count := range r.WeeklyStats {
		if count < 0 {
			return fmt.Errorf("weekly stat %s is negative", day)
		}
	}
	return nil
}

func checkPair(name string, completed, total int) error {
	if completed < 0 {
		return fmt.Errorf("%s completed %d is negative", name, completed)
	}
	if total <= 0 {
		return fmt.Errorf("%s total %d must be positive", name, total)
	}
	if completed > total {
		return fmt.Errorf("%s completed %d exceeds total %d", name, completed, total)
	}
	return nil
}

// Ratio divides completed by total, guarding the zero denominator as 0.
func Ratio(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

// weekStart returns the Monday of t's UTC week, formatted with DateLayout.
func weekStart(t time.Time) string {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -offset)
	return monday.Format(DateLayout)
}
