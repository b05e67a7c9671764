// Package achievements evaluates fixed milestone badges against a progress
// record. Earned status is always derived from the record, never stored
// authoritatively, so it cannot drift from the underlying counters.
package achievements

import "github.com/abhisek/mathmate/internal/progress"

// Achievement is one badge with its derived earned status.
type Achievement struct {
	Name   string `json:"name"`
	Earned bool   `json:"earned"`
}

// Definition pairs a badge with its milestone predicate.
type Definition struct {
	Name        string
	Description string
	Earned      func(progress.Record) bool
}

// Definitions is the fixed badge table, in display order.
var Definitions = []Definition{
	{
		Name:        "First Steps",
		Description: "Record your first activity",
		Earned:      func(r progress.Record) bool { return r.XP > 0 },
	},
	{
		Name:        "Quiz Rookie",
		Description: "Pass your first quiz",
		Earned:      func(r progress.Record) bool { return r.QuizzesPassed >= 1 },
	},
	{
		Name:        "Problem Tamer",
		Description: "Solve 10 problems",
		Earned:      func(r progress.Record) bool { return r.ProblemsSolved >= 10 },
	},
	{
		Name:        "Week Warrior",
		Description: "Keep a 7-day streak",
		Earned:      func(r progress.Record) bool { return r.Streak >= 7 },
	},
	{
		Name:        "Quiz Master",
		Description: "Pass 10 quizzes",
		Earned:      func(r progress.Record) bool { return r.QuizzesPassed >= 10 },
	},
	{
		Name:        "Rising Star",
		Description: "Earn 1,000 XP",
		Earned:      func(r progress.Record) bool { return r.XP >= 1000 },
	},
	{
		Name:        "High Five",
		Description: "Reach level 5",
		Earned:      func(r progress.Record) bool { return r.Level >= 5 },
	},
	{
		Name:        "Subject Scholar",
		Description: "Complete every exercise in a subject",
		Earned: func(r progress.Record) bool {
			for _, sp := range r.SubjectProgress {
				if sp.Total > 0 && sp.Completed >= sp.Total {
					return true
				}
			}
			return false
		},
	},
	{
		Name:        "Marathoner",
		Description: "Keep a 30-day streak",
		Earned:      func(r progress.Record) bool { return r.Streak >= 30 },
	},
}

// Evaluate runs every definition against the record and returns the badges
// in definition order. Pure and deterministic for a given record.
func Evaluate(rec progress.Record) []Achievement {
	out := make([]Achievement, len(Definitions))
	for i, def := range Definitions {
		out[i] = Achievement{Name: def.Name, Earned: def.Earned(rec)}
	}
	return out
}
