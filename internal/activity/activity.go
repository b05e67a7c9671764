package activity

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a learning activity.
type Type string

const (
	TypeProblem    Type = "problem"
	TypeQuiz       Type = "quiz"
	TypeVisualizer Type = "visualizer"
	TypeGame       Type = "game"
)

// Known returns true if t is one of the defined activity types.
func (t Type) Known() bool {
	switch t {
	case TypeProblem, TypeQuiz, TypeVisualizer, TypeGame:
		return true
	}
	return false
}

// DefaultXP returns the XP awarded for an activity of this type when no
// explicit score was recorded. Unknown types fall back to the visualizer
// baseline rather than erroring.
func (t Type) DefaultXP() int {
	switch t {
	case TypeProblem:
		return 100
	case TypeQuiz:
		return 150
	case TypeVisualizer:
		return 50
	case TypeGame:
		return 75
	default:
		return 50
	}
}

// DisplayName returns the human-readable name for the type.
func (t Type) DisplayName() string {
	switch t {
	case TypeProblem:
		return "Problem"
	case TypeQuiz:
		return "Quiz"
	case TypeVisualizer:
		return "Visualizer"
	case TypeGame:
		return "Game"
	default:
		return "Activity"
	}
}

// Glyph returns the single-rune marker shown next to journal entries.
func (t Type) Glyph() string {
	switch t {
	case TypeProblem:
		return "◆"
	case TypeQuiz:
		return "▣"
	case TypeVisualizer:
		return "∿"
	case TypeGame:
		return "♟"
	default:
		return "•"
	}
}

// Entry is a single recorded learning activity. Entries are immutable once
// recorded; corrections append a compensating entry instead of editing
// history.
type Entry struct {
	ID      string    `json:"id"`
	Type    Type      `json:"type"`
	Title   string    `json:"title"`
	Subject string    `json:"subject,omitempty"`
	Score   *int      `json:"score,omitempty"`
	At      time.Time `json:"at"`
}

// New creates an Entry with a fresh ID. score may be nil for unscored
// activities.
func New(typ Type, title, subject string, score *int, at time.Time) Entry {
	return Entry{
		ID:      uuid.NewString(),
		Type:    typ,
		Title:   title,
		Subject: subject,
		Score:   score,
		At:      at,
	}
}

// XP returns the experience points attributable to this entry: the recorded
// score when present, otherwise the type default.
func (e Entry) XP() int {
	if e.Score != nil {
		return *e.Score
	}
	return e.Type.DefaultXP()
}
