package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/mathmate/internal/activity"
)

type memorySink struct {
	saved    []Record
	appended []activity.Entry
	saveErr  error
}

func (m *memorySink) SaveRecord(_ context.Context, rec Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, rec.Clone())
	return nil
}

func (m *memorySink) AppendJournal(_ context.Context, e activity.Entry) error {
	m.appended = append(m.appended, e)
	return nil
}

func TestApplyQuiz(t *testing.T) {
	agg := NewAggregator(Default(), nil)
	ctx := context.Background()

	score := 150
	at := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC) // a Tuesday
	rec, err := agg.Apply(ctx, activity.New(activity.TypeQuiz, "Decimals quiz", "fractions", &score, at))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if rec.XP != 150 {
		t.Errorf("xp = %d, want 150", rec.XP)
	}
	if rec.QuizzesPassed != 1 {
		t.Errorf("quizzes passed = %d, want 1", rec.QuizzesPassed)
	}
	if rec.ProblemsSolved != 0 {
		t.Errorf("problems solved = %d, want 0", rec.ProblemsSolved)
	}
	if len(rec.RecentActivity) != 1 || rec.RecentActivity[0].Title != "Decimals quiz" {
		t.Errorf("recent activity head = %+v, want the quiz entry", rec.RecentActivity)
	}
	if rec.Level != 1 {
		t.Errorf("level = %d, want 1", rec.Level)
	}
	if rec.WeeklyStats["Tue"] != 1 {
		t.Errorf("Tue bucket = %d, want 1", rec.WeeklyStats["Tue"])
	}
	if sp := rec.SubjectProgress["fractions"]; sp.Completed != 1 {
		t.Errorf("fractions completed = %d, want 1", sp.Completed)
	}
}

func TestApplyLevelsUp(t *testing.T) {
	agg := NewAggregator(Default(), nil)
	ctx := context.Background()

	// 4 quizzes at 150 = 600 XP, past the 500 threshold.
	var rec Record
	for i := 0; i < 4; i++ {
		var err error
		rec, err = agg.Apply(ctx, activity.New(activity.TypeQuiz, "quiz", "", nil, time.Now()))
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}

	if rec.XP != 600 {
		t.Errorf("xp = %d, want 600", rec.XP)
	}
	if rec.Level != 2 {
		t.Errorf("level = %d, want 2", rec.Level)
	}
	if rec.TotalXP != TierCeiling(2) {
		t.Errorf("total xp = %d, want %d", rec.TotalXP, TierCeiling(2))
	}
	if rec.XP > rec.TotalXP {
		t.Errorf("xp %d exceeds total %d below the cap", rec.XP, rec.TotalXP)
	}
}

func TestApplyUnknownType(t *testing.T) {
	agg := NewAggregator(Default(), nil)
	rec, err := agg.Apply(context.Background(),
		activity.New(activity.Type("mystery"), "???", "", nil, time.Now()))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if rec.XP != 50 {
		t.Errorf("xp = %d, want default 50", rec.XP)
	}
	if rec.ProblemsSolved != 0 || rec.QuizzesPassed != 0 {
		t.Error("unknown types must not touch counter pairs")
	}
	if len(rec.RecentActivity) != 1 {
		t.Error("unknown types still land in the activity log")
	}
}

func TestCountersNeverExceedTotals(t *testing.T) {
	rec := Default()
	rec.TotalProblems = 3
	rec.TotalQuizzes = 2
	agg := NewAggregator(rec, nil)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		agg.Apply(ctx, activity.New(activity.TypeProblem, "p", "algebra", nil, time.Now()))
		agg.Apply(ctx, activity.New(activity.TypeQuiz, "q", "geometry", nil, time.Now()))
	}

	snap := agg.Snapshot()
	if err := snap.Validate(); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
	if snap.ProblemsSolved != 3 {
		t.Errorf("problems solved = %d, want clamped at 3", snap.ProblemsSolved)
	}
	if snap.QuizzesPassed != 2 {
		t.Errorf("quizzes passed = %d, want clamped at 2", snap.QuizzesPassed)
	}
	for name, sp := range snap.SubjectProgress {
		if sp.Completed > sp.Total {
			t.Errorf("subject %s: completed %d > total %d", name, sp.Completed, sp.Total)
		}
	}
}

func TestApplyNewSubject(t *testing.T) {
	agg := NewAggregator(Default(), nil)
	rec, err := agg.Apply(context.Background(),
		activity.New(activity.TypeProblem, "p", "calculus", nil, time.Now()))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	sp, ok := rec.SubjectProgress["calculus"]
	if !ok {
		t.Fatal("expected a new subject bucket")
	}
	if sp.Completed != 1 || sp.Total != DefaultSubjectTotal {
		t.Errorf("subject = %+v, want {1 %d}", sp, DefaultSubjectTotal)
	}
}

func TestWeeklyStatsRotate(t *testing.T) {
	agg := NewAggregator(Default(), nil)
	ctx := context.Background()

	// Week one: Wednesday.
	agg.Apply(ctx, activity.New(activity.TypeGame, "g", "", nil,
		time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)))
	// Next week: Monday. The old buckets rotate out.
	rec, _ := agg.Apply(ctx, activity.New(activity.TypeGame, "g", "", nil,
		time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)))

	if rec.WeeklyStats["Wed"] != 0 {
		t.Errorf("Wed bucket = %d, want 0 after rotation", rec.WeeklyStats["Wed"])
	}
	if rec.WeeklyStats["Mon"] != 1 {
		t.Errorf("Mon bucket = %d, want 1", rec.WeeklyStats["Mon"])
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	agg := NewAggregator(Default(), nil)
	snap := agg.Snapshot()
	snap.SubjectProgress["algebra"] = SubjectProgress{Completed: 99, Total: 99}
	snap.XP = 9999

	fresh := agg.Snapshot()
	if fresh.XP != 0 || fresh.SubjectProgress["algebra"].Completed != 0 {
		t.Error("mutating a snapshot must not affect the aggregator's record")
	}
}

func TestApplyPersists(t *testing.T) {
	sink := &memorySink{}
	agg := NewAggregator(Default(), sink)

	e := activity.New(activity.TypeProblem, "p", "", nil, time.Now())
	if _, err := agg.Apply(context.Background(), e); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if len(sink.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(sink.saved))
	}
	if len(sink.appended) != 1 || sink.appended[0].ID != e.ID {
		t.Fatalf("journal got %d entries, want the applied one", len(sink.appended))
	}
}

func TestApplyStorageFailureKeepsRecord(t *testing.T) {
	sink := &memorySink{saveErr: errors.New("disk gone")}
	agg := NewAggregator(Default(), sink)

	rec, err := agg.Apply(context.Background(),
		activity.New(activity.TypeQuiz, "q", "", nil, time.Now()))
	if err == nil {
		t.Fatal("expected a storage error")
	}
	// The returned and retained records still reflect the mutation.
	if rec.XP != 150 {
		t.Errorf("returned xp = %d, want 150", rec.XP)
	}
	if agg.Snapshot().XP != 150 {
		t.Errorf("retained xp = %d, want 150", agg.Snapshot().XP)
	}
}

func TestUpdateStreakPersistsOnlyOnChange(t *testing.T) {
	sink := &memorySink{}
	agg := NewAggregator(Default(), sink)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	if _, err := agg.UpdateStreak(ctx, now); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := agg.UpdateStreak(ctx, now.Add(time.Hour)); err != nil {
		t.Fatalf("second update: %v", err)
	}

	if len(sink.saved) != 1 {
		t.Errorf("saved %d times, want 1 (same-day update is a no-op)", len(sink.saved))
	}
}

func TestXPNeverDecreases(t *testing.T) {
	agg := NewAggregator(Default(), nil)
	ctx := context.Background()
	prev := 0

	types := []activity.Type{activity.TypeProblem, activity.TypeQuiz, activity.TypeVisualizer, activity.TypeGame}
	for i := 0; i < 20; i++ {
		rec, err := agg.Apply(ctx, activity.New(types[i%len(types)], "t", "", nil, time.Now()))
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
		if rec.XP < prev {
			t.Fatalf("xp decreased from %d to %d", prev, rec.XP)
		}
		prev = rec.XP
	}
}
