package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathmate/internal/activity"
	"github.com/abhisek/mathmate/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadRecordEmpty(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.LoadRecord(context.Background())
	require.NoError(t, err)
	assert.Equal(t, progress.Default(), rec)
}

func TestRecordRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := progress.Default()
	rec.XP = 650
	rec.TotalXP = progress.TierCeiling(2)
	rec.Level = 2
	rec.Streak = 4
	rec.LastActiveDate = "2024-03-05"
	rec.ProblemsSolved = 3
	rec.QuizzesPassed = 2
	rec.SubjectProgress["algebra"] = progress.SubjectProgress{Completed: 3, Total: 12}
	rec.WeeklyStats["Tue"] = 5
	rec.WeekStart = "2024-03-04"

	score := 150
	entry := activity.New(activity.TypeQuiz, "Decimals quiz", "fractions", &score,
		time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC))
	rec.RecentActivity = []activity.Entry{entry}

	require.NoError(t, s.SaveRecord(ctx, rec))

	got, err := s.LoadRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec.XP, got.XP)
	assert.Equal(t, rec.Level, got.Level)
	assert.Equal(t, rec.Streak, got.Streak)
	assert.Equal(t, rec.LastActiveDate, got.LastActiveDate)
	assert.Equal(t, rec.SubjectProgress, got.SubjectProgress)
	assert.Equal(t, rec.WeeklyStats, got.WeeklyStats)
	require.Len(t, got.RecentActivity, 1)
	assert.Equal(t, entry.ID, got.RecentActivity[0].ID)
	require.NotNil(t, got.RecentActivity[0].Score)
	assert.Equal(t, 150, *got.RecentActivity[0].Score)
	assert.True(t, entry.At.Equal(got.RecentActivity[0].At))
}

func TestLoadRecordMalformedJSONResets(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO record (id, updated_at, data) VALUES (1, ?, ?)`,
		time.Now().Format(time.RFC3339), `{"xp": "lots"}`)
	require.NoError(t, err)

	rec, err := s.LoadRecord(ctx)
	require.NoError(t, err, "malformed record must not fail the session")
	assert.Equal(t, progress.Default(), rec)

	// The reset was persisted: a second load succeeds cleanly.
	rec, err = s.LoadRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.Default(), rec)
}

func TestLoadRecordInvariantViolationResets(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bad := progress.Default()
	require.NoError(t, s.SaveRecord(ctx, bad))

	// Corrupt the stored document so solved exceeds total, which passes the
	// shape schema but fails the invariant check.
	_, err := s.db.ExecContext(ctx, `
		UPDATE record SET data = json_set(data, '$.problems_solved', 999) WHERE id = 1
	`)
	require.NoError(t, err)

	rec, err := s.LoadRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.ProblemsSolved, "invariant-violating record resets to default")
}

func TestLastWriterWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := progress.Default()
	a.XP = 100
	b := progress.Default()
	b.XP = 200

	require.NoError(t, s.SaveRecord(ctx, a))
	require.NoError(t, s.SaveRecord(ctx, b))

	got, err := s.LoadRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200, got.XP)
}

func TestJournalAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		typ := activity.TypeProblem
		if i%2 == 1 {
			typ = activity.TypeQuiz
		}
		e := activity.New(typ, "entry", "algebra", nil, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.AppendJournal(ctx, e))
	}

	all, err := s.QueryJournal(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	// Newest first, strictly increasing sequence going back.
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].Seq, all[i].Seq)
	}

	quizzes, err := s.QueryJournal(ctx, QueryOpts{Type: activity.TypeQuiz})
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)

	limited, err := s.QueryJournal(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	windowed, err := s.QueryJournal(ctx, QueryOpts{From: base.Add(time.Hour), To: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, windowed, 2)
}

func TestJournalScoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	score := 88
	scored := activity.New(activity.TypeGame, "scored", "", &score, time.Now())
	unscored := activity.New(activity.TypeGame, "unscored", "", nil, time.Now())
	require.NoError(t, s.AppendJournal(ctx, scored))
	require.NoError(t, s.AppendJournal(ctx, unscored))

	got, err := s.QueryJournal(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Nil(t, got[0].Entry.Score, "newest entry is the unscored one")
	require.NotNil(t, got[1].Entry.Score)
	assert.Equal(t, 88, *got[1].Entry.Score)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := progress.Default()
	rec.XP = 500
	require.NoError(t, s.SaveRecord(ctx, rec))
	require.NoError(t, s.AppendJournal(ctx, activity.New(activity.TypeProblem, "p", "", nil, time.Now())))

	require.NoError(t, s.Reset(ctx))

	got, err := s.LoadRecord(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.Default(), got)

	rows, err := s.QueryJournal(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	name, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", name)

	require.NoError(t, s.SetProfile(ctx, "Ada"))
	require.NoError(t, s.SetProfile(ctx, "Ada Lovelace"))

	name, err = s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)
}
