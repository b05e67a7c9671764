package progress

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/mathmate/internal/activity"
)

// Sink persists progress state. The store implements it; a nil Sink keeps
// everything in memory (tests, dry runs).
type Sink interface {
	// SaveRecord overwrites the persisted record. Last writer wins.
	SaveRecord(ctx context.Context, rec Record) error

	// AppendJournal appends an entry to the durable activity journal.
	AppendJournal(ctx context.Context, e activity.Entry) error
}

// Aggregator owns the progress record and is the sole mutation surface for
// it. Reads never block on storage and never fail; mutations persist through
// the sink and report storage errors while keeping the in-memory record as
// last-known-good.
type Aggregator struct {
	mu   sync.Mutex
	rec  Record
	log  *activity.Log
	sink Sink
}

// NewAggregator builds an Aggregator around an existing record. The
// in-memory activity log is seeded from the record's recent activity.
func NewAggregator(rec Record, sink Sink) *Aggregator {
	return &Aggregator{
		rec:  rec.Clone(),
		log:  activity.FromEntries(rec.RecentActivity, activity.DefaultCap),
		sink: sink,
	}
}

// Snapshot returns a deep copy of the current record. It never blocks on
// storage and never fails.
func (a *Aggregator) Snapshot() Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rec.Clone()
}

// Log returns a copy of the retained recent activity as a queryable log.
func (a *Aggregator) Log() *activity.Log {
	a.mu.Lock()
	defer a.mu.Unlock()
	return activity.FromEntries(a.log.Entries(), activity.DefaultCap)
}

// Apply records a learning activity: appends it to the log and journal,
// bumps the matching counters and subject completion, adds XP, and
// recomputes the level. It returns the updated snapshot.
//
// A storage failure is reported after the in-memory record has been
// updated, so callers keep a usable last-known-good state.
func (a *Aggregator) Apply(ctx context.Context, e activity.Entry) (Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.rec.RecentActivity = a.log.Record(e)
	a.bumpCounters(e)
	a.bumpSubject(e)
	a.bumpWeek(e.At)

	a.rec.XP += e.XP()
	a.rec.Level = LevelForXP(a.rec.XP)
	a.rec.TotalXP = TierCeiling(a.rec.Level)

	if err := a.persist(ctx); err != nil {
		return a.rec.Clone(), err
	}
	if a.sink != nil {
		if err := a.sink.AppendJournal(ctx, e); err != nil {
			return a.rec.Clone(), fmt.Errorf("append journal: %w", err)
		}
	}
	return a.rec.Clone(), nil
}

// UpdateStreak runs the daily streak transition for now and persists the
// record if it changed. Safe to call any number of times per day.
func (a *Aggregator) UpdateStreak(ctx context.Context, now time.Time) (Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.rec.UpdateStreak(now) {
		return a.rec.Clone(), nil
	}
	if err := a.persist(ctx); err != nil {
		return a.rec.Clone(), err
	}
	return a.rec.Clone(), nil
}

func (a *Aggregator) persist(ctx context.Context) error {
	if a.sink == nil {
		return nil
	}
	if err := a.sink.SaveRecord(ctx, a.rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (a *Aggregator) bumpCounters(e activity.Entry) {
	switch e.Type {
	case activity.TypeProblem:
		if a.rec.ProblemsSolved < a.rec.TotalProblems {
			a.rec.ProblemsSolved++
		}
	case activity.TypeQuiz:
		if a.rec.QuizzesPassed < a.rec.TotalQuizzes {
			a.rec.QuizzesPassed++
		}
	}
	// Visualizer, game, and unknown types earn XP and journal entries but
	// have no counter pair.
}

func (a *Aggregator) bumpSubject(e activity.Entry) {
	if e.Subject == "" {
		return
	}
	if a.rec.SubjectProgress == nil {
		a.rec.SubjectProgress = make(map[string]SubjectProgress)
	}
	sp, ok := a.rec.SubjectProgress[e.Subject]
	if !ok {
		sp = SubjectProgress{Total: DefaultSubjectTotal}
	}
	if sp.Completed < sp.Total {
		sp.Completed++
	}
	a.rec.SubjectProgress[e.Subject] = sp
}

// bumpWeek counts the activity in its weekday bucket, rotating the buckets
// when the activity lands in a different week than the stored one.
func (a *Aggregator) bumpWeek(at time.Time) {
	ws := weekStart(at)
	if a.rec.WeekStart != ws || a.rec.WeeklyStats == nil {
		a.rec.WeeklyStats = zeroWeek()
		a.rec.WeekStart = ws
	}
	a.rec.WeeklyStats[at.UTC().Format("Mon")]++
}
