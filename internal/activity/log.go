package activity

import (
	"iter"
	"time"
)

// DefaultCap is the number of entries the in-memory log retains.
const DefaultCap = 20

// Log is a bounded, append-only record of recent activity, most recent
// first. It retains at most cap entries; older entries survive only in the
// persisted journal.
type Log struct {
	cap     int
	entries []Entry
}

// NewLog creates an empty Log retaining at most cap entries. A cap of zero
// or less falls back to DefaultCap.
func NewLog(cap int) *Log {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Log{cap: cap}
}

// FromEntries builds a Log seeded with existing entries (most recent first),
// trimming to cap.
func FromEntries(entries []Entry, cap int) *Log {
	l := NewLog(cap)
	l.entries = append(l.entries, entries...)
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
	return l
}

// Record prepends e and trims the log to its cap. It returns the updated
// entries, most recent first.
func (l *Log) Record(e Entry) []Entry {
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
	return l.Entries()
}

// Entries returns a copy of the retained entries, most recent first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Predicate filters entries in a Query.
type Predicate func(Entry) bool

// Query returns a restartable sequence of retained entries matching pred,
// most recent first. A nil pred matches everything.
func (l *Log) Query(pred Predicate) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range l.entries {
			if pred != nil && !pred(e) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// ByType matches entries of the given type.
func ByType(t Type) Predicate {
	return func(e Entry) bool { return e.Type == t }
}

// Between matches entries with from <= At < to.
func Between(from, to time.Time) Predicate {
	return func(e Entry) bool {
		return !e.At.Before(from) && e.At.Before(to)
	}
}

// OnDay matches entries that fall on the same UTC calendar day as day.
func OnDay(day time.Time) Predicate {
	y, m, d := day.UTC().Date()
	return func(e Entry) bool {
		ey, em, ed := e.At.UTC().Date()
		return ey == y && em == m && ed == d
	}
}
