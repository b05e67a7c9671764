package progress

import "time"

// UpdateStreak advances the daily engagement streak for the calendar day of
// now (UTC). It is idempotent within a day: the first call on a given day
// applies the transition, every later call is a no-op.
//
// Transitions:
//   - no prior activity, or last active more than one day ago: streak = 1
//   - last active exactly yesterday: streak += 1
//   - last active today: unchanged
//
// It returns true if the record changed.
func (r *Record) UpdateStreak(now time.Time) bool {
	today := now.UTC().Format(DateLayout)
	if r.LastActiveDate == today {
		return false
	}

	if last, err := time.Parse(DateLayout, r.LastActiveDate); err == nil {
		yesterday := now.UTC().AddDate(0, 0, -1).Format(DateLayout)
		if last.Format(DateLayout) == yesterday {
			r.Streak++
			r.LastActiveDate = today
			return true
		}
	}

	// First activity ever, a gap of more than one day, or an unparseable
	// prior date: the streak restarts at 1, not 0, because today counts.
	r.Streak = 1
	r.LastActiveDate = today
	return true
}
