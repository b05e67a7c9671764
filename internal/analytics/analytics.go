// Package analytics derives chart-ready views from the activity log. All
// day bucketing uses UTC calendar days.
package analytics

import (
	"time"

	"github.com/abhisek/mathmate/internal/activity"
	"github.com/abhisek/mathmate/internal/progress"
)

// Point is one labelled chart value.
type Point struct {
	Label string
	Value int
}

// XPGrowthWindow is the default trailing window for the XP growth chart.
const XPGrowthWindow = 6

// WeeklyBuckets counts activities per weekday over the trailing 7 days
// ending at now, one bucket per weekday label in Mon..Sun order. Days with
// no activity report 0.
func WeeklyBuckets(log *activity.Log, now time.Time) []Point {
	from := midnightUTC(now).AddDate(0, 0, -6)
	to := midnightUTC(now).AddDate(0, 0, 1)

	counts := make(map[string]int, len(progress.Weekdays))
	for e := range log.Query(activity.Between(from, to)) {
		counts[e.At.UTC().Format("Mon")]++
	}

	out := make([]Point, 0, len(progress.Weekdays))
	for _, day := range progress.Weekdays {
		out = append(out, Point{Label: day, Value: counts[day]})
	}
	return out
}

// XPGrowth sums XP per calendar day for each of the trailing windowDays days
// ending at now, oldest first. Every day appears exactly once; days with no
// activity report 0. XP uses the same score-or-default rule as the
// aggregator.
func XPGrowth(log *activity.Log, windowDays int, now time.Time) []Point {
	if windowDays <= 0 {
		return nil
	}

	out := make([]Point, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := midnightUTC(now).AddDate(0, 0, -i)

		xp := 0
		for e := range log.Query(activity.OnDay(day)) {
			xp += e.XP()
		}
		out = append(out, Point{Label: day.Format("Mon, Jan 2"), Value: xp})
	}
	return out
}

// Distribution breaks down learning activity by kind for the pie-style
// chart: counter totals for problems and quizzes, log counts for the rest.
func Distribution(rec progress.Record, log *activity.Log) []Point {
	games := 0
	for range log.Query(activity.ByType(activity.TypeGame)) {
		games++
	}
	visualizations := 0
	for range log.Query(activity.ByType(activity.TypeVisualizer)) {
		visualizations++
	}

	return []Point{
		{Label: "Problems", Value: rec.ProblemsSolved},
		{Label: "Quizzes", Value: rec.QuizzesPassed},
		{Label: "Games", Value: games},
		{Label: "Visualizations", Value: visualizations},
	}
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
