package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmate/internal/achievements"
	"github.com/abhisek/mathmate/internal/activity"
	"github.com/abhisek/mathmate/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rec, err := st.LoadRecord(ctx)
		if err != nil {
			return fmt.Errorf("load record: %w", err)
		}
		log := activity.FromEntries(rec.RecentActivity, activity.DefaultCap)
		now := time.Now()

		fmt.Printf("Level %d · %d/%d XP · ⚡ %d day streak\n\n",
			rec.Level, rec.XP, rec.TotalXP, rec.Streak)
		fmt.Printf("Problems solved: %d/%d\n", rec.ProblemsSolved, rec.TotalProblems)
		fmt.Printf("Quizzes passed:  %d/%d\n\n", rec.QuizzesPassed, rec.TotalQuizzes)

		names := make([]string, 0, len(rec.SubjectProgress))
		for name := range rec.SubjectProgress {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sp := rec.SubjectProgress[name]
			fmt.Printf("%-12s %d/%d\n", name, sp.Completed, sp.Total)
		}

		fmt.Println("\nThis week:")
		for _, p := range analytics.WeeklyBuckets(log, now) {
			fmt.Printf("  %s %d\n", p.Label, p.Value)
		}

		fmt.Println("\nActivity breakdown:")
		for _, p := range analytics.Distribution(rec, log) {
			fmt.Printf("  %-14s %d\n", p.Label, p.Value)
		}

		fmt.Println("\nAchievements:")
		for _, a := range achievements.Evaluate(rec) {
			marker := "☆"
			if a.Earned {
				marker = "★"
			}
			fmt.Printf("  %s %s\n", marker, a.Name)
		}
		return nil
	},
}
