package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmate/internal/activity"
	"github.com/abhisek/mathmate/internal/progress"
)

var (
	recordScore   int
	recordSubject string
)

var recordCmd = &cobra.Command{
	Use:   "record <type> <title>",
	Short: "Record a learning activity",
	Long: `Record a learning activity and update progress.

Types: problem, quiz, visualizer, game.
An explicit --score becomes the XP award; otherwise the type default applies.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		typ := activity.Type(args[0])
		if !typ.Known() {
			fmt.Fprintf(os.Stderr, "warning: unknown activity type %q, recording with default XP\n", args[0])
		}

		var score *int
		if cmd.Flags().Changed("score") {
			if recordScore < 0 {
				return fmt.Errorf("score must not be negative")
			}
			score = &recordScore
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rec, err := st.LoadRecord(ctx)
		if err != nil {
			return fmt.Errorf("load record: %w", err)
		}

		agg := progress.NewAggregator(rec, st)
		now := time.Now()
		if _, err := agg.UpdateStreak(ctx, now); err != nil {
			return err
		}

		entry := activity.New(typ, args[1], recordSubject, score, now)
		updated, err := agg.Apply(ctx, entry)
		if err != nil {
			return err
		}

		fmt.Printf("Recorded %s %q (+%d XP)\n", typ.DisplayName(), entry.Title, entry.XP())
		fmt.Printf("Level %d · %d/%d XP · ⚡ %d day streak\n",
			updated.Level, updated.XP, updated.TotalXP, updated.Streak)
		return nil
	},
}

func init() {
	recordCmd.Flags().IntVar(&recordScore, "score", 0, "XP awarded for this activity (overrides the type default)")
	recordCmd.Flags().StringVar(&recordSubject, "subject", "", "Subject this activity belongs to (e.g. algebra)")
}
