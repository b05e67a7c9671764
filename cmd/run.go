package cmd

import (
	"fmt"

	"github.com/abhisek/mathmate/internal/app"
	"github.com/abhisek/mathmate/internal/progress"
	"github.com/spf13/cobra"
)

// runDashboard opens the store, loads the learner's record, and launches
// the TUI.
func runDashboard(cmd *cobra.Command) error {
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

	name, err := st.Profile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	return app.Run(app.Options{
		Aggregator: progress.NewAggregator(rec, st),
		Store:      st,
		Name:       name,
	})
}
