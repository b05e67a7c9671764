package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile [name]",
	Short: "Show or set the learner's display name",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if len(args) == 0 {
			name, err := st.Profile(ctx)
			if err != nil {
				return err
			}
			if name == "" {
				fmt.Println("No name set. Run: mathmate profile <name>")
				return nil
			}
			fmt.Println(name)
			return nil
		}

		name := strings.Join(args, " ")
		if err := st.SetProfile(ctx, name); err != nil {
			return err
		}
		fmt.Printf("Hello, %s!\n", name)
		return nil
	},
}
