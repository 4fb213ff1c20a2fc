package cli

import (
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the server with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OKResult

			if err := client.Post("/api/v1/seed", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Demo data seeded")
			return nil
		},
	}
}
