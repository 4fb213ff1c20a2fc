package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game management commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameUpdateCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCreateCmd() *cobra.Command {
	var title, code string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || code == "" {
				return fmt.Errorf("--title and --code are required")
			}

			req := map[string]string{"title": title, "code": code}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Game title (required)")
	cmd.Flags().StringVar(&code, "code", "", "Game code (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newGameUpdateCmd() *cobra.Command {
	var title, code string

	cmd := &cobra.Command{
		Use:   "update <game-id>",
		Short: "Update a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" || code == "" {
				return fmt.Errorf("--title and --code are required")
			}

			req := map[string]string{"title": title, "code": code}
			var result Game

			if err := client.Put("/api/v1/games/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Game title (required)")
	cmd.Flags().StringVar(&code, "code", "", "Game code (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete a game and remove it from all players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OKResult
			if err := client.Delete("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
