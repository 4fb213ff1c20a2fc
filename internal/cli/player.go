package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerUpdateCmd())
	cmd.AddCommand(newPlayerDeleteCmd())
	cmd.AddCommand(newPlayerJoinCmd())
	cmd.AddCommand(newPlayerLeaveCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players"
			if name != "" {
				path += "?name=" + url.QueryEscape(name)
			}

			var result []Player
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by name substring")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player and their joined games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.Get("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerCreateCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{"name": name, "email": email}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Player email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerUpdateCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "update <player-id>",
		Short: "Update a player's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{"name": name, "email": email}
			var result Player

			if err := client.Put("/api/v1/players/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Player email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <player-id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OKResult
			if err := client.Delete("/api/v1/players/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Player deleted")
			return nil
		},
	}
}

func newPlayerJoinCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "join <player-id>",
		Short: "Join a player to a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == "" {
				return fmt.Errorf("--game is required")
			}

			req := map[string]string{"game_id": gameID}
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/join", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (required)")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func newPlayerLeaveCmd() *cobra.Command {
	var gameID, code string

	cmd := &cobra.Command{
		Use:   "leave <player-id>",
		Short: "Remove a player from a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if gameID == "" && code == "" {
				return fmt.Errorf("one of --game or --code is required")
			}

			req := map[string]string{}
			if gameID != "" {
				req["game_id"] = gameID
			} else {
				req["code"] = code
			}
			var result Player

			if err := client.Post("/api/v1/players/"+args[0]+"/leave", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID")
	cmd.Flags().StringVar(&code, "code", "", "Game code")

	return cmd
}
