package account

import (
	"errors"
	"fmt"
	"io"

	"github.com/crucial707/task-api/cmd/cli/config"
	"github.com/crucial707/task-api/cmd/cli/output"
	"github.com/crucial707/task-api/internal/dto"
	"github.com/spf13/cobra"
)

// InitAccount registers the account command group.
func InitAccount(rootCmd *cobra.Command) {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Show and edit your profile",
	}
	accountCmd.AddCommand(showCmd(), updateCmd(), passwordCmd())
	rootCmd.AddCommand(accountCmd)
}

func showCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			user, err := c.Account(cmd.Context())
			if err != nil {
				return err
			}
			return printUser(cmd.OutOrStdout(), user, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func updateCmd() *cobra.Command {
	var name string
	var avatar int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your name and, optionally, avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			var avatarID *int
			if cmd.Flags().Changed("avatar") {
				avatarID = &avatar
			}
			user, err := c.UpdateAccount(cmd.Context(), name, avatarID)
			if err != nil {
				return err
			}
			return printUser(cmd.OutOrStdout(), user, false)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New display name (2-50 characters)")
	cmd.Flags().IntVar(&avatar, "avatar", 0, "Avatar id (1-10)")
	return cmd
}

func passwordCmd() *cobra.Command {
	var oldPassword, newPassword string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if oldPassword == "" || newPassword == "" {
				return errors.New("--old and --new are required")
			}
			c, err := config.AuthedClient()
			if err != nil {
				return err
			}
			if err := c.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPassword, "old", "", "Current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "New password (at least 6 characters)")
	return cmd
}

func printUser(w io.Writer, u *dto.UserResponse, asJSON bool) error {
	if asJSON {
		return output.RenderJSON(w, u)
	}
	output.RenderTable(w,
		[]string{"ID", "Name", "Email", "Avatar", "Created"},
		[][]interface{}{{u.ID, u.Name, u.Email, u.AvatarID, u.CreatedAt.Format("2006-01-02")}},
	)
	return nil
}
