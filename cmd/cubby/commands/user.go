package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cubbyhole/cubby/internal/cli/output"
	"github.com/cubbyhole/cubby/internal/cli/prompt"
	"github.com/cubbyhole/cubby/pkg/config"
	"github.com/cubbyhole/cubby/pkg/models"
	"github.com/cubbyhole/cubby/pkg/store"
)

var userDeleteForce bool

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long: `Manage Cubby user accounts directly against the metadata store.

The server does not need to be running. Deleting a user does not remove
their files; use the API for that before removing the account.`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user (prompts for password)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all users",
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete <username>",
	Aliases: []string{"remove"},
	Short:   "Delete a user",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserDelete,
}

func init() {
	userDeleteCmd.Flags().BoolVar(&userDeleteForce, "force", false, "Skip confirmation prompt")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
}

// openStore loads the configuration and connects to the metadata store.
func openStore() (store.Store, error) {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return nil, err
	}

	s, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata store: %w", err)
	}
	return s, nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	username := args[0]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	password, err := prompt.NewPassword()
	if err != nil {
		if prompt.IsAborted(err) {
			return nil
		}
		return err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := user.Validate(); err != nil {
		return err
	}

	if _, err := s.CreateUser(context.Background(), user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %q created\n", username)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	users, err := s.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users found. Create one with: cubby user add <username>")
		return nil
	}

	table := output.NewTableData("USERNAME", "CREATED", "LAST LOGIN")
	for _, u := range users {
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(time.RFC3339)
		}
		table.AddRow(u.Username, u.CreatedAt.Format(time.RFC3339), lastLogin)
	}
	return output.PrintTable(os.Stdout, table)
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	username := args[0]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	if _, err := s.GetUser(ctx, username); err != nil {
		return fmt.Errorf("user %q not found", username)
	}

	ok, err := prompt.ConfirmWithForce(fmt.Sprintf("Delete user %q", username), userDeleteForce)
	if err != nil {
		if prompt.IsAborted(err) {
			return nil
		}
		return err
	}
	if !ok {
		fmt.Println("Aborted")
		return nil
	}

	if err := s.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User %q deleted\n", username)
	return nil
}
