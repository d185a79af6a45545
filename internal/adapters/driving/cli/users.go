package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List, search, edit and delete users",
	Long: `Commands for the remote user directory. All of them require a session;
run "userdir login" first.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of users",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

var usersSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search users by name across every page",
	Long: `Search fetches every page of the directory and keeps the users whose
"first last" name contains the query, ignoring case.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersSearch,
}

var usersShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersShow,
}

var usersEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Update a user",
	Long: `Update the name or email of a user. Fields without a flag keep their
current value. Every field must be non-empty.

Example:
  userdir users edit 2 --first-name Janet --email janet@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersEdit,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete [id...]",
	Short: "Delete one or more users",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersListCmd.Flags().IntP("page", "p", 1, "page number")
	usersListCmd.Flags().Bool("json", false, "output as JSON")
	usersSearchCmd.Flags().Bool("json", false, "output as JSON")
	usersShowCmd.Flags().Bool("json", false, "output as JSON")
	usersEditCmd.Flags().String("first-name", "", "new first name")
	usersEditCmd.Flags().String("last-name", "", "new last name")
	usersEditCmd.Flags().String("email", "", "new email")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersSearchCmd)
	usersCmd.AddCommand(usersShowCmd)
	usersCmd.AddCommand(usersEditCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

// pageOutput is the JSON form of a listing.
type pageOutput struct {
	Page       int            `json:"page,omitempty"`
	TotalPages int            `json:"total_pages,omitempty"`
	Query      string         `json:"query,omitempty"`
	Users      []domain.Entry `json:"users"`
}

func runUsersList(cmd *cobra.Command, _ []string) error {
	s, err := requireServices("directory")
	if err != nil {
		return err
	}
	if err := requireSession(cmd, s); err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	if err := s.Directory.SetPage(cmd.Context(), page); err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	view := s.Directory.State()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, pageOutput{Page: view.Page, TotalPages: view.TotalPages, Users: nonNil(view.Displayed)})
	}

	cmd.Printf("Page %d of %d\n\n", view.Page, view.TotalPages)
	printEntries(cmd, view.Displayed)
	return nil
}

func runUsersSearch(cmd *cobra.Command, args []string) error {
	s, err := requireServices("directory")
	if err != nil {
		return err
	}
	if err := requireSession(cmd, s); err != nil {
		return err
	}

	if err := s.Directory.Search(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	view := s.Directory.State()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, pageOutput{Query: view.Query, Users: nonNil(view.Displayed)})
	}

	if view.Mode != domain.ModeSearch {
		cmd.Println("Empty query.")
		return nil
	}
	cmd.Printf("Results: %d users matching %q\n\n", len(view.Displayed), view.Query)
	printEntries(cmd, view.Displayed)
	return nil
}

func runUsersShow(cmd *cobra.Command, args []string) error {
	s, err := requireServices("editor")
	if err != nil {
		return err
	}
	if err := requireSession(cmd, s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	entry, err := s.Editor.Open(cmd.Context(), domain.EditContext{ID: id})
	if err != nil {
		return fmt.Errorf("show failed: %w", err)
	}
	source := s.Editor.SourcePage()
	s.Editor.Cancel()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, entry)
	}
	printEntry(cmd, entry)
	cmd.Printf("  Page:   %d\n", source)
	return nil
}

func runUsersEdit(cmd *cobra.Command, args []string) error {
	s, err := requireServices("editor")
	if err != nil {
		return err
	}
	if err := requireSession(cmd, s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	entry, err := s.Editor.Open(cmd.Context(), domain.EditContext{ID: id})
	if err != nil {
		return fmt.Errorf("edit failed: %w", err)
	}

	fields := domain.FieldsOf(entry)
	flags := cmd.Flags()
	if flags.Changed("first-name") {
		fields.FirstName, _ = flags.GetString("first-name")
	}
	if flags.Changed("last-name") {
		fields.LastName, _ = flags.GetString("last-name")
	}
	if flags.Changed("email") {
		fields.Email, _ = flags.GetString("email")
	}

	updated, err := s.Editor.Submit(cmd.Context(), fields)
	if err != nil {
		s.Editor.Cancel()
		return fmt.Errorf("edit failed: %w", err)
	}
	flushNotifications(cmd, s)
	printEntry(cmd, updated)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	s, err := requireServices("directory")
	if err != nil {
		return err
	}
	if err := requireSession(cmd, s); err != nil {
		return err
	}

	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	for _, id := range ids {
		if err := s.Directory.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete %d failed: %w", id, err)
		}
		cmd.Printf("Deleted user %d\n", id)
		flushNotifications(cmd, s)
	}
	return nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user id %q", raw)
	}
	return id, nil
}

func printEntries(cmd *cobra.Command, entries []domain.Entry) {
	if len(entries) == 0 {
		cmd.Println("No users found.")
		return
	}
	cmd.Printf("%-4s %-24s %s\n", "ID", "NAME", "EMAIL")
	for _, e := range entries {
		cmd.Printf("%-4d %-24s %s\n", e.ID, e.FullName(), e.Email)
	}
}

func printEntry(cmd *cobra.Command, e domain.Entry) {
	cmd.Printf("User %d\n", e.ID)
	cmd.Printf("  Name:   %s\n", e.FullName())
	cmd.Printf("  Email:  %s\n", e.Email)
	if e.Avatar != "" {
		cmd.Printf("  Avatar: %s\n", e.Avatar)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func nonNil(entries []domain.Entry) []domain.Entry {
	if entries == nil {
		return []domain.Entry{}
	}
	return entries
}
