package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the directory",
	Long: `Log in with an email and password. The session token is stored in the
local data directory and used by every other command.

Missing values are prompted for; the password is read without echo.

Example:
  userdir login --email eve.holt@reqres.in`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when empty)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	s, err := requireServices("auth")
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	reader := bufio.NewReader(cmd.InOrStdin())
	if email == "" {
		cmd.Print("Email: ")
		email = readLine(reader)
	}
	if password == "" {
		cmd.Print("Password: ")
		password = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	session, err := s.Auth.Login(cmd.Context(), domain.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s\n", strings.TrimSpace(email))
	if session.ExpiresAt != nil {
		cmd.Printf("Session expires %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	s, err := requireServices("auth")
	if err != nil {
		return err
	}
	if err := s.Auth.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Println("Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	s, err := requireServices("auth")
	if err != nil {
		return err
	}
	session, err := s.Auth.Current(cmd.Context())
	if err != nil {
		cmd.Println("Not logged in")
		return nil
	}

	cmd.Println("Logged in")
	cmd.Printf("  Session: %s\n", session.ID)
	cmd.Printf("  Token:   %s\n", maskToken(session.Token))
	if session.ExpiresAt != nil {
		cmd.Printf("  Expires: %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
	} else {
		cmd.Println("  Expires: never")
	}
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
