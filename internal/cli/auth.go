package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/campushq/schoolapi/internal/config"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the token pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if loginUsername == "" {
			fmt.Fprint(os.Stderr, "Username: ")
			if _, err := fmt.Scanln(&loginUsername); err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
		}
		password := os.Getenv("SCHOOLCTL_PASSWORD")
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			pw, err := readPassword()
			if err != nil {
				return err
			}
			password = pw
		}

		session, err := e.auth.Login(cmd.Context(), loginUsername, password)
		if err != nil {
			return runtimeErr(fmt.Errorf("login failed: %w", err))
		}

		e.cfg.AccessToken = session.Token.AccessToken
		e.cfg.RefreshToken = session.Token.RefreshToken
		if err := config.Save(e.cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n", session.User.FullName(), session.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Invalidate the refresh token and forget stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if e.cfg.RefreshToken != "" {
			// Best effort: server-side blacklisting can fail if the token
			// already expired, but local credentials are dropped regardless.
			if err := e.auth.Logout(cmd.Context(), e.cfg.RefreshToken); err != nil {
				fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", err)
			}
		}
		if err := config.ClearTokens(e.cfg); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.requireToken(); err != nil {
			return err
		}
		user, err := e.auth.CurrentUser(cmd.Context(), e.token)
		if err != nil {
			return runtimeErr(err)
		}
		return printJSON(user)
	},
}

// readPassword reads a password from stdin, without echo when stdin is a
// terminal. Scripted callers should prefer the SCHOOLCTL_PASSWORD environment
// variable or a piped stdin.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(pw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username to log in with")
}
