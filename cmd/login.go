package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errPasswordNeedsTerminal = errors.New("stdin is not a terminal; pass the password with --password-stdin")

func newLoginCmd(a *app) *cobra.Command {
	var username string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate the publishing account and save the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, passwordStdin)
			if err != nil {
				return err
			}

			result := a.orchestrator.Login(cmd.Context(), username, password)
			if !result.Success {
				return fmt.Errorf("login failed: %s", result.Reason)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", result.Account)
			return err
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and delete the saved session file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := a.orchestrator.Logout(cmd.Context())
			if !result.Success {
				return fmt.Errorf("logout incomplete: %s", result.Reason)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func readPassword(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return strings.TrimRight(string(raw), "\r\n"), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errPasswordNeedsTerminal
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	return string(raw), nil
}
