package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// signupCmd implements 'tick signup'.
func signupCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			confirm := password
			if password == "" {
				password = readPassword("Password: ")
				confirm = readPassword("Confirm password: ")
			}
			if err := sessions.SignUp(args[0], password, confirm); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Created account %s; run 'tick login %s'", args[0], args[0])))
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

// loginCmd implements 'tick login'.
func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if password == "" {
				password = readPassword("Password: ")
			}
			s, err := sessions.Login(args[0], password)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatUser(s.Username))
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

// logoutCmd implements 'tick logout'.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Run: func(_ *cobra.Command, _ []string) {
			if err := sessions.Logout(); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage("Logged out"))
		},
	}
}

// whoamiCmd implements 'tick whoami'.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Run: func(_ *cobra.Command, _ []string) {
			printOutput(formatter.FormatUser(requireUser()))
		},
	}
}

// readPassword prompts on stderr. Terminals get a no-echo read; piped input is read a line at a time.
func readPassword(prompt string) string {
	printPrompt(prompt)
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			printError(err)
		}
		return string(pw)
	}
	return readLine()
}

// printPrompt writes to stderr so prompts never mix with command output.
func printPrompt(prompt string) {
	fmt.Fprint(os.Stderr, prompt)
}

// readLine reads one line from stdin without its line ending. EOF yields what was read.
func readLine() string {
	line, err := stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		printError(err)
	}
	return strings.TrimRight(line, "\r\n")
}
