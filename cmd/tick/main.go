package main

import (
	"bufio"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/tick/internal/config"
	"github.com/abatilo/tick/internal/logger"
	"github.com/abatilo/tick/internal/output"
	"github.com/abatilo/tick/internal/session"
	"github.com/abatilo/tick/internal/storage"
)

//nolint:gochecknoglobals // CLI flags and formatter are package-level by design
var (
	jsonOutput bool
	formatter  output.Formatter
	cfg        *config.Config
	sessions   *session.Manager
	stdin      = bufio.NewReader(os.Stdin)
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "tick",
		Short:        "A personal task tracker",
		Long:         "tick - A personal task tracker with due dates, subtasks and repeating tasks.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setup()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		signupCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		addCmd(),
		editCmd(),
		doneCmd(),
		subtaskCmd(),
		rmCmd(),
		showCmd(),
		listCmd(),
		exportCmd(),
		themeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, installs the logger and picks the formatter.
func setup() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	logger.Init(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	sessions = session.New(cfg.Home)

	if jsonOutput {
		formatter = output.NewJSONFormatter()
		return nil
	}
	prefs, err := sessions.LoadPrefs()
	if err != nil {
		logger.Warn("ignoring unreadable preferences", "error", err)
	}
	formatter = output.NewHumanFormatter(prefs.Theme == session.ThemeDark)
	return nil
}

// requireUser returns the logged-in username or exits with NotLoggedInError.
func requireUser() string {
	user, err := sessions.Current()
	if err != nil {
		printError(err)
	}
	return user
}

// getRepo returns the task repository of the logged-in user.
func getRepo() *storage.Repo {
	user := requireUser()
	store := storage.NewUserStore(cfg.Home, user, time.Local)
	logger.With("user", user).Debug("using task store", "path", store.Path())
	return storage.NewRepo(store)
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	logger.Error("command failed", "error", err)
	if formatter == nil {
		formatter = output.NewHumanFormatter(false)
	}
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}
