package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/tick/internal/agenda"
	"github.com/abatilo/tick/internal/calendar"
	"github.com/abatilo/tick/internal/recurrence"
	"github.com/abatilo/tick/internal/session"
)

// listCmd implements 'tick list'.
func listCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with upcoming occurrences of repeating ones",
		Run: func(_ *cobra.Command, _ []string) {
			repo := getRepo()

			filterCfg, err := f.filterConfig(time.Local)
			if err != nil {
				printError(err)
			}
			key, err := f.sortKey()
			if err != nil {
				printError(err)
			}

			tasks, err := repo.List()
			if err != nil {
				printError(err)
			}

			count := f.count
			if count <= 0 {
				count = cfg.Projections
			}
			now := time.Now()
			builder := agenda.NewBuilder(recurrence.Expander{Location: time.Local})
			entries, err := builder.Build(tasks, filterCfg, now, agenda.Options{
				Count:    count,
				NoExpand: f.noExpand,
				Sort:     key,
			})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatAgenda(entries, now))
		},
	}
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive text in title or description")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "", "Only this priority (high, medium, low)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Only this category")
	cmd.Flags().StringVar(&f.due, "due", "", "Only tasks due on this day (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.recurrence, "repeat", "r", "", "Only this recurrence (daily, weekly, monthly)")
	cmd.Flags().BoolVar(&f.noExpand, "no-expand", false, "Do not show upcoming occurrences")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "Upcoming occurrences per repeating task (default from TICK_PROJECTIONS)")
	cmd.Flags().StringVar(&f.sort, "sort", "none", "Order: none, due, priority")
	return cmd
}

// exportCmd implements 'tick export'.
func exportCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks as an iCalendar file",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, err := getRepo().List()
			if err != nil {
				printError(err)
			}
			ics := calendar.Export(tasks, time.Now())
			if path == "" || path == "-" {
				printOutput(ics)
				return
			}
			if err = os.WriteFile(path, []byte(ics), 0o600); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Exported %d task(s) to %s", len(tasks), path)))
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

// themeCmd implements 'tick theme'.
func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Set or toggle the color theme",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			var (
				th  session.Theme
				err error
			)
			if len(args) == 0 {
				th, err = sessions.ToggleTheme()
			} else {
				th, err = session.ParseTheme(args[0])
				if err == nil {
					err = sessions.SavePrefs(session.Prefs{Theme: th})
				}
			}
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Theme set to %s", th)))
		},
	}
}
