package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/tick/internal/logger"
)

func addTaskFlags(cmd *cobra.Command, f *taskFlags) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD or 'YYYY-MM-DD HH:MM')")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", "medium", "Priority (high, medium, low)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&f.recurrence, "repeat", "r", "none", "Recurrence (none, daily, weekly, monthly)")
}

// addCmd implements 'tick add'.
func addCmd() *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			repo := getRepo()

			d, err := f.draft(args[0], time.Local)
			if err != nil {
				printError(err)
			}
			t, err := repo.Create(d)
			if err != nil {
				printError(err)
			}
			logger.Info("task created", "id", t.ID)
			printOutput(formatter.FormatTask(t, time.Now()))
		},
	}
	addTaskFlags(cmd, &f)
	cmd.Flags().StringArrayVarP(&f.subtasks, "subtask", "s", nil, "Subtask title (repeatable)")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

// editCmd implements 'tick edit'.
func editCmd() *cobra.Command {
	var f taskFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task's fields",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			repo := getRepo()

			cur, err := repo.Get(args[0])
			if err != nil {
				printError(err)
			}
			next, err := f.apply(cur, cmd.Flags().Changed, time.Local)
			if err != nil {
				printError(err)
			}
			t, err := repo.Replace(cur.ID, next)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t, time.Now()))
		},
	}
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "New title")
	addTaskFlags(cmd, &f)
	return cmd
}

// doneCmd implements 'tick done'.
func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between completed and pending",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			t, err := getRepo().ToggleComplete(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t, time.Now()))
		},
	}
}

// subtaskCmd implements the 'tick subtask' command group.
func subtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Manage a task's subtasks",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <id> <title>",
			Short: "Append a subtask",
			Args:  cobra.ExactArgs(2), //nolint:mnd // id and title
			Run: func(_ *cobra.Command, args []string) {
				t, err := getRepo().AddSubtask(args[0], args[1])
				if err != nil {
					printError(err)
				}
				printOutput(formatter.FormatTask(t, time.Now()))
			},
		},
		&cobra.Command{
			Use:   "done <id> <number>",
			Short: "Toggle a subtask by its 1-based number",
			Args:  cobra.ExactArgs(2), //nolint:mnd // id and number
			Run: func(_ *cobra.Command, args []string) {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					printError(fmt.Errorf("subtask number must be an integer: %q", args[1]))
				}
				t, err := getRepo().ToggleSubtask(args[0], n)
				if err != nil {
					printError(err)
				}
				printOutput(formatter.FormatTask(t, time.Now()))
			},
		},
	)
	return cmd
}

// rmCmd implements 'tick rm'.
func rmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			repo := getRepo()

			// First check task exists
			t, err := repo.Get(args[0])
			if err != nil {
				printError(err)
			}
			if !yes && !confirm(fmt.Sprintf("Delete task %s (%s)? [y/N] ", t.ID, t.Title)) {
				printOutput(formatter.FormatMessage("Cancelled"))
				return
			}
			if err = repo.Delete(t.ID); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed task %s", t.ID)))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// showCmd implements 'tick show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			t, err := getRepo().Get(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t, time.Now()))
		},
	}
}

func confirm(prompt string) bool {
	printPrompt(prompt)
	answer := strings.ToLower(strings.TrimSpace(readLine()))
	return answer == "y" || answer == "yes"
}
