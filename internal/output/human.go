package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/tick/internal/agenda"
	"github.com/abatilo/tick/internal/task"
)

// palette holds the styles for one theme.
type palette struct {
	title     lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	done      lipgloss.Style
	overdue   lipgloss.Style
	pending   lipgloss.Style
	completed lipgloss.Style
	high      lipgloss.Style
	errorText lipgloss.Style
	success   lipgloss.Style
}

func lightPalette() palette {
	return palette{
		title:     lipgloss.NewStyle().Bold(true),
		muted:     lipgloss.NewStyle().Faint(true),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		done:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		completed: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		high:      lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	}
}

func darkPalette() palette {
	return palette{
		title:     lipgloss.NewStyle().Bold(true),
		muted:     lipgloss.NewStyle().Faint(true),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		done:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		pending:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		completed: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		high:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		errorText: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	p palette
}

// NewHumanFormatter creates a new HumanFormatter with the dark or light palette.
func NewHumanFormatter(dark bool) *HumanFormatter {
	if dark {
		return &HumanFormatter{p: darkPalette()}
	}
	return &HumanFormatter{p: lightPalette()}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t task.Task, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", f.p.muted.Render("["+t.ID+"]"), f.p.title.Render(t.Title))
	fmt.Fprintf(&sb, "  Status:     %s\n", f.badge(t.StatusAt(now)))
	fmt.Fprintf(&sb, "  Due:        %s\n", t.Due.Format(dueLayout))
	fmt.Fprintf(&sb, "  Priority:   %s\n", f.priority(t.Priority))
	if t.Category != "" {
		fmt.Fprintf(&sb, "  Category:   %s\n", t.Category)
	}
	fmt.Fprintf(&sb, "  Repeats:    %s\n", t.Recurrence)
	if !t.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "  Created:    %s\n", t.CreatedAt.Format(dueLayout))
	}
	if len(t.Subtasks) > 0 {
		fmt.Fprintf(&sb, "  Subtasks:   %d/%d\n", t.SubtasksDone(), len(t.Subtasks))
		for i, s := range t.Subtasks {
			box := "[ ]"
			title := s.Title
			if s.Completed {
				box = "[x]"
				title = f.p.done.Render(title)
			}
			fmt.Fprintf(&sb, "    %d. %s %s\n", i+1, box, title)
		}
	}
	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatAgenda formats the display list, one line per entry. Projections are indented under
// their task and marked with ↻.
func (f *HumanFormatter) FormatAgenda(entries []agenda.Entry, now time.Time) string {
	if len(entries) == 0 {
		return noTasksMessage + "\n"
	}

	var sb strings.Builder
	for _, e := range entries {
		if e.Projected {
			sb.WriteString(f.formatProjectionLine(e))
		} else {
			sb.WriteString(f.formatTaskLine(e.Task, now))
		}
	}
	return sb.String()
}

// formatTaskLine formats a stored task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(t task.Task, now time.Time) string {
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = f.p.done.Render(title)
	}

	var extras []string
	if t.Category != "" {
		extras = append(extras, f.p.accent.Render("#"+t.Category))
	}
	if t.Recurrence.Repeats() {
		extras = append(extras, projectionMark+" "+string(t.Recurrence))
	}
	if len(t.Subtasks) > 0 {
		extras = append(extras, fmt.Sprintf("(%d/%d)", t.SubtasksDone(), len(t.Subtasks)))
	}
	suffix := ""
	if len(extras) > 0 {
		suffix = " " + strings.Join(extras, " ")
	}

	return fmt.Sprintf("%s %s %s %s  due %s  %s%s\n",
		box,
		f.priority(t.Priority),
		f.p.muted.Render("["+t.ID+"]"),
		title,
		t.Due.Format(dueLayout),
		f.badge(t.StatusAt(now)),
		suffix,
	)
}

func (f *HumanFormatter) formatProjectionLine(e agenda.Entry) string {
	return f.p.muted.Render(fmt.Sprintf("    %s %s  due %s  (+%d)",
		projectionMark, e.Task.Title, e.Task.Due.Format(dueLayout), e.Occurrence)) + "\n"
}

func (f *HumanFormatter) badge(s task.Status) string {
	switch s {
	case task.StatusCompleted:
		return f.p.completed.Render("Completed")
	case task.StatusOverdue:
		return f.p.overdue.Render("Overdue")
	default:
		return f.p.pending.Render("Pending")
	}
}

func (f *HumanFormatter) priority(p task.Priority) string {
	label := fmt.Sprintf("%-6s", p)
	if p == task.PriorityHigh {
		return f.p.high.Render(label)
	}
	return label
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return f.p.errorText.Render("Error: "+err.Error()) + "\n"
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return f.p.success.Render(msg) + "\n"
}

// FormatUser formats the logged-in user.
func (f *HumanFormatter) FormatUser(username string) string {
	return "Logged in as " + f.p.title.Render(username) + "\n"
}
