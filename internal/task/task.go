package task

import (
	"slices"
	"strings"
	"time"

	tickerrors "github.com/abatilo/tick/internal/errors"
)

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityOrder returns the sort order for a priority (lower = higher priority).
func PriorityOrder(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority normalizes user input into a Priority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidPriority(p) {
		return "", tickerrors.InvalidPriorityError{Value: s}
	}
	return p, nil
}

// Recurrence is the rule a task repeats by. The zero value means the task does not repeat.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Repeats reports whether r is a rule that produces future occurrences.
// Unknown values left over from older data do not repeat.
func (r Recurrence) Repeats() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

// String returns "none" for the zero value.
func (r Recurrence) String() string {
	if r == RecurrenceNone {
		return "none"
	}
	return string(r)
}

// IsValidRecurrence checks if a recurrence is none or one of the repeating rules.
func IsValidRecurrence(r Recurrence) bool {
	return r == RecurrenceNone || r.Repeats()
}

// ParseRecurrence normalizes user input into a Recurrence. "none" and "" both map to RecurrenceNone.
func ParseRecurrence(s string) (Recurrence, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "none" {
		return RecurrenceNone, nil
	}
	r := Recurrence(v)
	if !IsValidRecurrence(r) {
		return "", tickerrors.InvalidRecurrenceError{Value: s}
	}
	return r, nil
}

// Status is the display state of a task, derived from completion and due date.
type Status string

const (
	StatusPending   Status = "pending"
	StatusOverdue   Status = "overdue"
	StatusCompleted Status = "completed"
)

// Subtask is a checklist entry inside a task.
type Subtask struct {
	Title     string
	Completed bool
}

// Task represents a tracked unit of work.
type Task struct {
	ID          string
	Title       string
	Description string
	Due         time.Time
	Priority    Priority
	Completed   bool
	Category    string
	Recurrence  Recurrence
	Subtasks    []Subtask
	CreatedAt   time.Time
}

// Validate checks the invariants every stored task must hold.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return tickerrors.EmptyTitleError{}
	}
	if !IsValidPriority(t.Priority) {
		return tickerrors.InvalidPriorityError{Value: string(t.Priority)}
	}
	if t.Due.IsZero() {
		return tickerrors.InvalidDateError{ID: t.ID}
	}
	return nil
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	t.Subtasks = slices.Clone(t.Subtasks)
	return t
}

// StatusAt returns the task's status relative to now.
func (t Task) StatusAt(now time.Time) Status {
	switch {
	case t.Completed:
		return StatusCompleted
	case t.Due.Before(now):
		return StatusOverdue
	default:
		return StatusPending
	}
}

// SubtasksDone returns how many subtasks are completed.
func (t Task) SubtasksDone() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}

// Due-date layouts accepted from users and from stored data, most specific first.
// Layouts without a zone are read in the caller's location.
var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDue parses a due date-time. RFC 3339 input keeps its offset; everything else is
// interpreted in loc. A bare date means midnight.
func ParseDue(s string, loc *time.Location) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, tickerrors.InvalidDateError{Value: s}
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, tickerrors.InvalidDateError{Value: s}
}
