// Package filter narrows a task collection to the tasks matching a set of predicates.
package filter

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/abatilo/tick/internal/task"
)

// Config holds the user-selected predicates. Every zero field means "no constraint".
type Config struct {
	// Search is matched case-insensitively as a substring of the title or the description.
	Search string
	// Priority must equal the task's priority.
	Priority task.Priority
	// Category must equal the task's category; tasks without one never match a non-empty filter.
	Category string
	// DueDate matches tasks due on the same calendar day; time of day is ignored.
	DueDate time.Time
	// Recurrence must equal the task's recurrence rule.
	Recurrence task.Recurrence
	// Location is the calendar used for the DueDate comparison. Nil means time.Local.
	Location *time.Location
}

// IsEmpty reports whether no predicate is set.
func (c Config) IsEmpty() bool {
	return c.Search == "" && c.Priority == "" && c.Category == "" &&
		c.DueDate.IsZero() && c.Recurrence == task.RecurrenceNone
}

// Matches reports whether t satisfies every predicate in c.
func (c Config) Matches(t task.Task) bool {
	return newMatcher(c).matches(t)
}

// Apply returns the tasks that satisfy every predicate in c, in their original order.
// The input is not modified; an empty config returns all tasks.
func Apply(tasks []task.Task, c Config) []task.Task {
	m := newMatcher(c)
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if m.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// matcher carries the per-call derived state of a Config. A cases.Caser is stateful,
// so each matcher owns its own.
type matcher struct {
	cfg    Config
	fold   cases.Caser
	needle string
	loc    *time.Location
}

func newMatcher(c Config) *matcher {
	m := &matcher{cfg: c, fold: cases.Fold(), loc: c.Location}
	if m.loc == nil {
		m.loc = time.Local
	}
	if c.Search != "" {
		m.needle = m.fold.String(c.Search)
	}
	return m
}

func (m *matcher) matches(t task.Task) bool {
	return m.matchesSearch(t) &&
		(m.cfg.Priority == "" || t.Priority == m.cfg.Priority) &&
		(m.cfg.Category == "" || t.Category == m.cfg.Category) &&
		m.matchesDueDate(t) &&
		(m.cfg.Recurrence == task.RecurrenceNone || t.Recurrence == m.cfg.Recurrence)
}

func (m *matcher) matchesSearch(t task.Task) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(m.fold.String(t.Title), m.needle) ||
		strings.Contains(m.fold.String(t.Description), m.needle)
}

func (m *matcher) matchesDueDate(t task.Task) bool {
	if m.cfg.DueDate.IsZero() {
		return true
	}
	return SameDay(t.Due, m.cfg.DueDate, m.loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
