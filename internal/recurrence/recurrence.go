// Package recurrence projects future occurrences of repeating tasks.
//
// A repeating task's stored due date is its anchor. Occurrence k is the anchor advanced by k
// steps of the task's rule using local calendar arithmetic: one calendar day for daily, seven for
// weekly, one calendar month for monthly. Monthly occurrences keep the anchor's day of month and
// clamp it to the last day of shorter months, so a task anchored on Jan 31 falls on Feb 28 (or 29),
// Mar 31, Apr 30 and so on.
package recurrence

import (
	"time"

	tickerrors "github.com/abatilo/tick/internal/errors"
	"github.com/abatilo/tick/internal/task"
)

// DefaultCount is the number of projections produced when no count is given.
const DefaultCount = 10

// maxAdjust bounds the single-step corrections applied after the fast-forward estimate.
const maxAdjust = 64

// Projection is a derived, never persisted, future occurrence of a repeating task.
type Projection struct {
	task.Task

	// Occurrence is the number of steps from the anchor; the anchor itself is 0.
	Occurrence int
}

// Occurrence returns anchor advanced by k steps of rule. Rules that do not repeat return anchor.
func Occurrence(anchor time.Time, rule task.Recurrence, k int) time.Time {
	switch rule {
	case task.RecurrenceDaily:
		return anchor.AddDate(0, 0, k)
	case task.RecurrenceWeekly:
		return anchor.AddDate(0, 0, 7*k) //nolint:mnd // days per week
	case task.RecurrenceMonthly:
		return addMonthsClamped(anchor, k)
	default:
		return anchor
	}
}

// Next returns t advanced by one step of rule.
func Next(t time.Time, rule task.Recurrence) time.Time {
	return Occurrence(t, rule, 1)
}

// Expander produces projections. The zero value computes in each task's own location.
type Expander struct {
	// Location, when set, is the calendar the steps are computed in.
	Location *time.Location
}

// Expand returns count projections of t strictly after now, in increasing due order.
// A count of zero or less means DefaultCount. Tasks whose rule does not repeat yield no projections.
func (e Expander) Expand(t task.Task, now time.Time, count int) ([]Projection, error) {
	if t.Due.IsZero() {
		return nil, tickerrors.InvalidDateError{ID: t.ID}
	}
	if !t.Recurrence.Repeats() {
		return nil, nil
	}
	if count <= 0 {
		count = DefaultCount
	}

	anchor := t.Due
	if e.Location != nil {
		anchor = anchor.In(e.Location)
	}

	first, ok := firstAfter(anchor, now, t.Recurrence)
	if !ok {
		return nil, tickerrors.FastForwardError{ID: t.ID, Limit: maxAdjust}
	}

	out := make([]Projection, 0, count)
	for i := range count {
		p := t.Clone()
		p.Due = Occurrence(anchor, t.Recurrence, first+i)
		out = append(out, Projection{Task: p, Occurrence: first + i})
	}
	return out, nil
}

// Expand is Expander{}.Expand.
func Expand(t task.Task, now time.Time, count int) ([]Projection, error) {
	return Expander{}.Expand(t, now, count)
}

// firstAfter returns the smallest k with Occurrence(anchor, rule, k) after now.
// The step count is estimated from the calendar distance, then corrected one step at a time.
// ok is false if the corrections exceed maxAdjust.
func firstAfter(anchor, now time.Time, rule task.Recurrence) (k int, ok bool) {
	if anchor.After(now) {
		return 0, true
	}
	k = max(estimateSteps(anchor, now.In(anchor.Location()), rule), 0)
	for range maxAdjust {
		switch {
		case k > 0 && Occurrence(anchor, rule, k-1).After(now):
			k--
		case !Occurrence(anchor, rule, k).After(now):
			k++
		default:
			return k, true
		}
	}
	return 0, false
}

func estimateSteps(anchor, now time.Time, rule task.Recurrence) int {
	switch rule {
	case task.RecurrenceDaily:
		return daysBetween(anchor, now)
	case task.RecurrenceWeekly:
		return daysBetween(anchor, now) / 7 //nolint:mnd // days per week
	case task.RecurrenceMonthly:
		return (now.Year()-anchor.Year())*12 + int(now.Month()-anchor.Month()) //nolint:mnd // months per year
	default:
		return 0
	}
}

// daysBetween counts calendar days from a's date to b's date, ignoring time of day and DST.
func daysBetween(a, b time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Unix()
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC).Unix()
	return int((db - da) / secondsPerDay)
}

// addMonthsClamped adds months to t, clamping the day to the target month's length.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
