// Package calendar exports tasks as an iCalendar (RFC 5545) document.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abatilo/tick/internal/task"
)

const (
	icsLocalLayout = "20060102T150405"
	icsUTCLayout   = "20060102T150405Z"
	uidDomain      = "tick.local"
	maxLineOctets  = 75
	shortestMonth  = 28
)

//nolint:gochecknoglobals // stateless replacer
var textEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\r\n", "\\n",
	"\n", "\\n",
	"\r", "\\n",
)

// Export renders tasks as a VCALENDAR with one VTODO each. Due times are written as floating
// local times in each task's own location; now stamps DTSTAMP.
func Export(tasks []task.Task, now time.Time) string {
	var b strings.Builder
	w := func(line string) {
		b.WriteString(fold(line))
		b.WriteString("\r\n")
	}

	w("BEGIN:VCALENDAR")
	w("VERSION:2.0")
	w("PRODID:-//tick//Task Export//EN")
	w("CALSCALE:GREGORIAN")
	w("METHOD:PUBLISH")
	stamp := now.UTC().Format(icsUTCLayout)
	for _, t := range tasks {
		writeTodo(w, t, stamp)
	}
	w("END:VCALENDAR")
	return b.String()
}

func writeTodo(w func(string), t task.Task, stamp string) {
	due := t.Due.Format(icsLocalLayout)

	w("BEGIN:VTODO")
	w("UID:" + escapeText(fmt.Sprintf("task-%s@%s", t.ID, uidDomain)))
	w("DTSTAMP:" + stamp)
	if !t.CreatedAt.IsZero() {
		w("CREATED:" + t.CreatedAt.UTC().Format(icsUTCLayout))
	}
	w("SUMMARY:" + escapeText(t.Title))
	if d := strings.TrimSpace(t.Description); d != "" {
		w("DESCRIPTION:" + escapeText(d))
	}
	w("DTSTART:" + due)
	w("DUE:" + due)
	w("PRIORITY:" + strconv.Itoa(icsPriority(t.Priority)))
	if c := strings.TrimSpace(t.Category); c != "" {
		w("CATEGORIES:" + escapeText(c))
	}
	if rrule := RRule(t); rrule != "" {
		w("RRULE:" + rrule)
	}
	if t.Completed {
		w("STATUS:COMPLETED")
	} else {
		w("STATUS:NEEDS-ACTION")
	}
	w("END:VTODO")
}

// RRule returns the recurrence rule for t, or "" when t does not repeat.
// Monthly tasks anchored past the 28th pick the last existing day up to the anchor day, which
// matches how occurrences are clamped to short months.
func RRule(t task.Task) string {
	switch t.Recurrence {
	case task.RecurrenceDaily:
		return "FREQ=DAILY"
	case task.RecurrenceWeekly:
		return "FREQ=WEEKLY"
	case task.RecurrenceMonthly:
		day := t.Due.Day()
		if day <= shortestMonth {
			return "FREQ=MONTHLY"
		}
		days := make([]string, 0, day-shortestMonth+1)
		for d := shortestMonth; d <= day; d++ {
			days = append(days, strconv.Itoa(d))
		}
		return "FREQ=MONTHLY;BYMONTHDAY=" + strings.Join(days, ",") + ";BYSETPOS=-1"
	default:
		return ""
	}
}

func icsPriority(p task.Priority) int {
	switch p {
	case task.PriorityHigh:
		return 1
	case task.PriorityMedium:
		return 5
	default:
		return 9
	}
}

// escapeText escapes RFC 5545 TEXT. Invalid UTF-8 becomes U+FFFD since content lines must be UTF-8.
func escapeText(s string) string {
	return textEscaper.Replace(strings.ToValidUTF8(s, "\uFFFD"))
}

// fold splits a content line into 75-octet chunks joined by CRLF and a space, never inside a
// UTF-8 sequence.
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit // no rune start in range; split on the octet boundary
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineOctets - 1 // continuation lines start with a space
	}
	b.WriteString(line)
	return b.String()
}
