package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/abatilo/tick/internal/task"
)

// SortKey selects a display order.
type SortKey string

const (
	// SortNone keeps insertion order.
	SortNone SortKey = "none"
	// SortDue orders by due time, then priority, title and ID.
	SortDue SortKey = "due"
	// SortPriority orders by priority (high first), then due time, title and ID.
	SortPriority SortKey = "priority"
)

// ParseSortKey normalizes a sort key; "" means SortNone.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "", SortNone:
		return SortNone, true
	case SortDue, SortPriority:
		return k, true
	default:
		return "", false
	}
}

// Sort orders tasks in place by key. Both keyed orders are total, so equal-looking tasks
// always land in the same positions. SortNone leaves the slice untouched.
func Sort(tasks []task.Task, key SortKey) {
	switch key {
	case SortDue:
		slices.SortStableFunc(tasks, compareDue)
	case SortPriority:
		slices.SortStableFunc(tasks, comparePriority)
	}
}

func compareDue(a, b task.Task) int {
	if c := a.Due.Compare(b.Due); c != 0 {
		return c
	}
	if c := cmp.Compare(task.PriorityOrder(a.Priority), task.PriorityOrder(b.Priority)); c != 0 {
		return c
	}
	return compareIdentity(a, b)
}

func comparePriority(a, b task.Task) int {
	if c := cmp.Compare(task.PriorityOrder(a.Priority), task.PriorityOrder(b.Priority)); c != 0 {
		return c
	}
	if c := a.Due.Compare(b.Due); c != 0 {
		return c
	}
	return compareIdentity(a, b)
}

func compareIdentity(a, b task.Task) int {
	if c := strings.Compare(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
