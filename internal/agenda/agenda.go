// Package agenda builds the display list: filtered tasks, each repeating one followed by its
// projected future occurrences.
package agenda

import (
	"time"

	"github.com/abatilo/tick/internal/filter"
	"github.com/abatilo/tick/internal/recurrence"
	"github.com/abatilo/tick/internal/task"
)

// Expander projects future occurrences of a repeating task.
type Expander interface {
	Expand(t task.Task, now time.Time, count int) ([]recurrence.Projection, error)
}

// Entry is one line of the display list.
type Entry struct {
	Task task.Task
	// Projected is true for derived future occurrences; those are never persisted.
	Projected bool
	// Occurrence is the projection's step count from the stored due date; zero for stored tasks.
	Occurrence int
}

// Options tune a Build call.
type Options struct {
	// Count is the number of projections per repeating task; zero or less means the default.
	Count int
	// NoExpand lists stored tasks only.
	NoExpand bool
	// Sort orders the base tasks before expansion. Projections stay right after their task.
	Sort filter.SortKey
}

// Builder runs the filter-then-expand pipeline.
type Builder struct {
	expander Expander
}

// NewBuilder returns a Builder using e. A nil e uses recurrence.Expander{}.
func NewBuilder(e Expander) *Builder {
	if e == nil {
		e = recurrence.Expander{}
	}
	return &Builder{expander: e}
}

// Build filters tasks by cfg and appends projections after each matching repeating task.
// The expander is never called for tasks whose rule does not repeat. The first expansion
// error aborts the build.
func (b *Builder) Build(tasks []task.Task, cfg filter.Config, now time.Time, opts Options) ([]Entry, error) {
	matched := filter.Apply(tasks, cfg)
	filter.Sort(matched, opts.Sort)

	entries := make([]Entry, 0, len(matched))
	for _, t := range matched {
		entries = append(entries, Entry{Task: t})
		if opts.NoExpand || !t.Recurrence.Repeats() {
			continue
		}
		projections, err := b.expander.Expand(t, now, opts.Count)
		if err != nil {
			return nil, err
		}
		for _, p := range projections {
			entries = append(entries, Entry{Task: p.Task, Projected: true, Occurrence: p.Occurrence})
		}
	}
	return entries, nil
}
