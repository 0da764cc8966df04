package output

import (
	"time"

	"github.com/abatilo/tick/internal/agenda"
	"github.com/abatilo/tick/internal/task"
)

// Formatter defines the interface for output formatting.
// Status is derived relative to now, so callers pass the same instant they built the list with.
type Formatter interface {
	FormatTask(t task.Task, now time.Time) string
	FormatAgenda(entries []agenda.Entry, now time.Time) string
	FormatError(err error) string
	FormatMessage(msg string) string
	FormatUser(username string) string
}

const (
	dueLayout      = "2006-01-02 15:04"
	projectionMark = "↻"
	noTasksMessage = "No tasks found."
)
