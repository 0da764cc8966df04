package output

import (
	"encoding/json"
	"time"

	"github.com/abatilo/tick/internal/agenda"
	"github.com/abatilo/tick/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type subtaskJSON struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Due         string        `json:"due"`
	Priority    string        `json:"priority"`
	Completed   bool          `json:"completed"`
	Status      string        `json:"status"`
	Category    string        `json:"category,omitempty"`
	Recurrence  string        `json:"recurrence"`
	Subtasks    []subtaskJSON `json:"subtasks,omitempty"`
	CreatedAt   string        `json:"created_at,omitempty"`
}

func toTaskJSON(t task.Task, now time.Time) taskJSON {
	tj := taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Due:         t.Due.Format(time.RFC3339),
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		Status:      string(t.StatusAt(now)),
		Category:    t.Category,
		Recurrence:  t.Recurrence.String(),
	}
	if !t.CreatedAt.IsZero() {
		tj.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	for _, s := range t.Subtasks {
		tj.Subtasks = append(tj.Subtasks, subtaskJSON{Title: s.Title, Completed: s.Completed})
	}
	return tj
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t task.Task, now time.Time) string {
	return marshalJSON(toTaskJSON(t, now))
}

// entryJSON is a display list entry: the task fields plus projection metadata.
type entryJSON struct {
	taskJSON

	Projected  bool `json:"projected"`
	Occurrence int  `json:"occurrence,omitempty"`
}

// FormatAgenda formats the display list as a JSON array in display order.
func (f *JSONFormatter) FormatAgenda(entries []agenda.Entry, now time.Time) string {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = entryJSON{taskJSON: toTaskJSON(e.Task, now), Projected: e.Projected, Occurrence: e.Occurrence}
	}
	return marshalJSON(out)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}

type userJSON struct {
	Username string `json:"username"`
}

// FormatUser formats the logged-in user as JSON.
func (f *JSONFormatter) FormatUser(username string) string {
	return marshalJSON(userJSON{Username: username})
}
