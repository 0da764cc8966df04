package storage

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	tickerrors "github.com/abatilo/tick/internal/errors"
	"github.com/abatilo/tick/internal/logger"
	"github.com/abatilo/tick/internal/task"
)

const documentVersion = 1

// document is the on-disk shape of a task collection. Order of Tasks is insertion order.
type document struct {
	Version int          `yaml:"version"`
	Tasks   []taskRecord `yaml:"tasks"`
}

// taskRecord is the YAML-serializable form of a task.
type taskRecord struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description,omitempty"`
	Due         string          `yaml:"due"`
	Priority    task.Priority   `yaml:"priority"`
	Completed   bool            `yaml:"completed"`
	Category    string          `yaml:"category,omitempty"`
	Recurrence  string          `yaml:"recurrence,omitempty"`
	Subtasks    []subtaskRecord `yaml:"subtasks,omitempty"`
	CreatedAt   string          `yaml:"created_at,omitempty"`
}

type subtaskRecord struct {
	Title     string `yaml:"title"`
	Completed bool   `yaml:"completed"`
}

// DecodeTasks parses a tasks document. Due dates without an offset are read in loc and all due
// dates are returned in loc. Empty input is an empty collection.
// Any malformed task fails the whole document.
func DecodeTasks(content []byte, loc *time.Location) ([]task.Task, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return []task.Task{}, nil
	}

	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, ParseError{Msg: "invalid YAML: " + err.Error()}
	}
	if doc.Version > documentVersion {
		return nil, ParseError{Msg: fmt.Sprintf("unsupported version %d", doc.Version)}
	}

	seen := make(map[string]bool, len(doc.Tasks))
	tasks := make([]task.Task, 0, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		if rec.ID == "" {
			return nil, ParseError{Msg: "task without id"}
		}
		if seen[rec.ID] {
			return nil, DuplicateIDError{ID: rec.ID}
		}
		seen[rec.ID] = true

		t, err := fromRecord(rec, loc)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func fromRecord(rec taskRecord, loc *time.Location) (task.Task, error) {
	due, err := task.ParseDue(rec.Due, loc)
	if err != nil {
		return task.Task{}, tickerrors.InvalidDateError{ID: rec.ID, Value: rec.Due}
	}

	rule := task.Recurrence(strings.ToLower(strings.TrimSpace(rec.Recurrence)))
	if rule == "none" {
		rule = task.RecurrenceNone
	}
	if !task.IsValidRecurrence(rule) {
		logger.Warn("unsupported recurrence, task will not repeat", "id", rec.ID, "recurrence", rec.Recurrence)
	}

	var createdAt time.Time
	if rec.CreatedAt != "" {
		if ts, parseErr := task.ParseDue(rec.CreatedAt, loc); parseErr == nil {
			createdAt = ts
		}
	}

	var subtasks []task.Subtask
	if len(rec.Subtasks) > 0 {
		subtasks = make([]task.Subtask, len(rec.Subtasks))
		for i, s := range rec.Subtasks {
			subtasks[i] = task.Subtask{Title: s.Title, Completed: s.Completed}
		}
	}

	t := task.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Due:         due.In(loc),
		Priority:    rec.Priority,
		Completed:   rec.Completed,
		Category:    rec.Category,
		Recurrence:  rule,
		Subtasks:    subtasks,
		CreatedAt:   createdAt,
	}
	if err := t.Validate(); err != nil {
		return task.Task{}, fmt.Errorf("task %s: %w", rec.ID, err)
	}
	return t, nil
}

// EncodeTasks serializes tasks as a versioned YAML document, preserving order.
func EncodeTasks(tasks []task.Task) ([]byte, error) {
	doc := document{Version: documentVersion, Tasks: make([]taskRecord, len(tasks))}
	for i, t := range tasks {
		doc.Tasks[i] = toRecord(t)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toRecord(t task.Task) taskRecord {
	rec := taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Due:         t.Due.Format(time.RFC3339),
		Priority:    t.Priority,
		Completed:   t.Completed,
		Category:    t.Category,
		Recurrence:  string(t.Recurrence),
	}
	if !t.CreatedAt.IsZero() {
		rec.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	for _, s := range t.Subtasks {
		rec.Subtasks = append(rec.Subtasks, subtaskRecord{Title: s.Title, Completed: s.Completed})
	}
	return rec
}
