package storage

import (
	"slices"
	"strings"
	"time"

	tickerrors "github.com/abatilo/tick/internal/errors"
	"github.com/abatilo/tick/internal/task"
)

// Draft holds the user-supplied fields of a new task.
type Draft struct {
	Title       string
	Description string
	Due         time.Time
	Priority    task.Priority
	Category    string
	Recurrence  task.Recurrence
	Subtasks    []string
}

// Repo performs task collection edits on top of a TaskStore. Every operation loads the
// collection, changes it and saves it back.
type Repo struct {
	store TaskStore
	now   func() time.Time
}

// NewRepo creates a Repo over store.
func NewRepo(store TaskStore) *Repo {
	return &Repo{store: store, now: time.Now}
}

// List returns every task in insertion order.
func (r *Repo) List() ([]task.Task, error) {
	return r.store.LoadTasks()
}

// Get returns the task with id.
func (r *Repo) Get(id string) (task.Task, error) {
	tasks, err := r.store.LoadTasks()
	if err != nil {
		return task.Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return task.Task{}, tickerrors.TaskNotFoundError{ID: id}
	}
	return tasks[i], nil
}

// Create appends a new, incomplete task with a generated ID. Blank subtask titles are dropped.
func (r *Repo) Create(d Draft) (task.Task, error) {
	tasks, err := r.store.LoadTasks()
	if err != nil {
		return task.Task{}, err
	}

	createdAt := r.now()
	exists := func(id string) bool { return indexOf(tasks, id) >= 0 }

	t := task.Task{
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Due:         d.Due,
		Priority:    d.Priority,
		Category:    d.Category,
		Recurrence:  d.Recurrence,
		CreatedAt:   createdAt,
	}
	for _, title := range d.Subtasks {
		if title = strings.TrimSpace(title); title != "" {
			t.Subtasks = append(t.Subtasks, task.Subtask{Title: title})
		}
	}
	if err = validateNew(t); err != nil {
		return task.Task{}, err
	}
	t.ID = task.NewID(t, exists)

	tasks = append(tasks, t)
	if err = r.store.SaveTasks(tasks); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Replace swaps the task with id for t, keeping its identifier, creation time and position.
// An unsupported recurrence loaded from disk may be kept as is; only a changed rule must be valid.
func (r *Repo) Replace(id string, t task.Task) (task.Task, error) {
	return r.update(id, func(cur *task.Task) error {
		t.ID = cur.ID
		t.CreatedAt = cur.CreatedAt
		t.Title = strings.TrimSpace(t.Title)
		check := validateNew
		if t.Recurrence == cur.Recurrence {
			check = task.Task.Validate
		}
		if err := check(t); err != nil {
			return err
		}
		*cur = t.Clone()
		return nil
	})
}

// ToggleComplete flips the completed flag of the task with id.
func (r *Repo) ToggleComplete(id string) (task.Task, error) {
	return r.update(id, func(cur *task.Task) error {
		cur.Completed = !cur.Completed
		return nil
	})
}

// ToggleSubtask flips the completed flag of the subtask at the 1-based index.
func (r *Repo) ToggleSubtask(id string, index int) (task.Task, error) {
	return r.update(id, func(cur *task.Task) error {
		if index < 1 || index > len(cur.Subtasks) {
			return tickerrors.SubtaskNotFoundError{ID: cur.ID, Index: index, Count: len(cur.Subtasks)}
		}
		cur.Subtasks[index-1].Completed = !cur.Subtasks[index-1].Completed
		return nil
	})
}

// AddSubtask appends an incomplete subtask.
func (r *Repo) AddSubtask(id, title string) (task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return task.Task{}, tickerrors.EmptyTitleError{}
	}
	return r.update(id, func(cur *task.Task) error {
		cur.Subtasks = append(cur.Subtasks, task.Subtask{Title: title})
		return nil
	})
}

// Delete removes the task with id.
func (r *Repo) Delete(id string) error {
	tasks, err := r.store.LoadTasks()
	if err != nil {
		return err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return tickerrors.TaskNotFoundError{ID: id}
	}
	return r.store.SaveTasks(slices.Delete(tasks, i, i+1))
}

func (r *Repo) update(id string, fn func(*task.Task) error) (task.Task, error) {
	tasks, err := r.store.LoadTasks()
	if err != nil {
		return task.Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return task.Task{}, tickerrors.TaskNotFoundError{ID: id}
	}
	if err = fn(&tasks[i]); err != nil {
		return task.Task{}, err
	}
	if err = r.store.SaveTasks(tasks); err != nil {
		return task.Task{}, err
	}
	return tasks[i].Clone(), nil
}

// validateNew applies the stored-task invariants plus the stricter rule for user input that
// the recurrence must be one of the defined values.
func validateNew(t task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !task.IsValidRecurrence(t.Recurrence) {
		return tickerrors.InvalidRecurrenceError{Value: string(t.Recurrence)}
	}
	return nil
}

func indexOf(tasks []task.Task, id string) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool { return t.ID == id })
}
