//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	tickerrors "github.com/abatilo/tick/internal/errors"
	"github.com/abatilo/tick/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		{
			ID:          "a1b2",
			Title:       "Pay rent",
			Description: "transfer to landlord",
			Due:         time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC),
			Priority:    task.PriorityHigh,
			Category:    "home",
			Recurrence:  task.RecurrenceMonthly,
			CreatedAt:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:        "c3d4",
			Title:     "Write report",
			Due:       time.Date(2024, 2, 10, 17, 30, 0, 0, time.UTC),
			Priority:  task.PriorityMedium,
			Completed: true,
			Subtasks: []task.Subtask{
				{Title: "outline", Completed: true},
				{Title: "draft"},
			},
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	in := sampleTasks()

	content, err := EncodeTasks(in)
	if err != nil {
		t.Fatalf("EncodeTasks failed: %v", err)
	}
	if !strings.HasPrefix(string(content), "version: 1\n") {
		t.Errorf("document should start with version, got:\n%s", content)
	}

	out, err := DecodeTasks(content, time.UTC)
	if err != nil {
		t.Fatalf("DecodeTasks failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTasksEmpty(t *testing.T) {
	for _, content := range []string{"", "  \n"} {
		tasks, err := DecodeTasks([]byte(content), time.UTC)
		if err != nil {
			t.Fatalf("DecodeTasks(%q) failed: %v", content, err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Errorf("DecodeTasks(%q) = %v, want empty non-nil", content, tasks)
		}
	}
}

func TestDecodeTasksLocalDue(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	content := []byte(`version: 1
tasks:
  - id: t1
    title: Standup
    due: "2024-03-04 09:15"
    priority: low
`)
	tasks, err := DecodeTasks(content, loc)
	if err != nil {
		t.Fatalf("DecodeTasks failed: %v", err)
	}
	want := time.Date(2024, 3, 4, 9, 15, 0, 0, loc)
	if !tasks[0].Due.Equal(want) {
		t.Errorf("Due = %v, want %v", tasks[0].Due, want)
	}
	if tasks[0].Due.Location() != loc {
		t.Errorf("Due location = %v, want %v", tasks[0].Due.Location(), loc)
	}
}

func TestDecodeTasksErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name: "invalid due date names the task",
			content: `version: 1
tasks:
  - id: bad1
    title: Broken
    due: next tuesday
    priority: high
`,
			check: func(t *testing.T, err error) {
				var de tickerrors.InvalidDateError
				if !errors.As(err, &de) {
					t.Fatalf("expected InvalidDateError, got %T: %v", err, err)
				}
				if de.ID != "bad1" || de.Value != "next tuesday" {
					t.Errorf("got %+v", de)
				}
			},
		},
		{
			name: "missing due date",
			content: `version: 1
tasks:
  - id: bad2
    title: Undated
    priority: low
`,
			check: func(t *testing.T, err error) {
				var de tickerrors.InvalidDateError
				if !errors.As(err, &de) || de.ID != "bad2" {
					t.Fatalf("expected InvalidDateError for bad2, got %v", err)
				}
			},
		},
		{
			name: "duplicate id",
			content: `version: 1
tasks:
  - {id: x1, title: One, due: "2024-01-01", priority: low}
  - {id: x1, title: Two, due: "2024-01-02", priority: low}
`,
			check: func(t *testing.T, err error) {
				var de DuplicateIDError
				if !errors.As(err, &de) || de.ID != "x1" {
					t.Fatalf("expected DuplicateIDError for x1, got %v", err)
				}
			},
		},
		{
			name: "missing id",
			content: `version: 1
tasks:
  - {title: Anonymous, due: "2024-01-01", priority: low}
`,
			check: func(t *testing.T, err error) {
				var pe ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ParseError, got %v", err)
				}
			},
		},
		{
			name:    "newer version",
			content: "version: 2\ntasks: []\n",
			check: func(t *testing.T, err error) {
				var pe ParseError
				if !errors.As(err, &pe) || !strings.Contains(pe.Msg, "unsupported version 2") {
					t.Fatalf("expected unsupported version ParseError, got %v", err)
				}
			},
		},
		{
			name:    "not yaml",
			content: "tasks: [unterminated",
			check: func(t *testing.T, err error) {
				var pe ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected ParseError, got %v", err)
				}
			},
		},
		{
			name: "invalid priority",
			content: `version: 1
tasks:
  - {id: p1, title: Urgent, due: "2024-01-01", priority: critical}
`,
			check: func(t *testing.T, err error) {
				var pe tickerrors.InvalidPriorityError
				if !errors.As(err, &pe) || pe.Value != "critical" {
					t.Fatalf("expected InvalidPriorityError, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTasks([]byte(tt.content), time.UTC)
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestDecodeTasksRecurrenceValues(t *testing.T) {
	content := []byte(`version: 1
tasks:
  - {id: r1, title: A, due: "2024-01-01", priority: low, recurrence: none}
  - {id: r2, title: B, due: "2024-01-01", priority: low, recurrence: Weekly}
  - {id: r3, title: C, due: "2024-01-01", priority: low, recurrence: yearly}
  - {id: r4, title: D, due: "2024-01-01", priority: low}
`)
	tasks, err := DecodeTasks(content, time.UTC)
	if err != nil {
		t.Fatalf("DecodeTasks failed: %v", err)
	}

	want := []task.Recurrence{task.RecurrenceNone, task.RecurrenceWeekly, task.Recurrence("yearly"), task.RecurrenceNone}
	for i, tk := range tasks {
		if tk.Recurrence != want[i] {
			t.Errorf("%s: Recurrence = %q, want %q", tk.ID, tk.Recurrence, want[i])
		}
	}
	if tasks[2].Recurrence.Repeats() {
		t.Error("unknown recurrence must not repeat")
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "tasks.yaml"), time.UTC)

	tasks, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(tasks))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	home := t.TempDir()
	s := NewUserStore(home, "Jane Doe", time.UTC)

	wantPath := filepath.Join(home, "users", "jane-doe", "tasks.yaml")
	if s.Path() != wantPath {
		t.Fatalf("Path = %q, want %q", s.Path(), wantPath)
	}

	in := sampleTasks()
	if err := s.SaveTasks(in); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	info, err := os.Stat(wantPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != filePerm {
		t.Errorf("file mode = %o, want %o", perm, filePerm)
	}

	out, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(wantPath))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only tasks.yaml in user dir, found %d entries", len(entries))
	}
}

func TestFileStoreParseErrorHasPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	if err := os.WriteFile(path, []byte("version: 9\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := NewFileStore(path, time.UTC).LoadTasks()
	var pe ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Path != path {
		t.Errorf("Path = %q, want %q", pe.Path, path)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	m := NewMemoryStore(sampleTasks()...)

	tasks, _ := m.LoadTasks()
	tasks[1].Subtasks[0].Title = "mutated"

	again, _ := m.LoadTasks()
	if again[1].Subtasks[0].Title != "outline" {
		t.Error("LoadTasks result aliases stored subtasks")
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jane", "jane"},
		{"Jane Doe", "jane-doe"},
		{"../../etc", "etc"},
		{"a__b--c", "a-b-c"},
		{"  ", "_"},
		{"", "_"},
		{"Łukasz", "ukasz"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func newTestRepo(tasks ...task.Task) (*Repo, *MemoryStore) {
	store := NewMemoryStore(tasks...)
	r := NewRepo(store)
	r.now = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) }
	return r, store
}

func TestRepoCreate(t *testing.T) {
	r, store := newTestRepo(sampleTasks()...)

	created, err := r.Create(Draft{
		Title:    "  Buy milk ",
		Due:      time.Date(2024, 2, 2, 18, 0, 0, 0, time.UTC),
		Priority: task.PriorityLow,
		Subtasks: []string{"skim", " ", "oat"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Title != "Buy milk" {
		t.Errorf("Title = %q, want trimmed", created.Title)
	}
	if created.ID == "" || created.Completed {
		t.Errorf("unexpected new task: %+v", created)
	}
	if !created.CreatedAt.Equal(r.now()) {
		t.Errorf("CreatedAt = %v, want %v", created.CreatedAt, r.now())
	}
	wantSubs := []task.Subtask{{Title: "skim"}, {Title: "oat"}}
	if diff := cmp.Diff(wantSubs, created.Subtasks); diff != "" {
		t.Errorf("subtasks mismatch (-want +got):\n%s", diff)
	}

	all, _ := r.List()
	if len(all) != 3 || all[2].ID != created.ID {
		t.Errorf("new task should be appended last, got %d tasks", len(all))
	}
	if store.Saves() != 1 {
		t.Errorf("Saves = %d, want 1", store.Saves())
	}
}

func TestRepoCreateValidation(t *testing.T) {
	due := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"empty title", Draft{Title: " ", Due: due, Priority: task.PriorityLow}, tickerrors.EmptyTitleError{}},
		{"bad priority", Draft{Title: "x", Due: due, Priority: "urgent"}, tickerrors.InvalidPriorityError{Value: "urgent"}},
		{"no due", Draft{Title: "x", Priority: task.PriorityLow}, tickerrors.InvalidDateError{}},
		{"bad recurrence", Draft{Title: "x", Due: due, Priority: task.PriorityLow, Recurrence: "yearly"}, tickerrors.InvalidRecurrenceError{Value: "yearly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newTestRepo()
			_, err := r.Create(tt.draft)
			if fmt.Sprintf("%T", err) != fmt.Sprintf("%T", tt.want) {
				t.Errorf("err = %T (%v), want %T", err, err, tt.want)
			}
			if store.Saves() != 0 {
				t.Error("invalid draft must not be saved")
			}
		})
	}
}

func TestRepoGetNotFound(t *testing.T) {
	r, _ := newTestRepo(sampleTasks()...)

	_, err := r.Get("zzzz")
	var nf tickerrors.TaskNotFoundError
	if !errors.As(err, &nf) || nf.ID != "zzzz" {
		t.Errorf("expected TaskNotFoundError{zzzz}, got %v", err)
	}
}

func TestRepoReplaceKeepsIdentity(t *testing.T) {
	r, _ := newTestRepo(sampleTasks()...)
	orig, _ := r.Get("a1b2")

	edited := orig.Clone()
	edited.ID = "other"
	edited.CreatedAt = time.Time{}
	edited.Title = "Pay rent (edited)"
	edited.Priority = task.PriorityLow

	got, err := r.Replace("a1b2", edited)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got.ID != "a1b2" || !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("identity changed: %+v", got)
	}

	all, _ := r.List()
	if all[0].Title != "Pay rent (edited)" || all[0].Priority != task.PriorityLow {
		t.Errorf("edit not stored in place: %+v", all[0])
	}
}

func TestRepoToggleComplete(t *testing.T) {
	r, _ := newTestRepo(sampleTasks()...)

	got, err := r.ToggleComplete("a1b2")
	if err != nil || !got.Completed {
		t.Fatalf("first toggle: %+v, %v", got, err)
	}
	got, err = r.ToggleComplete("a1b2")
	if err != nil || got.Completed {
		t.Fatalf("second toggle: %+v, %v", got, err)
	}
}

func TestRepoSubtasks(t *testing.T) {
	r, _ := newTestRepo(sampleTasks()...)

	got, err := r.ToggleSubtask("c3d4", 2)
	if err != nil {
		t.Fatalf("ToggleSubtask failed: %v", err)
	}
	if got.SubtasksDone() != 2 {
		t.Errorf("SubtasksDone = %d, want 2", got.SubtasksDone())
	}

	_, err = r.ToggleSubtask("c3d4", 3)
	var se tickerrors.SubtaskNotFoundError
	if !errors.As(err, &se) || se.Index != 3 || se.Count != 2 {
		t.Errorf("expected SubtaskNotFoundError{3 of 2}, got %v", err)
	}

	got, err = r.AddSubtask("c3d4", "proofread")
	if err != nil {
		t.Fatalf("AddSubtask failed: %v", err)
	}
	if len(got.Subtasks) != 3 || got.Subtasks[2].Title != "proofread" || got.Subtasks[2].Completed {
		t.Errorf("unexpected subtasks: %+v", got.Subtasks)
	}

	if _, err = r.AddSubtask("c3d4", "  "); !errors.Is(err, tickerrors.EmptyTitleError{}) {
		t.Errorf("expected EmptyTitleError, got %v", err)
	}
}

func TestRepoDelete(t *testing.T) {
	r, _ := newTestRepo(sampleTasks()...)

	if err := r.Delete("a1b2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	all, _ := r.List()
	if len(all) != 1 || all[0].ID != "c3d4" {
		t.Errorf("unexpected tasks after delete: %+v", all)
	}

	var nf tickerrors.TaskNotFoundError
	if err := r.Delete("a1b2"); !errors.As(err, &nf) {
		t.Errorf("second delete: expected TaskNotFoundError, got %v", err)
	}
}

func TestRepoReplaceKeepsUnsupportedRecurrence(t *testing.T) {
	legacy := sampleTasks()[0]
	legacy.Recurrence = task.Recurrence("yearly")
	r, _ := newTestRepo(legacy)

	edited := legacy.Clone()
	edited.Title = "Renew lease"
	got, err := r.Replace(legacy.ID, edited)
	if err != nil {
		t.Fatalf("editing an untouched recurrence failed: %v", err)
	}
	if got.Title != "Renew lease" || got.Recurrence != task.Recurrence("yearly") {
		t.Errorf("unexpected task after edit: %+v", got)
	}

	edited.Recurrence = task.Recurrence("hourly")
	var re tickerrors.InvalidRecurrenceError
	if _, err = r.Replace(legacy.ID, edited); !errors.As(err, &re) || re.Value != "hourly" {
		t.Errorf("expected InvalidRecurrenceError for a changed rule, got %v", err)
	}

	edited.Recurrence = task.RecurrenceWeekly
	if got, err = r.Replace(legacy.ID, edited); err != nil || got.Recurrence != task.RecurrenceWeekly {
		t.Errorf("fixing the rule failed: %+v, %v", got, err)
	}
}
