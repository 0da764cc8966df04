package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/abatilo/tick/internal/logger"
	"github.com/abatilo/tick/internal/task"
)

const (
	usersDir      = "users"
	tasksFile     = "tasks.yaml"
	dirPerm       = 0o700
	filePerm      = 0o600
	tmpFilePrefix = ".tasks-"
)

// TaskStore loads and saves a whole ordered task collection.
type TaskStore interface {
	LoadTasks() ([]task.Task, error)
	SaveTasks(tasks []task.Task) error
}

// FileStore keeps a task collection in a single YAML file.
type FileStore struct {
	path string
	loc  *time.Location
}

// NewFileStore creates a FileStore at path. Due dates are read in loc (nil = time.Local).
func NewFileStore(path string, loc *time.Location) *FileStore {
	if loc == nil {
		loc = time.Local
	}
	return &FileStore{path: path, loc: loc}
}

// NewUserStore creates the FileStore for username under home (<home>/users/<name>/tasks.yaml).
func NewUserStore(home, username string, loc *time.Location) *FileStore {
	return NewFileStore(filepath.Join(home, usersDir, SanitizeName(username), tasksFile), loc)
}

// Path returns the tasks file path.
func (s *FileStore) Path() string {
	return s.path
}

// LoadTasks reads the collection. A missing file is an empty collection.
func (s *FileStore) LoadTasks() ([]task.Task, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no tasks file yet", "path", s.path)
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}

	tasks, err := DecodeTasks(content, s.loc)
	if err != nil {
		var pe ParseError
		if errors.As(err, &pe) {
			pe.Path = s.path
			return nil, pe
		}
		return nil, err
	}
	logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// SaveTasks replaces the collection on disk. The file is written to a temporary sibling and
// renamed into place so a failed write never leaves a truncated collection.
func (s *FileStore) SaveTasks(tasks []task.Task) error {
	content, err := EncodeTasks(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tmpFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write tasks: %w", err)
	}
	if err = tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// MemoryStore is an in-memory TaskStore. It hands out and keeps copies.
type MemoryStore struct {
	mu    sync.Mutex
	tasks []task.Task
	saves int
}

// NewMemoryStore creates a MemoryStore seeded with tasks.
func NewMemoryStore(tasks ...task.Task) *MemoryStore {
	return &MemoryStore{tasks: cloneAll(tasks)}
}

// LoadTasks returns a copy of the collection.
func (m *MemoryStore) LoadTasks() ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.tasks), nil
}

// SaveTasks replaces the collection with a copy of tasks.
func (m *MemoryStore) SaveTasks(tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = cloneAll(tasks)
	m.saves++
	return nil
}

// Saves returns how many times SaveTasks was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func cloneAll(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeName converts a username to a safe directory name.
// "Jane Doe" -> "jane-doe"
func SanitizeName(name string) string {
	result := unsafeNameChars.ReplaceAllString(strings.ToLower(name), "-")
	result = strings.Trim(result, "-")
	if result == "" {
		return "_"
	}
	return result
}
