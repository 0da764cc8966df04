package main

import (
	"strings"
	"time"

	tickerrors "github.com/abatilo/tick/internal/errors"
	"github.com/abatilo/tick/internal/filter"
	"github.com/abatilo/tick/internal/storage"
	"github.com/abatilo/tick/internal/task"
)

// taskFlags are the task fields shared by add and edit.
type taskFlags struct {
	title       string
	description string
	due         string
	priority    string
	category    string
	recurrence  string
	subtasks    []string
}

// draft validates the flags into a storage.Draft. Due dates are read in loc.
func (f taskFlags) draft(title string, loc *time.Location) (storage.Draft, error) {
	d := storage.Draft{
		Title:       title,
		Description: f.description,
		Category:    strings.TrimSpace(f.category),
		Subtasks:    f.subtasks,
	}
	if strings.TrimSpace(title) == "" {
		return d, tickerrors.EmptyTitleError{}
	}

	var err error
	if d.Due, err = task.ParseDue(f.due, loc); err != nil {
		return d, err
	}
	if d.Priority, err = task.ParsePriority(f.priority); err != nil {
		return d, err
	}
	if d.Recurrence, err = task.ParseRecurrence(f.recurrence); err != nil {
		return d, err
	}
	return d, nil
}

// changed reports whether a named flag was set on the command line.
type changed func(name string) bool

// apply overwrites the fields of t whose flags were set.
func (f taskFlags) apply(t task.Task, isSet changed, loc *time.Location) (task.Task, error) {
	t = t.Clone()
	var err error
	if isSet("title") {
		t.Title = f.title
	}
	if isSet("description") {
		t.Description = f.description
	}
	if isSet("due") {
		if t.Due, err = task.ParseDue(f.due, loc); err != nil {
			return t, err
		}
	}
	if isSet("priority") {
		if t.Priority, err = task.ParsePriority(f.priority); err != nil {
			return t, err
		}
	}
	if isSet("category") {
		t.Category = strings.TrimSpace(f.category)
	}
	if isSet("repeat") {
		if t.Recurrence, err = task.ParseRecurrence(f.recurrence); err != nil {
			return t, err
		}
	}
	return t, nil
}

// listFlags are the filter and expansion options of list.
type listFlags struct {
	search     string
	priority   string
	category   string
	due        string
	recurrence string
	noExpand   bool
	count      int
	sort       string
}

// filterConfig turns the list flags into a filter.Config. Empty flags add no constraint.
func (f listFlags) filterConfig(loc *time.Location) (filter.Config, error) {
	c := filter.Config{
		Search:   strings.TrimSpace(f.search),
		Category: strings.TrimSpace(f.category),
		Location: loc,
	}
	var err error
	if f.priority != "" {
		if c.Priority, err = task.ParsePriority(f.priority); err != nil {
			return c, err
		}
	}
	if f.recurrence != "" {
		if c.Recurrence, err = task.ParseRecurrence(f.recurrence); err != nil {
			return c, err
		}
	}
	if f.due != "" {
		if c.DueDate, err = task.ParseDue(f.due, loc); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (f listFlags) sortKey() (filter.SortKey, error) {
	key, ok := filter.ParseSortKey(f.sort)
	if !ok {
		return "", tickerrors.InvalidSortKeyError{Value: f.sort}
	}
	return key, nil
}
