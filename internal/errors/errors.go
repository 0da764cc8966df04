//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// TaskNotFoundError indicates no task in the collection has the given ID.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// InvalidDateError indicates a due date that cannot be parsed as a timestamp.
type InvalidDateError struct {
	ID    string
	Value string
}

func (e InvalidDateError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid date: %q", e.Value)
	}
	return fmt.Sprintf("task %s has invalid due date: %q", e.ID, e.Value)
}

// InvalidPriorityError indicates an invalid priority value.
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: high, medium, low)", e.Value)
}

// InvalidRecurrenceError indicates a recurrence value outside none, daily, weekly, monthly.
type InvalidRecurrenceError struct {
	Value string
}

func (e InvalidRecurrenceError) Error() string {
	return fmt.Sprintf("invalid recurrence: %s (valid: none, daily, weekly, monthly)", e.Value)
}

// EmptyTitleError indicates a task or subtask without a title.
type EmptyTitleError struct{}

func (e EmptyTitleError) Error() string {
	return "title is required"
}

// SubtaskNotFoundError indicates a subtask index outside the task's subtask list.
type SubtaskNotFoundError struct {
	ID    string
	Index int
	Count int
}

func (e SubtaskNotFoundError) Error() string {
	return fmt.Sprintf("task %s has no subtask %d (have %d)", e.ID, e.Index, e.Count)
}

// NotLoggedInError indicates a command that needs a session was run without one.
type NotLoggedInError struct{}

func (e NotLoggedInError) Error() string {
	return "not logged in: run 'tick login' first"
}

// LoginFailedError indicates an unknown user or a wrong password.
type LoginFailedError struct{}

func (e LoginFailedError) Error() string {
	return "login failed: unknown user or wrong password"
}

// AccountExistsError indicates a signup for a username that is already registered.
type AccountExistsError struct {
	Username string
}

func (e AccountExistsError) Error() string {
	return fmt.Sprintf("account already exists: %s", e.Username)
}

// PasswordMismatchError indicates the password confirmation did not match.
type PasswordMismatchError struct{}

func (e PasswordMismatchError) Error() string {
	return "passwords do not match"
}

// MissingCredentialsError indicates an empty username or password.
type MissingCredentialsError struct{}

func (e MissingCredentialsError) Error() string {
	return "username and password are required"
}

// InvalidThemeError indicates a theme other than light or dark.
type InvalidThemeError struct {
	Value string
}

func (e InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme: %s (valid: light, dark)", e.Value)
}

// FastForwardError indicates the recurrence cursor could not be moved past the reference time
// within the iteration limit.
type FastForwardError struct {
	ID    string
	Limit int
}

func (e FastForwardError) Error() string {
	return fmt.Sprintf("task %s: recurrence did not pass the current time within %d steps", e.ID, e.Limit)
}

// InvalidSortKeyError indicates a sort order other than none, due or priority.
type InvalidSortKeyError struct {
	Value string
}

func (e InvalidSortKeyError) Error() string {
	return fmt.Sprintf("invalid sort: %s (valid: none, due, priority)", e.Value)
}
