//nolint:testpackage // Tests require internal access for thorough testing
package errors

import (
	"testing"
)

func TestInvalidDateError(t *testing.T) {
	tests := []struct {
		name string
		err  InvalidDateError
		want string
	}{
		{
			name: "formats error with task id",
			err:  InvalidDateError{ID: "abc123", Value: "next tuesday"},
			want: `task abc123 has invalid due date: "next tuesday"`,
		},
		{
			name: "formats error without task id",
			err:  InvalidDateError{Value: "2024-13-01"},
			want: `invalid date: "2024-13-01"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("InvalidDateError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskNotFoundError(t *testing.T) {
	err := TaskNotFoundError{ID: "xyz789"}
	want := "task not found: xyz789"
	if got := err.Error(); got != want {
		t.Errorf("TaskNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestSubtaskNotFoundError(t *testing.T) {
	err := SubtaskNotFoundError{ID: "abc", Index: 4, Count: 2}
	want := "task abc has no subtask 4 (have 2)"
	if got := err.Error(); got != want {
		t.Errorf("SubtaskNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestInvalidPriorityError(t *testing.T) {
	err := InvalidPriorityError{Value: "urgent"}
	want := "invalid priority: urgent (valid: high, medium, low)"
	if got := err.Error(); got != want {
		t.Errorf("InvalidPriorityError.Error() = %q, want %q", got, want)
	}
}

func TestFastForwardError(t *testing.T) {
	err := FastForwardError{ID: "abc", Limit: 64}
	want := "task abc: recurrence did not pass the current time within 64 steps"
	if got := err.Error(); got != want {
		t.Errorf("FastForwardError.Error() = %q, want %q", got, want)
	}
}

func TestInvalidSortKeyError(t *testing.T) {
	err := InvalidSortKeyError{Value: "title"}
	want := "invalid sort: title (valid: none, due, priority)"
	if got := err.Error(); got != want {
		t.Errorf("InvalidSortKeyError.Error() = %q, want %q", got, want)
	}
}
