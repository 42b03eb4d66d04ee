package commands

import (
	"context"
	"fmt"
	"strconv"
	"unicode"

	"taskdeck/internal/api"
	"taskdeck/internal/store"
)

// refError is a bad or unresolvable display reference. Always a user
// error, never a backend one.
type refError struct {
	msg string
}

func (e *refError) Error() string { return e.msg }

// parseRef parses a 1-based display number as printed by the list command.
func parseRef(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, &refError{msg: fmt.Sprintf("invalid reference: %s", s)}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &refError{msg: fmt.Sprintf("invalid reference: %s", s)}
	}
	return n, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// taskByNumber resolves a displayed task number against the current
// collection, fetching it first when it hasn't been loaded yet.
func taskByNumber(ctx context.Context, st *store.Stores, num int) (api.Task, error) {
	state := st.Tasks.State()
	if len(state.Tasks) == 0 {
		if err := st.Tasks.Fetch(ctx); err != nil {
			return api.Task{}, err
		}
		state = st.Tasks.State()
	}

	if num < 1 || num > len(state.Tasks) {
		return api.Task{}, &refError{msg: fmt.Sprintf("task number out of range: %d", num)}
	}
	return state.Tasks[num-1], nil
}

// itemByNumber resolves a displayed checklist item number within a task.
func itemByNumber(task api.Task, num int) (api.ChecklistItem, error) {
	if num < 1 || num > len(task.Checklist) {
		return api.ChecklistItem{}, &refError{msg: fmt.Sprintf("item number out of range: %d", num)}
	}
	return task.Checklist[num-1], nil
}
