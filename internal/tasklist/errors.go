package tasklist

import "errors"

var (
	ErrEmptyInput      = errors.New("task text is empty")
	ErrDuplicateText   = errors.New("task already exists")
	ErrNoSelection     = errors.New("no tasks selected")
	ErrIndexOutOfRange = errors.New("task index out of range")
	ErrCancelled       = errors.New("cancelled")
	ErrPersist         = errors.New("persist task list")
)

// User-facing messages shown through the Alerter and confirmation prompts.
const (
	msgEmptyTask      = "Task cannot be empty!"
	msgDuplicateTask  = "This task already exists!"
	msgNoSelection    = "No tasks selected!"
	msgConfirmDelete  = "Are you sure you want to delete this task?"
	msgConfirmBulkFmt = "Are you sure you want to delete %d selected tasks?"
)
