// Package state holds the application state of the task view and the pure
// transitions that change it.
package state

import (
	"tasktime/internal/models"
)

// State is everything the root view renders.
type State struct {
	// Name and Description are the pending add-task form inputs.
	Name        string
	Description string

	Tasks []models.Task

	// At most one task shows its add-operation form and at most one
	// operation shows its add-spent-time form.
	ActiveTaskID      *int64
	ActiveOperationID *int64

	OperationDraft string
	SpentTimeDraft string

	// Error is the message of the last failed action, shown until dismissed
	// or replaced by a successful action.
	Error string

	Loaded bool
}

// FindTask returns the task with the given id.
func (s State) FindTask(id int64) (models.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// FindOperation returns the operation with the given id and its parent task.
func (s State) FindOperation(id int64) (models.Operation, models.Task, bool) {
	for _, t := range s.Tasks {
		for _, op := range t.Operations {
			if op.ID == id {
				return op, t, true
			}
		}
	}
	return models.Operation{}, models.Task{}, false
}

// IsTaskActive reports whether the add-operation form is open for id.
func (s State) IsTaskActive(id int64) bool {
	return s.ActiveTaskID != nil && *s.ActiveTaskID == id
}

// IsOperationActive reports whether the add-spent-time form is open for id.
func (s State) IsOperationActive(id int64) bool {
	return s.ActiveOperationID != nil && *s.ActiveOperationID == id
}

// Clone returns a copy that shares no slices or pointers with s.
func (s State) Clone() State {
	out := s
	out.Tasks = cloneTasks(s.Tasks)
	out.ActiveTaskID = cloneID(s.ActiveTaskID)
	out.ActiveOperationID = cloneID(s.ActiveOperationID)
	return out
}

func cloneTasks(tasks []models.Task) []models.Task {
	if tasks == nil {
		return nil
	}
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t
		out[i].Operations = append([]models.Operation{}, t.Operations...)
	}
	return out
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
