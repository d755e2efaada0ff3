package state

import "tasktime/internal/models"

// Action is a state transition request handled by Reduce.
type Action interface {
	isAction()
}

// Selection names one of the two single-slot form selections.
type Selection int

const (
	SelectionTask Selection = iota
	SelectionOperation
)

type (
	// Loaded replaces the task list with an already joined snapshot.
	Loaded struct{ Tasks []models.Task }
	// LoadFailed keeps the current tasks and reports the failure.
	LoadFailed struct{ Message string }
	// InputChanged records the add-task form inputs.
	InputChanged struct{ Name, Description string }
	// OperationDraftChanged records the add-operation form input.
	OperationDraftChanged struct{ Value string }
	// SpentTimeDraftChanged records the add-spent-time form input.
	SpentTimeDraftChanged struct{ Value string }
	// TaskCreated appends a task confirmed by the server.
	TaskCreated struct{ Task models.Task }
	// TaskFinished applies the server's view of a finished task.
	TaskFinished struct{ Task models.Task }
	// TaskDeleted removes a task.
	TaskDeleted struct{ ID int64 }
	// OperationAdded appends a new operation to its task.
	OperationAdded struct{ Operation models.Operation }
	// OperationUpdated replaces an operation with the server's copy.
	OperationUpdated struct{ Operation models.Operation }
	// OperationDeleted removes one operation.
	OperationDeleted struct{ ID int64 }
	// TaskSelected opens the add-operation form of a task.
	TaskSelected struct{ ID int64 }
	// OperationSelected opens the add-spent-time form of an operation.
	OperationSelected struct{ ID int64 }
	// SelectionCleared closes one of the forms.
	SelectionCleared struct{ Kind Selection }
	// Failed reports a failed action without touching anything else.
	Failed struct{ Message string }
	// ErrorDismissed clears the error banner.
	ErrorDismissed struct{}
)

func (Loaded) isAction()                {}
func (LoadFailed) isAction()            {}
func (InputChanged) isAction()          {}
func (OperationDraftChanged) isAction() {}
func (SpentTimeDraftChanged) isAction() {}
func (TaskCreated) isAction()           {}
func (TaskFinished) isAction()          {}
func (TaskDeleted) isAction()           {}
func (OperationAdded) isAction()        {}
func (OperationUpdated) isAction()      {}
func (OperationDeleted) isAction()      {}
func (TaskSelected) isAction()          {}
func (OperationSelected) isAction()     {}
func (SelectionCleared) isAction()      {}
func (Failed) isAction()                {}
func (ErrorDismissed) isAction()        {}
