package models

import "time"

// Status is the lifecycle state of a task. It only ever moves from open to closed.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// ValidStatuses enumerates the statuses the backend accepts.
var ValidStatuses = map[Status]struct{}{
	StatusOpen:   {},
	StatusClosed: {},
}

// Task is a unit of work. Operations is filled in on the client by joining the
// operations collection and is never sent back to the server.
type Task struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	AddedDate   time.Time   `json:"addedDate"`
	Status      Status      `json:"status"`
	Operations  []Operation `json:"-"`
}

// IsOpen reports whether the task still accepts operations.
func (t Task) IsOpen() bool {
	return t.Status == StatusOpen
}

// Operation is a logged piece of work under a task. SpentTime is in minutes.
type Operation struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"taskId"`
	Description string    `json:"description"`
	AddedDate   time.Time `json:"addedDate"`
	SpentTime   int       `json:"spentTime"`
}

// NewTask is the body of POST /tasks.
type NewTask struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AddedDate   time.Time `json:"addedDate"`
	Status      Status    `json:"status"`
}

// TaskPatch is the body of PATCH /tasks/{id}. Nil fields are left untouched.
type TaskPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// NewOperation is the body of POST /operations.
type NewOperation struct {
	Description string    `json:"description"`
	AddedDate   time.Time `json:"addedDate"`
	SpentTime   int       `json:"spentTime"`
	TaskID      int64     `json:"taskId"`
}

// OperationPatch is the body of PATCH /operations/{id}.
type OperationPatch struct {
	Description *string `json:"description,omitempty"`
	SpentTime   *int    `json:"spentTime,omitempty"`
}

// TaskReply is the server's answer to a task PATCH. Fields the server left
// out stay nil, and an empty reply leaves every field nil.
type TaskReply struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	AddedDate   *time.Time `json:"addedDate"`
	Status      *Status    `json:"status"`
}

// Apply lays the fields present in r over t. A status outside ValidStatuses is ignored.
func (r TaskReply) Apply(t Task) Task {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.AddedDate != nil {
		t.AddedDate = *r.AddedDate
	}
	if r.Status != nil {
		if _, ok := ValidStatuses[*r.Status]; ok {
			t.Status = *r.Status
		}
	}
	return t
}

// OperationReply is the server's answer to an operation PATCH.
type OperationReply struct {
	Description *string    `json:"description"`
	AddedDate   *time.Time `json:"addedDate"`
	SpentTime   *int       `json:"spentTime"`
}

// Apply lays the fields present in r over op.
func (r OperationReply) Apply(op Operation) Operation {
	if r.Description != nil {
		op.Description = *r.Description
	}
	if r.AddedDate != nil {
		op.AddedDate = *r.AddedDate
	}
	if r.SpentTime != nil {
		op.SpentTime = *r.SpentTime
	}
	return op
}
