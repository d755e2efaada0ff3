package apiclient

import (
	"context"

	"tasktime/internal/models"
)

// ListTasks fetches the whole task collection.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.CallTasks(ctx, Call{Method: MethodGet}, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask posts a new task and returns it with its server-assigned id.
func (c *Client) CreateTask(ctx context.Context, task models.NewTask) (models.Task, error) {
	var created models.Task
	if err := c.CallTasks(ctx, Call{Method: MethodPost, Data: task}, &created); err != nil {
		return models.Task{}, err
	}
	return created, nil
}

// PatchTask applies a partial update and returns whatever fields the server
// echoed back. A reply without a body comes back empty.
func (c *Client) PatchTask(ctx context.Context, id int64, patch models.TaskPatch) (models.TaskReply, error) {
	var reply models.TaskReply
	if err := c.CallTasks(ctx, Call{ID: &id, Method: MethodPatch, Data: patch}, &reply); err != nil {
		return models.TaskReply{}, err
	}
	return reply, nil
}

// DeleteTask removes a task. Its operations are left alone.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.CallTasks(ctx, Call{ID: &id, Method: MethodDelete}, nil)
}

// ListOperations fetches the whole operation collection.
func (c *Client) ListOperations(ctx context.Context) ([]models.Operation, error) {
	var ops []models.Operation
	if err := c.CallOperations(ctx, Call{Method: MethodGet}, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// CreateOperation posts a new operation.
func (c *Client) CreateOperation(ctx context.Context, op models.NewOperation) (models.Operation, error) {
	var created models.Operation
	if err := c.CallOperations(ctx, Call{Method: MethodPost, Data: op}, &created); err != nil {
		return models.Operation{}, err
	}
	return created, nil
}

// PatchOperation applies a partial update to an operation.
func (c *Client) PatchOperation(ctx context.Context, id int64, patch models.OperationPatch) (models.OperationReply, error) {
	var reply models.OperationReply
	if err := c.CallOperations(ctx, Call{ID: &id, Method: MethodPatch, Data: patch}, &reply); err != nil {
		return models.OperationReply{}, err
	}
	return reply, nil
}

// DeleteOperation removes an operation.
func (c *Client) DeleteOperation(ctx context.Context, id int64) error {
	return c.CallOperations(ctx, Call{ID: &id, Method: MethodDelete}, nil)
}
