package app

import (
	"context"
	"encoding/json"
	"sync"

	"tasktime/internal/apperr"
	"tasktime/internal/models"
)

// fakeAPI is an in-memory backend that records calls and can be told to fail.
type fakeAPI struct {
	mu     sync.Mutex
	tasks  []models.Task
	ops    []models.Operation
	nextID int64
	calls  []string
	errs   map[string]error

	// patchReply rewrites what the PATCH endpoints send back.
	patchReply func(full map[string]any) map[string]any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 1, errs: map[string]error{}}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeAPI) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ListTasks(ctx context.Context) ([]models.Task, error) {
	if err := f.record("ListTasks"); err != nil {
		return nil, err
	}
	return append([]models.Task{}, f.tasks...), nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	if err := f.record("CreateTask"); err != nil {
		return models.Task{}, err
	}
	t := models.Task{ID: f.nextID, Name: in.Name, Description: in.Description, AddedDate: in.AddedDate, Status: in.Status}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// reply round-trips v through JSON the way a real backend answer would,
// optionally trimmed by patchReply.
func (f *fakeAPI) reply(v, out any) {
	raw, _ := json.Marshal(v)
	var full map[string]any
	_ = json.Unmarshal(raw, &full)
	if f.patchReply != nil {
		full = f.patchReply(full)
	}
	raw, _ = json.Marshal(full)
	_ = json.Unmarshal(raw, out)
}

func (f *fakeAPI) PatchTask(ctx context.Context, id int64, patch models.TaskPatch) (models.TaskReply, error) {
	if err := f.record("PatchTask"); err != nil {
		return models.TaskReply{}, err
	}
	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Status != nil {
				f.tasks[i].Status = *patch.Status
			}
			var reply models.TaskReply
			f.reply(f.tasks[i], &reply)
			return reply, nil
		}
	}
	return models.TaskReply{}, apperr.NewStatusError("PATCH", "/tasks", 404, "")
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id int64) error {
	if err := f.record("DeleteTask"); err != nil {
		return err
	}
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

func (f *fakeAPI) ListOperations(ctx context.Context) ([]models.Operation, error) {
	if err := f.record("ListOperations"); err != nil {
		return nil, err
	}
	return append([]models.Operation{}, f.ops...), nil
}

func (f *fakeAPI) CreateOperation(ctx context.Context, in models.NewOperation) (models.Operation, error) {
	if err := f.record("CreateOperation"); err != nil {
		return models.Operation{}, err
	}
	op := models.Operation{ID: f.nextID, TaskID: in.TaskID, Description: in.Description, AddedDate: in.AddedDate, SpentTime: in.SpentTime}
	f.nextID++
	f.ops = append(f.ops, op)
	return op, nil
}

func (f *fakeAPI) PatchOperation(ctx context.Context, id int64, patch models.OperationPatch) (models.OperationReply, error) {
	if err := f.record("PatchOperation"); err != nil {
		return models.OperationReply{}, err
	}
	for i, op := range f.ops {
		if op.ID == id {
			if patch.SpentTime != nil {
				f.ops[i].SpentTime = *patch.SpentTime
			}
			var reply models.OperationReply
			f.reply(f.ops[i], &reply)
			return reply, nil
		}
	}
	return models.OperationReply{}, apperr.NewStatusError("PATCH", "/operations", 404, "")
}

func (f *fakeAPI) DeleteOperation(ctx context.Context, id int64) error {
	if err := f.record("DeleteOperation"); err != nil {
		return err
	}
	kept := f.ops[:0]
	for _, op := range f.ops {
		if op.ID != id {
			kept = append(kept, op)
		}
	}
	f.ops = kept
	return nil
}

func (f *fakeAPI) operationIDs() []int64 {
	ids := make([]int64, 0, len(f.ops))
	for _, op := range f.ops {
		ids = append(ids, op.ID)
	}
	return ids
}
