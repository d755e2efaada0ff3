package state

import "tasktime/internal/models"

// Join attaches every operation to the task its TaskID points at. Inputs are
// not modified; each returned task has a non-nil Operations slice in the
// order the operations were given.
func Join(tasks []models.Task, ops []models.Operation) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		joined := t
		joined.Operations = []models.Operation{}
		for _, op := range ops {
			if op.TaskID == t.ID {
				joined.Operations = append(joined.Operations, op)
			}
		}
		out = append(out, joined)
	}
	return out
}

// Orphans returns the operations whose TaskID matches none of tasks.
func Orphans(tasks []models.Task, ops []models.Operation) []models.Operation {
	known := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		known[t.ID] = struct{}{}
	}
	var orphans []models.Operation
	for _, op := range ops {
		if _, ok := known[op.TaskID]; !ok {
			orphans = append(orphans, op)
		}
	}
	return orphans
}
