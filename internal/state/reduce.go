package state

import "tasktime/internal/models"

// Reduce returns the state that results from applying a to s. It never
// modifies s; unknown actions return an unchanged copy.
func Reduce(s State, a Action) State {
	next := s.Clone()

	switch a := a.(type) {
	case Loaded:
		next.Tasks = cloneTasks(a.Tasks)
		if next.Tasks == nil {
			next.Tasks = []models.Task{}
		}
		next.Loaded = true
		next.Error = ""
		next.dropStaleSelections()

	case LoadFailed:
		next.Error = a.Message

	case InputChanged:
		next.Name = a.Name
		next.Description = a.Description

	case OperationDraftChanged:
		next.OperationDraft = a.Value

	case SpentTimeDraftChanged:
		next.SpentTimeDraft = a.Value

	case TaskCreated:
		task := a.Task
		task.Operations = []models.Operation{}
		next.Tasks = append(next.Tasks, task)
		next.Name = ""
		next.Description = ""
		next.Error = ""

	case TaskFinished:
		for i, t := range next.Tasks {
			if t.ID != a.Task.ID {
				continue
			}
			status := a.Task.Status
			if _, ok := models.ValidStatuses[status]; !ok || t.Status == models.StatusClosed {
				status = models.StatusClosed
			}
			ops := t.Operations
			next.Tasks[i] = a.Task
			next.Tasks[i].Status = status
			next.Tasks[i].Operations = ops
		}
		next.Error = ""
		next.dropStaleSelections()

	case TaskDeleted:
		kept := make([]models.Task, 0, len(next.Tasks))
		for _, t := range next.Tasks {
			if t.ID != a.ID {
				kept = append(kept, t)
			}
		}
		next.Tasks = kept
		next.Error = ""
		next.dropStaleSelections()

	case OperationAdded:
		for i, t := range next.Tasks {
			if t.ID == a.Operation.TaskID {
				next.Tasks[i].Operations = append(next.Tasks[i].Operations, a.Operation)
			}
		}
		next.ActiveTaskID = nil
		next.OperationDraft = ""
		next.Error = ""

	case OperationUpdated:
		for i, t := range next.Tasks {
			for j, op := range t.Operations {
				if op.ID == a.Operation.ID {
					next.Tasks[i].Operations[j] = a.Operation
				}
			}
		}
		next.ActiveOperationID = nil
		next.SpentTimeDraft = ""
		next.Error = ""

	case OperationDeleted:
		for i, t := range next.Tasks {
			kept := make([]models.Operation, 0, len(t.Operations))
			for _, op := range t.Operations {
				if op.ID != a.ID {
					kept = append(kept, op)
				}
			}
			next.Tasks[i].Operations = kept
		}
		next.Error = ""
		next.dropStaleSelections()

	case TaskSelected:
		if t, ok := next.FindTask(a.ID); ok && t.IsOpen() {
			id := a.ID
			next.ActiveTaskID = &id
			next.OperationDraft = ""
		}

	case OperationSelected:
		if _, t, ok := next.FindOperation(a.ID); ok && t.IsOpen() {
			id := a.ID
			next.ActiveOperationID = &id
			next.SpentTimeDraft = ""
		}

	case SelectionCleared:
		switch a.Kind {
		case SelectionTask:
			next.ActiveTaskID = nil
			next.OperationDraft = ""
		case SelectionOperation:
			next.ActiveOperationID = nil
			next.SpentTimeDraft = ""
		}

	case Failed:
		next.Error = a.Message

	case ErrorDismissed:
		next.Error = ""
	}

	return next
}

// dropStaleSelections closes forms whose target is gone or no longer open.
func (s *State) dropStaleSelections() {
	if s.ActiveTaskID != nil {
		if t, ok := s.FindTask(*s.ActiveTaskID); !ok || !t.IsOpen() {
			s.ActiveTaskID = nil
			s.OperationDraft = ""
		}
	}
	if s.ActiveOperationID != nil {
		if _, t, ok := s.FindOperation(*s.ActiveOperationID); !ok || !t.IsOpen() {
			s.ActiveOperationID = nil
			s.SpentTimeDraft = ""
		}
	}
}
