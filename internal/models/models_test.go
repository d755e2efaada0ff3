package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskReply_Apply(t *testing.T) {
	added := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	local := Task{ID: 1, Name: "write report", Description: "q2", AddedDate: added, Status: StatusClosed,
		Operations: []Operation{{ID: 5, TaskID: 1}}}

	tests := []struct {
		name string
		body string
		want Task
	}{
		{name: "empty", body: `{}`, want: local},
		{name: "null", body: `null`, want: local},
		{
			name: "partial",
			body: `{"name":"renamed"}`,
			want: Task{ID: 1, Name: "renamed", Description: "q2", AddedDate: added, Status: StatusClosed,
				Operations: local.Operations},
		},
		{name: "unknown status", body: `{"status":""}`, want: local},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reply TaskReply
			require.NoError(t, json.Unmarshal([]byte(tt.body), &reply))
			assert.Equal(t, tt.want, reply.Apply(local))
		})
	}
}

func TestOperationReply_Apply(t *testing.T) {
	local := Operation{ID: 5, TaskID: 1, Description: "draft", SpentTime: 100}

	var reply OperationReply
	require.NoError(t, json.Unmarshal([]byte(`{"spentTime":130}`), &reply))

	got := reply.Apply(local)
	assert.Equal(t, 130, got.SpentTime)
	assert.Equal(t, "draft", got.Description)
	assert.Equal(t, int64(1), got.TaskID)
}
