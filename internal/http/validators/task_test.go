package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "task-management.com/task-management/internal/data_models"
	apperrors "task-management.com/task-management/internal/errors"
)

func validRequest() dto.TaskRequest {
	due := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return dto.TaskRequest{
		Title:    "Write report",
		DueDate:  &due,
		Status:   "Pending",
		Priority: "Normal",
	}
}

func TestValidateCreateTaskRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *dto.TaskRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(r *dto.TaskRequest) {}},
		{name: "status and priority optional", mutate: func(r *dto.TaskRequest) {
			r.Status = ""
			r.Priority = ""
		}},
		{name: "missing title", mutate: func(r *dto.TaskRequest) { r.Title = "" }, wantErr: "title failed on required"},
		{name: "blank title", mutate: func(r *dto.TaskRequest) { r.Title = "   " }, wantErr: "title must not be blank"},
		{name: "missing due date", mutate: func(r *dto.TaskRequest) { r.DueDate = nil }, wantErr: "due_date failed on required"},
		{name: "unknown status", mutate: func(r *dto.TaskRequest) { r.Status = "Done" }, wantErr: "status failed on oneof"},
		{name: "unknown priority", mutate: func(r *dto.TaskRequest) { r.Priority = "High" }, wantErr: "priority failed on oneof"},
		{name: "negative id", mutate: func(r *dto.TaskRequest) { r.ID = -1 }, wantErr: "id failed on gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := ValidateCreateTaskRequest(&req)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrInvalidTask)
			assert.Contains(t, apperrors.Message(err), tt.wantErr)
		})
	}
}

func TestValidateUpdateTaskRequest_RequiresStatusAndPriority(t *testing.T) {
	req := validRequest()
	req.Status = ""
	err := ValidateUpdateTaskRequest(&req)
	require.ErrorIs(t, err, apperrors.ErrInvalidTask)
	assert.Equal(t, "status is required", apperrors.Message(err))

	req = validRequest()
	req.Priority = ""
	err = ValidateUpdateTaskRequest(&req)
	require.ErrorIs(t, err, apperrors.ErrInvalidTask)
	assert.Equal(t, "priority is required", apperrors.Message(err))
}

func TestValidateBulkUpdateRequest(t *testing.T) {
	first := validRequest()
	first.ID = 1
	second := validRequest()
	second.ID = 2

	require.NoError(t, ValidateBulkUpdateRequest(nil))
	require.NoError(t, ValidateBulkUpdateRequest([]dto.TaskRequest{first, second}))

	second.ID = 0
	err := ValidateBulkUpdateRequest([]dto.TaskRequest{first, second})
	require.ErrorIs(t, err, apperrors.ErrTaskIDRequired)
	assert.Equal(t, "task at index 1 has no id", apperrors.Message(err))

	second.ID = 2
	second.Status = "Done"
	err = ValidateBulkUpdateRequest([]dto.TaskRequest{first, second})
	require.ErrorIs(t, err, apperrors.ErrInvalidTask)
	assert.Contains(t, apperrors.Message(err), "task 2:")
}
