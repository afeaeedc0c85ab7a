package dto

import (
	"time"

	"task-management.com/task-management/internal/constants"
	model "task-management.com/task-management/internal/models"
)

// TaskRequest is the body of create, update and each bulk update entry.
type TaskRequest struct {
	ID          int64      `json:"id" validate:"gte=0"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"max=1000"`
	DueDate     *time.Time `json:"due_date" validate:"required"`
	Status      string     `json:"status" validate:"omitempty,oneof=Pending InProgress Completed"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=Low Normal Urgent"`
}

func (r TaskRequest) ToModel() model.Task {
	task := model.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      constants.TaskStatus(r.Status),
		Priority:    constants.TaskPriority(r.Priority),
	}
	if r.DueDate != nil {
		task.DueDate = r.DueDate.UTC()
	}
	return task
}

type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type TaskListResponse struct {
	Count int            `json:"count"`
	Tasks []TaskResponse `json:"tasks"`
}

func NewTaskListResponse(tasks []model.Task) TaskListResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = NewTaskResponse(&tasks[i])
	}
	return TaskListResponse{Count: len(out), Tasks: out}
}

type BulkUpdateResponse struct {
	Updated int `json:"updated"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
