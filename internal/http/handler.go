package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "task-management.com/task-management/internal/data_models"
	apperrors "task-management.com/task-management/internal/errors"
	"task-management.com/task-management/internal/http/validators"
	model "task-management.com/task-management/internal/models"
	"task-management.com/task-management/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewTaskListResponse(tasks))
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON.Wrap(err)
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req.ToModel())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/tasks/%d", task.ID))
	return c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON.Wrap(err)
	}
	if req.ID != 0 && req.ID != id {
		return apperrors.ErrIDMismatch
	}
	req.ID = id

	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), req.ToModel())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

func (h *Handler) BulkUpdateTasks(c echo.Context) error {
	var req []dto.TaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON.Wrap(err)
	}
	if err := validators.ValidateBulkUpdateRequest(req); err != nil {
		return err
	}

	tasks := make([]model.Task, len(req))
	for i := range req {
		tasks[i] = req[i].ToModel()
	}

	updated, err := h.taskService.BulkUpdateTasks(c.Request().Context(), tasks)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.BulkUpdateResponse{Updated: updated})
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func taskID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	if raw == "" {
		return 0, apperrors.ErrTaskIDRequired
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrTaskIDRequired.Withf("invalid task id %q", raw)
	}
	return id, nil
}
