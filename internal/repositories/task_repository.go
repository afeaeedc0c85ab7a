package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	model "task-management.com/task-management/internal/models"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrDuplicateID  = errors.New("task id already exists")
)

// Store is the persistence port consumed by the task service.
type Store interface {
	FindByID(ctx context.Context, id int64) (*model.Task, error)
	FindByIDs(ctx context.Context, ids []int64) ([]model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	// Update reports whether a row was changed.
	Update(ctx context.Context, task *model.Task) (bool, error)
	// UpdateMany writes every task or none of them.
	UpdateMany(ctx context.Context, tasks []model.Task) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// Transaction runs fn against a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type TaskRepository struct {
	db *gorm.DB
}

var _ Store = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var tasks []model.Task
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("id asc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(updateColumns(task))

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *TaskRepository) UpdateMany(ctx context.Context, tasks []model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range tasks {
			res := tx.Model(&model.Task{}).
				Where("id = ?", tasks[i].ID).
				Updates(updateColumns(&tasks[i]))

			if res.Error != nil {
				return fmt.Errorf("update task %d: %w", tasks[i].ID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("update task %d: %w", tasks[i].ID, ErrTaskNotFound)
			}
		}
		return nil
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *TaskRepository) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TaskRepository{db: tx})
	})
}

// updateColumns lists every mutable column explicitly so zero values are
// written and updated_at carries the caller's timestamp.
func updateColumns(task *model.Task) map[string]interface{} {
	return map[string]interface{}{
		"title":       task.Title,
		"description": task.Description,
		"due_date":    task.DueDate,
		"status":      task.Status,
		"priority":    task.Priority,
		"updated_at":  task.UpdatedAt,
	}
}
