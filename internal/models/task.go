package model

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"task-management.com/task-management/internal/constants"
)

type Task struct {
	ID          int64                  `gorm:"primaryKey" json:"id"`
	Title       string                 `gorm:"size:255;not null" json:"title" validate:"notblank,max=255"`
	Description string                 `gorm:"size:1000" json:"description" validate:"max=1000"`
	DueDate     time.Time              `gorm:"not null;index" json:"due_date" validate:"required"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null" json:"status" validate:"oneof=Pending InProgress Completed"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null" json:"priority" validate:"oneof=Low Normal Urgent"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Validate checks the field constraints of the record. It does not apply any
// transition rules.
func (t *Task) Validate() error {
	return validate.Struct(t)
}
