package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dto "task-management.com/task-management/internal/data_models"
	apperrors "task-management.com/task-management/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func ValidateCreateTaskRequest(r *dto.TaskRequest) error {
	if err := validate.Struct(r); err != nil {
		return invalid(err)
	}
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ErrInvalidTask.Withf("title must not be blank")
	}
	return nil
}

// ValidateUpdateTaskRequest checks a full replacement of the mutable fields,
// so status and priority are mandatory.
func ValidateUpdateTaskRequest(r *dto.TaskRequest) error {
	if err := ValidateCreateTaskRequest(r); err != nil {
		return err
	}
	if r.Status == "" {
		return apperrors.ErrInvalidTask.Withf("status is required")
	}
	if r.Priority == "" {
		return apperrors.ErrInvalidTask.Withf("priority is required")
	}
	return nil
}

func ValidateBulkUpdateRequest(items []dto.TaskRequest) error {
	for i := range items {
		if items[i].ID <= 0 {
			return apperrors.ErrTaskIDRequired.Withf("task at index %d has no id", i)
		}
		if err := ValidateUpdateTaskRequest(&items[i]); err != nil {
			return apperrors.ErrInvalidTask.Withf("task %d: %s", items[i].ID, apperrors.Message(err))
		}
	}
	return nil
}

func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.ErrInvalidTask.Wrap(err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return apperrors.ErrInvalidTask.Withf("invalid task: %s", strings.Join(fields, ", "))
}
