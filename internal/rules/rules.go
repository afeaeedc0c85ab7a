// Package rules decides whether a proposed task mutation is admissible and
// derives time-relative urgency. Everything here is pure: the caller supplies
// the current time.
package rules

import (
	"time"

	"task-management.com/task-management/internal/constants"
	apperrors "task-management.com/task-management/internal/errors"
	model "task-management.com/task-management/internal/models"
)

const (
	urgentWindow     = 24 * time.Hour
	normalWindow     = 3 * 24 * time.Hour
	completionWindow = 3 * 24 * time.Hour
)

// DeriveUrgency classifies dueDate relative to now: due within a day is
// Urgent, within three days Normal, anything later Low. Overdue tasks are
// Urgent.
func DeriveUrgency(dueDate, now time.Time) constants.TaskPriority {
	switch {
	case !dueDate.After(now.Add(urgentWindow)):
		return constants.PriorityUrgent
	case !dueDate.After(now.Add(normalWindow)):
		return constants.PriorityNormal
	default:
		return constants.PriorityLow
	}
}

// IsOverdue reports whether the due date has already passed.
func IsOverdue(dueDate, now time.Time) bool {
	return dueDate.Before(now)
}

// ValidateTransition applies proposed onto existing when the change is
// allowed and returns the resulting record. Rejections are returned as
// ErrAlreadyCompleted or ErrCompletionTooEarly and leave existing untouched.
func ValidateTransition(existing, proposed model.Task, now time.Time) (model.Task, error) {
	if existing.Status.IsTerminal() {
		return existing, apperrors.ErrAlreadyCompleted.Withf(
			"task with ID %d is already completed and cannot be changed", existing.ID)
	}

	if proposed.Status == constants.StatusCompleted && proposed.DueDate.After(now.Add(completionWindow)) {
		return existing, apperrors.ErrCompletionTooEarly.Withf(
			"task with ID %d cannot be completed because it is due more than 3 days ahead", existing.ID)
	}

	applied := existing
	applied.Title = proposed.Title
	applied.Description = proposed.Description
	applied.DueDate = proposed.DueDate
	applied.Status = proposed.Status
	applied.Priority = proposed.Priority
	applied.UpdatedAt = now

	// escalation overrides whatever priority the caller asked for
	if IsOverdue(existing.DueDate, now) && applied.Status != constants.StatusCompleted {
		applied.Priority = constants.PriorityUrgent
	}

	return applied, nil
}
