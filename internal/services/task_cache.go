package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	apperrors "task-management.com/task-management/internal/errors"
	model "task-management.com/task-management/internal/models"
)

func cacheKey(id int64) string {
	return "task_" + strconv.FormatInt(id, 10)
}

// readCached reports a miss on any cache failure so reads fall through to
// storage.
func (s *TaskService) readCached(ctx context.Context, key string) (*model.Task, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed, reading from storage", "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var task model.Task
	if err := json.Unmarshal(data, &task); err != nil {
		s.logger.Warn("discarding undecodable cache entry", "key", key, "err", err)
		_ = s.cache.Remove(ctx, key)
		return nil, false
	}

	return &task, true
}

func (s *TaskService) populate(ctx context.Context, key string, task *model.Task) {
	data, err := json.Marshal(task)
	if err != nil {
		s.logger.Warn("cache encode failed", "key", key, "err", err)
		return
	}

	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache populate failed", "key", key, "err", err)
	}
}

// invalidate evicts the given tasks. It runs only after a write has been
// committed; a failure here never undoes that write.
func (s *TaskService) invalidate(ctx context.Context, ids ...int64) error {
	s.generation.Add(1)

	var errs []error
	for _, id := range ids {
		if err := s.cache.Remove(ctx, cacheKey(id)); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	s.logger.Error("cache invalidation failed", "tasks", len(ids), "failed", len(errs), "err", err)
	return apperrors.ErrCacheFailure.Wrap(err)
}
