package services

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"slices"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"task-management.com/task-management/internal/cache"
	"task-management.com/task-management/internal/constants"
	apperrors "task-management.com/task-management/internal/errors"
	model "task-management.com/task-management/internal/models"
	repository "task-management.com/task-management/internal/repositories"
	"task-management.com/task-management/internal/rules"
)

// DefaultCacheTTL is how long a task read from storage stays cached.
const DefaultCacheTTL = 5 * time.Minute

var (
	ErrStoreNil = errors.New("task store is nil")
	ErrCacheNil = errors.New("task cache is nil")
)

type TaskService struct {
	store    repository.Store
	cache    cache.Cache
	logger   *log.Logger
	now      func() time.Time
	cacheTTL time.Duration

	// generation is bumped before every eviction so a read that loaded a
	// task before a concurrent write can tell its copy may be stale.
	generation atomic.Uint64
}

type Option func(*TaskService)

func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *TaskService) {
		s.cacheTTL = ttl
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *TaskService) {
		s.logger = logger
	}
}

func NewTaskService(store repository.Store, c cache.Cache, opts ...Option) (*TaskService, error) {
	if store == nil {
		return nil, ErrStoreNil
	}
	if c == nil {
		return nil, ErrCacheNil
	}

	s := &TaskService{
		store:    store,
		cache:    c,
		logger:   log.Default(),
		now:      func() time.Time { return time.Now().UTC() },
		cacheTTL: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// ListTasks returns every task ordered by derived urgency (most urgent first)
// and then by due date. The stored priority is returned as is.
func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.ErrPersistenceFailure.Wrap(err)
	}

	now := s.now()
	type ranked struct {
		task model.Task
		rank int
	}

	rows := make([]ranked, len(tasks))
	for i, task := range tasks {
		rows[i] = ranked{task: task, rank: rules.DeriveUrgency(task.DueDate, now).Rank()}
	}

	slices.SortStableFunc(rows, func(a, b ranked) int {
		if c := cmp.Compare(b.rank, a.rank); c != 0 {
			return c
		}
		return a.task.DueDate.Compare(b.task.DueDate)
	})

	out := make([]model.Task, len(rows))
	for i, row := range rows {
		out[i] = row.task
	}
	return out, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	key := cacheKey(id)

	if task, ok := s.readCached(ctx, key); ok {
		return task, nil
	}

	generation := s.generation.Load()
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.generation.Load() == generation {
		s.populate(ctx, key, task)
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if task.ID != 0 {
		if err := s.ensureAbsent(ctx, task.ID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	if task.Status == "" {
		task.Status = constants.StatusPending
	}
	if task.Priority == "" {
		task.Priority = rules.DeriveUrgency(task.DueDate, now)
	}
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := task.Validate(); err != nil {
		return nil, apperrors.ErrInvalidTask.Wrap(err)
	}

	if err := s.store.Create(ctx, &task); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, duplicateID(task.ID)
		}
		return nil, apperrors.ErrPersistenceFailure.Wrap(err)
	}

	s.logger.Info("task created", "task_id", task.ID, "status", task.Status, "priority", task.Priority)
	return &task, nil
}

// UpdateTask applies task onto the stored record with the same id when the
// transition rules allow it. On a rule violation nothing is written and the
// cache is left alone. When the write succeeds but the cached copy cannot be
// evicted, the updated task is returned together with ErrCacheFailure.
func (s *TaskService) UpdateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	existing, err := s.findTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	applied, err := rules.ValidateTransition(*existing, task, s.now())
	if err != nil {
		s.logger.Info("task update rejected", "task_id", task.ID, "reason", apperrors.KindOf(err))
		return nil, err
	}

	if err := applied.Validate(); err != nil {
		return nil, apperrors.ErrInvalidTask.Wrap(err)
	}

	changed, err := s.store.Update(ctx, &applied)
	if err != nil {
		return nil, apperrors.ErrPersistenceFailure.Wrap(err)
	}
	if !changed {
		return nil, apperrors.ErrTaskNotFound
	}

	if err := s.invalidate(ctx, applied.ID); err != nil {
		return &applied, err
	}

	return &applied, nil
}

// BulkUpdateTasks applies every task in the batch that exists in storage,
// inside a single transaction and under the same transition rules as
// UpdateTask. Unknown ids are skipped. Any rejected entry rolls back the
// whole batch. It returns the number of tasks written.
func (s *TaskService) BulkUpdateTasks(ctx context.Context, tasks []model.Task) (int, error) {
	if len(tasks) == 0 {
		return 0, apperrors.ErrEmptyBatch
	}

	// the last entry for a repeated id wins
	incoming := make(map[int64]model.Task, len(tasks))
	ids := make([]int64, 0, len(tasks))
	for _, task := range tasks {
		if _, seen := incoming[task.ID]; !seen {
			ids = append(ids, task.ID)
		}
		incoming[task.ID] = task
	}

	var affected []int64
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		existing, err := tx.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			return apperrors.ErrEmptyBatch
		}

		now := s.now()
		for i := range existing {
			applied, err := rules.ValidateTransition(existing[i], incoming[existing[i].ID], now)
			if err != nil {
				return err
			}
			if err := applied.Validate(); err != nil {
				return apperrors.ErrInvalidTask.Withf("invalid task %d", applied.ID).Wrap(err)
			}
			existing[i] = applied
		}

		if err := tx.UpdateMany(ctx, existing); err != nil {
			return err
		}

		affected = make([]int64, len(existing))
		for i := range existing {
			affected[i] = existing[i].ID
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyBatch) {
			return 0, err
		}
		return 0, s.batchRolledBack(len(tasks), err)
	}

	s.logger.Info("bulk update committed", "updated", len(affected), "requested", len(tasks))

	if err := s.invalidate(ctx, affected...); err != nil {
		return len(affected), err
	}

	return len(affected), nil
}

// batchRolledBack reports a failed batch as one error. Rejected entries keep
// their own kind and status; anything else is ErrTransactionRolledBack. Both
// match ErrTransactionRolledBack with errors.Is.
func (s *TaskService) batchRolledBack(size int, err error) error {
	rolledBack := apperrors.ErrTransactionRolledBack.Withf("bulk update of %d tasks rolled back", size)

	var rejected *apperrors.Exception
	if errors.As(err, &rejected) && rejected.StatusCode < http.StatusInternalServerError {
		s.logger.Warn("bulk update rejected", "batch_size", size, "reason", rejected.Kind, "err", err)
		return rejected.
			Withf("%s: %s", rolledBack.Message, rejected.Message).
			Wrap(rolledBack.Wrap(rejected.Err))
	}

	s.logger.Error("bulk update rolled back", "batch_size", size, "err", err)
	return rolledBack.Wrap(err)
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if _, err := s.findTask(ctx, id); err != nil {
		return err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return apperrors.ErrPersistenceFailure.Wrap(err)
	}
	if !deleted {
		return apperrors.ErrTaskNotFound
	}

	s.logger.Info("task deleted", "task_id", id)
	return s.invalidate(ctx, id)
}

func (s *TaskService) findTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound.Withf("task with ID %d not found", id)
		}
		return nil, apperrors.ErrPersistenceFailure.Wrap(err)
	}
	return task, nil
}

func (s *TaskService) ensureAbsent(ctx context.Context, id int64) error {
	_, err := s.store.FindByID(ctx, id)
	switch {
	case err == nil:
		return duplicateID(id)
	case errors.Is(err, repository.ErrTaskNotFound):
		return nil
	default:
		return apperrors.ErrPersistenceFailure.Wrap(err)
	}
}

func duplicateID(id int64) error {
	return apperrors.ErrDuplicateID.Withf("Task with ID %d already exists.", id)
}
