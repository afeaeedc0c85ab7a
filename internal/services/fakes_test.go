package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	model "task-management.com/task-management/internal/models"
	repository "task-management.com/task-management/internal/repositories"
)

// fakeStore delegates to a real store and lets tests inject failures.
type fakeStore struct {
	repository.Store

	findCalls  int
	afterFind  func()
	updateErr  error
	deleteErr  error
	updateMany func(ctx context.Context, inner repository.Store, tasks []model.Task) error
}

func (f *fakeStore) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	f.findCalls++
	task, err := f.Store.FindByID(ctx, id)
	if hook := f.afterFind; hook != nil {
		f.afterFind = nil
		hook()
	}
	return task, err
}

func (f *fakeStore) Update(ctx context.Context, task *model.Task) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	return f.Store.Update(ctx, task)
}

func (f *fakeStore) Delete(ctx context.Context, id int64) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return f.Store.Delete(ctx, id)
}

func (f *fakeStore) UpdateMany(ctx context.Context, tasks []model.Task) error {
	if f.updateMany != nil {
		return f.updateMany(ctx, f.Store, tasks)
	}
	return f.Store.UpdateMany(ctx, tasks)
}

func (f *fakeStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return f.Store.Transaction(ctx, func(tx repository.Store) error {
		return fn(&fakeStore{
			Store:      tx,
			updateErr:  f.updateErr,
			deleteErr:  f.deleteErr,
			updateMany: f.updateMany,
		})
	})
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	value, _ := args.Get(0).([]byte)
	return value, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCache) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
