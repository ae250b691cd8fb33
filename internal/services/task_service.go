package services

import (
	"context"
	"errors"

	"github.com/isdelr/todo-sync-be/internal/database"
	"github.com/isdelr/todo-sync-be/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	SyncTasks(ctx context.Context, username string, tasks []models.Task) error
	GetTasks(ctx context.Context, username string) ([]models.Task, error)
}

// TaskService replaces and reads a user's whole task set.
type TaskService struct {
	users database.UserStore
	tasks database.TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(users database.UserStore, tasks database.TaskStore) *TaskService {
	return &TaskService{users: users, tasks: tasks}
}

// SyncTasks deletes every stored task of username and inserts the supplied
// ones, each stamped with the owner. A null element rejects the whole batch
// before anything is deleted. The delete and the insert are separate
// store calls, so a reader in between sees an empty set.
func (s *TaskService) SyncTasks(ctx context.Context, username string, tasks []models.Task) error {
	if err := s.requireUser(ctx, username); err != nil {
		return err
	}
	for _, task := range tasks {
		if task == nil {
			return validationError(MsgBadRequest)
		}
	}

	if _, err := s.tasks.DeleteTasks(ctx, username); err != nil {
		return internalError(err)
	}

	owned := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		owned = append(owned, task.WithOwner(username))
	}
	if err := s.tasks.InsertTasks(ctx, owned); err != nil {
		return internalError(err)
	}
	return nil
}

// GetTasks returns all tasks of username without internal fields.
func (s *TaskService) GetTasks(ctx context.Context, username string) ([]models.Task, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindTasks(ctx, username)
	if err != nil {
		return nil, internalError(err)
	}
	return tasks, nil
}

func (s *TaskService) requireUser(ctx context.Context, username string) error {
	if username == "" {
		return authError(MsgNotLoggedIn)
	}
	_, err := s.users.FindUser(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return authError(MsgNotLoggedIn)
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}
