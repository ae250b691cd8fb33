package services

import (
	"context"
	"errors"

	"github.com/isdelr/todo-sync-be/internal/auth"
	"github.com/isdelr/todo-sync-be/internal/database"
	"github.com/isdelr/todo-sync-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (models.User, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	ChangeAvatar(ctx context.Context, username, avatar string) error
	DeleteUser(ctx context.Context, username, password string) error
}

// UserService provides business logic for account management. There is no
// session: every call re-checks the username (and password where one is
// supplied) against the store.
type UserService struct {
	users  database.UserStore
	tasks  database.TaskStore
	hasher auth.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(users database.UserStore, tasks database.TaskStore, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, tasks: tasks, hasher: hasher}
}

// Register creates a user with an empty avatar.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return validationError(MsgEmptyCredentials)
	}

	stored, err := s.hasher.Hash(password)
	if err != nil {
		return internalError(err)
	}

	err = s.users.InsertUser(ctx, models.User{Username: username, Password: stored, Avatar: ""})
	if errors.Is(err, database.ErrDuplicate) {
		return conflictError(MsgUserExists)
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}

// Login verifies the credentials and returns the user without its password.
func (s *UserService) Login(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.authenticate(ctx, username, password, MsgBadCredentials)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// ChangePassword replaces the password if oldPassword matches.
func (s *UserService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if _, err := s.authenticate(ctx, username, oldPassword, MsgBadOldPassword); err != nil {
		return err
	}

	stored, err := s.hasher.Hash(newPassword)
	if err != nil {
		return internalError(err)
	}
	if err := s.users.UpdatePassword(ctx, username, stored); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return authError(MsgBadOldPassword)
		}
		return internalError(err)
	}
	return nil
}

// ChangeAvatar replaces the avatar of an existing user.
func (s *UserService) ChangeAvatar(ctx context.Context, username, avatar string) error {
	if username == "" {
		return authError(MsgUserNotFound)
	}
	err := s.users.UpdateAvatar(ctx, username, avatar)
	if errors.Is(err, database.ErrNotFound) {
		return authError(MsgUserNotFound)
	}
	if err != nil {
		return internalError(err)
	}
	return nil
}

// DeleteUser removes the user and then all of their tasks. The two steps
// are not atomic; leftovers are collected by the orphan sweeper.
func (s *UserService) DeleteUser(ctx context.Context, username, password string) error {
	if _, err := s.authenticate(ctx, username, password, MsgBadCredentials); err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, username); err != nil {
		return internalError(err)
	}
	if _, err := s.tasks.DeleteTasks(ctx, username); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *UserService) authenticate(ctx context.Context, username, password, failMsg string) (models.User, error) {
	if username == "" {
		return models.User{}, authError(failMsg)
	}
	user, err := s.users.FindUser(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return models.User{}, authError(failMsg)
	}
	if err != nil {
		return models.User{}, internalError(err)
	}
	if !s.hasher.Matches(user.Password, password) {
		return models.User{}, authError(failMsg)
	}
	return user, nil
}
