package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/todo-sync-be/internal/config"
	"github.com/isdelr/todo-sync-be/internal/models"
)

var (
	// ErrNotFound is returned when no document matches a lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert collides with a unique key.
	ErrDuplicate = errors.New("duplicate key")
)

// UserStore persists the users collection, keyed by username.
type UserStore interface {
	FindUser(ctx context.Context, username string) (models.User, error)
	InsertUser(ctx context.Context, user models.User) error
	UpdatePassword(ctx context.Context, username, password string) error
	UpdateAvatar(ctx context.Context, username, avatar string) error
	DeleteUser(ctx context.Context, username string) error
}

// TaskStore persists the tasks collection. Tasks are grouped by the owner
// field and are never addressed individually.
type TaskStore interface {
	// FindTasks returns the owner's tasks in insertion order with the
	// internal id and owner field removed.
	FindTasks(ctx context.Context, username string) ([]models.Task, error)
	InsertTasks(ctx context.Context, tasks []models.Task) error
	DeleteTasks(ctx context.Context, username string) (int64, error)
	// DeleteOrphanTasks removes tasks whose owner has no user document.
	DeleteOrphanTasks(ctx context.Context) (int64, error)
}

// Store is the process-wide document store handle.
type Store interface {
	UserStore
	TaskStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New opens the store selected by cfg.StoreDriver and prepares its
// collections or tables.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "mongo":
		s, err := NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "sqlite":
		s, err := NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
