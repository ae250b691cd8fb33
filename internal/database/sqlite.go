package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/todo-sync-be/internal/models"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore keeps users in a table and tasks as JSON documents, one row
// per task.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database file and applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// A single writer avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err = Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		username TEXT NOT NULL PRIMARY KEY,
		password TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		doc TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_username ON tasks(username);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// FindUser retrieves a single user by username.
func (s *SQLiteStore) FindUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT username, password, avatar FROM users WHERE username = ?", username)
	if err := row.Scan(&user.Username, &user.Password, &user.Avatar); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// InsertUser adds a user, failing with ErrDuplicate if the username is taken.
func (s *SQLiteStore) InsertUser(ctx context.Context, user models.User) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users(username, password, avatar) VALUES(?, ?, ?) ON CONFLICT(username) DO NOTHING",
		user.Username, user.Password, user.Avatar)
	if err != nil {
		return err
	}
	return expectOne(res, ErrDuplicate)
}

// UpdatePassword replaces the stored password.
func (s *SQLiteStore) UpdatePassword(ctx context.Context, username, password string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET password = ? WHERE username = ?", password, username)
	if err != nil {
		return err
	}
	return expectOne(res, ErrNotFound)
}

// UpdateAvatar replaces the stored avatar.
func (s *SQLiteStore) UpdateAvatar(ctx context.Context, username, avatar string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET avatar = ? WHERE username = ?", avatar, username)
	if err != nil {
		return err
	}
	return expectOne(res, ErrNotFound)
}

// DeleteUser removes the user row. Tasks are left to DeleteTasks.
func (s *SQLiteStore) DeleteUser(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE username = ?", username)
	return err
}

// FindTasks returns the owner's task documents in insertion order. Numbers
// come back as json.Number so integers keep their exact value.
func (s *SQLiteStore) FindTasks(ctx context.Context, username string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT doc FROM tasks WHERE username = ? ORDER BY id", username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var task models.Task
		dec := json.NewDecoder(strings.NewReader(doc))
		dec.UseNumber()
		if err := dec.Decode(&task); err != nil {
			return nil, fmt.Errorf("corrupt task document: %w", err)
		}
		delete(task, models.OwnerField)
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// InsertTasks stores each task as its own row. Every task must already
// carry its owner.
func (s *SQLiteStore) InsertTasks(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO tasks(username, doc) VALUES(?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, task := range tasks {
		owner, _ := task[models.OwnerField].(string)
		if owner == "" {
			return fmt.Errorf("task without %s", models.OwnerField)
		}
		doc, err := json.Marshal(task)
		if err != nil {
			return fmt.Errorf("failed to encode task: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, owner, string(doc)); err != nil {
			return err
		}
	}
	return nil
}

// DeleteTasks removes every task owned by username.
func (s *SQLiteStore) DeleteTasks(ctx context.Context, username string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE username = ?", username)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteOrphanTasks removes tasks whose owner no longer exists.
func (s *SQLiteStore) DeleteOrphanTasks(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE username NOT IN (SELECT username FROM users)")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *SQLiteStore) Close(context.Context) error {
	return s.db.Close()
}

func expectOne(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return none
	}
	return nil
}
