package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OwnerField is the key the service stamps on every persisted task.
const OwnerField = "username"

// Task is a client-defined to-do record. The service does not enforce a
// schema; only the fields read by the assistant prompt have accessors.
type Task map[string]interface{}

// WithOwner returns a copy of the task tagged with username.
func (t Task) WithOwner(username string) Task {
	out := make(Task, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[OwnerField] = username
	return out
}

// Title returns the task title, or "" if absent.
func (t Task) Title() string { return t.str("title") }

// DueDate returns the due date as sent by the client.
func (t Task) DueDate() string { return t.str("dueDate") }

// Priority returns the priority as sent by the client.
func (t Task) Priority() string { return t.str("priority") }

// IsDone reports whether the task is marked complete. Any truthy JSON value
// counts.
func (t Task) IsDone() bool { return truthy(t["isDone"]) }

// Tags returns the tags joined with commas.
func (t Task) Tags() string {
	switch tags := t["tags"].(type) {
	case []interface{}:
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, scalar(tag))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(tags, ",")
	case nil:
		return ""
	default:
		return scalar(tags)
	}
}

func (t Task) str(key string) string {
	return scalar(t[key])
}

func scalar(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func truthy(v interface{}) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}
