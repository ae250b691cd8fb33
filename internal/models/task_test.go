package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskAccessors(t *testing.T) {
	task := Task{
		"title":    "Buy milk",
		"dueDate":  "2024-05-01",
		"isDone":   true,
		"tags":     []interface{}{"home", "shop"},
		"priority": float64(2),
	}

	assert.Equal(t, "Buy milk", task.Title())
	assert.Equal(t, "2024-05-01", task.DueDate())
	assert.True(t, task.IsDone())
	assert.Equal(t, "home,shop", task.Tags())
	assert.Equal(t, "2", task.Priority())
}

func TestTaskAccessorsJSONNumbers(t *testing.T) {
	task := Task{
		"priority": json.Number("2"),
		"isDone":   json.Number("0"),
		"tags":     []interface{}{json.Number("7"), "x"},
	}

	assert.Equal(t, "2", task.Priority())
	assert.False(t, task.IsDone())
	assert.Equal(t, "7,x", task.Tags())
}

func TestTaskAccessorsMissingFields(t *testing.T) {
	task := Task{}

	assert.Empty(t, task.Title())
	assert.Empty(t, task.DueDate())
	assert.Empty(t, task.Tags())
	assert.Empty(t, task.Priority())
	assert.False(t, task.IsDone())
}

func TestTaskIsDoneTruthiness(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", float64(0), false},
		{"one", float64(1), true},
		{"empty string", "", false},
		{"string", "yes", true},
		{"empty list", []interface{}{}, false},
		{"list", []interface{}{1}, true},
		{"json zero", json.Number("0"), false},
		{"json decimal zero", json.Number("0.0"), false},
		{"json one", json.Number("1"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Task{"isDone": tt.value}.IsDone())
		})
	}
}

func TestTaskWithOwnerCopies(t *testing.T) {
	original := Task{"title": "A", "username": "mallory"}

	owned := original.WithOwner("alice")

	assert.Equal(t, "alice", owned[OwnerField])
	assert.Equal(t, "A", owned["title"])
	assert.Equal(t, "mallory", original[OwnerField], "original must not be modified")
}

func TestChatMessageFromUser(t *testing.T) {
	assert.True(t, ChatMessage{Role: "user"}.FromUser())
	assert.False(t, ChatMessage{Role: "assistant"}.FromUser())
	assert.False(t, ChatMessage{}.FromUser())
}
