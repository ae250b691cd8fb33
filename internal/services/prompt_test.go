package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/isdelr/todo-sync-be/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	tasks := []models.Task{
		{"title": "A", "isDone": true, "tags": []interface{}{"x", "y"}, "priority": float64(2), "dueDate": "2024-01-01"},
		{"title": "B"},
	}
	history := []models.ChatMessage{
		{Role: "user", Text: "hi"},
		{Role: "ai", Text: "hello"},
	}

	got := BuildPrompt("what next", history, tasks, 10)

	want := "你是一个智能AI语音助手，请根据用户的所有日程（如下）和上下文与用户自然对话，必要时可引用日程内容。\n" +
		"用户所有日程：\n" +
		"- A（已完成，标签：x,y，优先级：2，截止：2024-01-01）\n" +
		"- B（未完成，标签：，优先级：，截止：）\n" +
		"\n" +
		"历史对话如下：\n" +
		"用户：hi\n" +
		"AI：hello\n" +
		"用户：what next\n" +
		"AI："
	assert.Equal(t, want, got)
}

func TestBuildPromptEmpty(t *testing.T) {
	got := BuildPrompt("", nil, nil, 10)

	assert.True(t, strings.HasSuffix(got, "用户所有日程：\n\n历史对话如下：\n用户：\nAI："))
}

func TestBuildPromptKeepsOnlyRecentHistory(t *testing.T) {
	var history []models.ChatMessage
	for i := 0; i < 15; i++ {
		history = append(history, models.ChatMessage{Role: "user", Text: fmt.Sprintf("turn-%02d", i)})
	}

	got := BuildPrompt("now", history, nil, 10)

	for i := 0; i < 5; i++ {
		assert.NotContains(t, got, fmt.Sprintf("turn-%02d", i))
	}
	for i := 5; i < 15; i++ {
		assert.Contains(t, got, fmt.Sprintf("turn-%02d", i))
	}
	assert.Less(t, strings.Index(got, "turn-05"), strings.Index(got, "turn-14"), "order must be preserved")
}
