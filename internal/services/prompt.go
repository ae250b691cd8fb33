package services

import (
	"strings"

	"github.com/isdelr/todo-sync-be/internal/models"
)

const (
	promptPreamble = "你是一个智能AI语音助手，请根据用户的所有日程（如下）和上下文与用户自然对话，必要时可引用日程内容。\n"
	speakerUser    = "用户"
	speakerAI      = "AI"
)

// BuildPrompt renders the assistant prompt: the full task list as bullets,
// the last historyLimit turns of the conversation and the new user input,
// ending with an open assistant turn.
func BuildPrompt(text string, history []models.ChatMessage, tasks []models.Task, historyLimit int) string {
	var b strings.Builder

	b.WriteString(promptPreamble)
	b.WriteString("用户所有日程：\n")
	for _, t := range tasks {
		done := "未完成"
		if t.IsDone() {
			done = "已完成"
		}
		b.WriteString("- ")
		b.WriteString(t.Title())
		b.WriteString("（")
		b.WriteString(done)
		b.WriteString("，标签：")
		b.WriteString(t.Tags())
		b.WriteString("，优先级：")
		b.WriteString(t.Priority())
		b.WriteString("，截止：")
		b.WriteString(t.DueDate())
		b.WriteString("）\n")
	}
	b.WriteString("\n")

	b.WriteString("历史对话如下：\n")
	for _, msg := range recent(history, historyLimit) {
		speaker := speakerAI
		if msg.FromUser() {
			speaker = speakerUser
		}
		b.WriteString(speaker)
		b.WriteString("：")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}

	b.WriteString(speakerUser)
	b.WriteString("：")
	b.WriteString(text)
	b.WriteString("\n")
	b.WriteString(speakerAI)
	b.WriteString("：")
	return b.String()
}

func recent(history []models.ChatMessage, limit int) []models.ChatMessage {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
