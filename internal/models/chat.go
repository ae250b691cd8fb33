package models

// ChatMessage is one turn of the SmartParse conversation history.
type ChatMessage struct {
	Role string `json:"role"` // "user" or anything else for the assistant
	Text string `json:"text"`
}

// FromUser reports whether the turn was written by the user.
func (m ChatMessage) FromUser() bool { return m.Role == "user" }
