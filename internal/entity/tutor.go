package entity

import "time"

// Level is the active learner level for a session.
type Level struct {
	Label       string `json:"level" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry of the tutor transcript.
type Message struct {
	ID        int       `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// ResponseRule maps trigger phrases to a canned reply template.
// Template placeholders are {{.Level}} and {{.Question}}.
type ResponseRule struct {
	Name     string   `json:"name" yaml:"name"`
	Triggers []string `json:"triggers" yaml:"triggers"`
	Template string   `json:"template" yaml:"template"`
}

// Suggestion is a frequently asked question offered as a shortcut.
type Suggestion struct {
	Label    string `json:"label" yaml:"label"`
	Question string `json:"question" yaml:"question"`
}
