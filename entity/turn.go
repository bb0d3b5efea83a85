package entity

// Roles for conversation turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single message exchange unit in a conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
