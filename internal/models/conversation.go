// internal/models/conversation.go
package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message of the chat history. The history itself is
// owned by the caller (the web/session layer); the pipeline only receives a
// bounded window of it per call.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Window returns the most recent n turns. If the selected window has odd
// length the oldest entry is dropped so user/assistant pairs stay aligned.
func Window(turns []ConversationTurn, n int) []ConversationTurn {
	if n <= 0 || len(turns) == 0 {
		return nil
	}
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	if len(turns)%2 != 0 {
		turns = turns[1:]
	}
	return turns
}
