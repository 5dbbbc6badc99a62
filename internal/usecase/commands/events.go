package commands

// Outbound event names.
const (
	EventCreateConversation = "create-conversation"
	EventAuditLog           = "audit-log"
)

// CreateConversationPayload asks the conversation service to open a conversation between two users.
type CreateConversationPayload struct {
	User1 string `json:"user1"`
	User2 string `json:"user2"`
}

// AuditLogPayload records who rejected a request and when.
type AuditLogPayload struct {
	RequestID  string `json:"requestId"`
	RejectedBy string `json:"rejectedBy"`
	Timestamp  string `json:"timestamp"`
}
