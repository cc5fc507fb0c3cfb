package chatports

import (
	"context"
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation is a persisted chat thread. The persistence layer assigns the
// identifier and timestamps on creation; the client never generates
// conversation ids.
type Conversation struct {
	ID           string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	OwnerID      string
	MessageCount int
	LastMessage  string
}

// Message is a single exchange entry. Identifiers are generated by the
// caller before persistence so a message can be appended to in-memory state
// without waiting for a round trip.
type Message struct {
	ID             string
	ConversationID string
	Content        string
	Role           Role
	Timestamp      time.Time
	Images         []string
	AudioURL       string
}

// ConversationPatch is a partial conversation update. Nil fields are left
// unchanged (merge semantics).
type ConversationPatch struct {
	Title        *string
	LastMessage  *string
	MessageCount *int
	UpdatedAt    *time.Time
}

// Repository persists conversations and messages. All operations fail with a
// generic backend error; there are no partial-success semantics.
type Repository interface {
	CreateConversation(ctx context.Context, title, ownerID string, initialMessageCount int, lastMessage string) (Conversation, error)
	UpdateConversation(ctx context.Context, id string, patch ConversationPatch) (Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	// ListConversations returns the owner's conversations, most recently
	// updated first.
	ListConversations(ctx context.Context, ownerID string) ([]Conversation, error)

	CreateMessage(ctx context.Context, msg Message) (Message, error)
	// ListMessages returns a conversation's messages ordered oldest-first.
	ListMessages(ctx context.Context, conversationID string) ([]Message, error)
	DeleteMessage(ctx context.Context, id string) error
}
