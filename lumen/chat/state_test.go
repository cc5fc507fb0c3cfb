package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "github.com/JunaidWali/lumen-chat/lumen/chat/ports"
)

func TestState_AddConversationInsertsAtHead(t *testing.T) {
	s := NewState()
	s.AddConversation(ports.Conversation{ID: "a"})
	s.AddConversation(ports.Conversation{ID: "b"})

	convs := s.Conversations()
	require.Len(t, convs, 2)
	assert.Equal(t, "b", convs[0].ID)
	assert.Equal(t, "a", convs[1].ID)
}

func TestState_UpdateConversationMergesPatch(t *testing.T) {
	s := NewState()
	s.AddConversation(ports.Conversation{
		ID:           "a",
		Title:        "New Chat",
		MessageCount: 2,
		LastMessage:  "hi",
	})

	title := "Trip Planning"
	now := time.Now()
	s.UpdateConversation("a", ports.ConversationPatch{Title: &title, UpdatedAt: &now})

	conv, ok := s.Conversation("a")
	require.True(t, ok)
	assert.Equal(t, "Trip Planning", conv.Title)
	assert.Equal(t, now, conv.UpdatedAt)
	// Unspecified fields unchanged
	assert.Equal(t, 2, conv.MessageCount)
	assert.Equal(t, "hi", conv.LastMessage)
}

func TestState_RemoveActiveConversationClearsMessages(t *testing.T) {
	s := NewState()
	s.AddConversation(ports.Conversation{ID: "a"})
	s.SetActiveConversation("a")
	s.AddMessage(ports.Message{ID: "m1", ConversationID: "a"})

	s.RemoveConversation("a")

	assert.Empty(t, s.ActiveConversationID())
	assert.Empty(t, s.Messages())
	assert.Empty(t, s.Conversations())
}

func TestState_RemoveOtherConversationKeepsMessages(t *testing.T) {
	s := NewState()
	s.AddConversation(ports.Conversation{ID: "a"})
	s.AddConversation(ports.Conversation{ID: "b"})
	s.SetActiveConversation("a")
	s.AddMessage(ports.Message{ID: "m1", ConversationID: "a"})

	s.RemoveConversation("b")

	assert.Equal(t, "a", s.ActiveConversationID())
	assert.Len(t, s.Messages(), 1)
	assert.Len(t, s.Conversations(), 1)
}

func TestState_AddMessageAppends(t *testing.T) {
	s := NewState()
	s.AddMessage(ports.Message{ID: "m1"})
	s.AddMessage(ports.Message{ID: "m2"})
	s.AddMessage(ports.Message{ID: "m3"})

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, []string{"m1", "m2", "m3"}, []string{msgs[0].ID, msgs[1].ID, msgs[2].ID})
}

func TestState_UpdateAndRemoveMessage(t *testing.T) {
	s := NewState()
	s.AddMessage(ports.Message{ID: "m1", Content: "draft"})
	s.AddMessage(ports.Message{ID: "m2", Content: "keep"})

	s.UpdateMessage("m1", "edited")
	s.RemoveMessage("m2")

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "edited", msgs[0].Content)
}

func TestState_SetMessagesReplacesList(t *testing.T) {
	s := NewState()
	s.AddMessage(ports.Message{ID: "old"})

	s.SetMessages([]ports.Message{{ID: "n1"}, {ID: "n2"}})

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "n1", msgs[0].ID)

	s.ClearMessages()
	assert.Empty(t, s.Messages())
}

func TestState_AccessorsReturnCopies(t *testing.T) {
	s := NewState()
	s.AddConversation(ports.Conversation{ID: "a", Title: "one"})

	convs := s.Conversations()
	convs[0].Title = "mutated"

	conv, ok := s.Conversation("a")
	require.True(t, ok)
	assert.Equal(t, "one", conv.Title)
}
