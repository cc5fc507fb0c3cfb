package chat

import (
	"sync"

	ports "github.com/JunaidWali/lumen-chat/lumen/chat/ports"
)

// State is the process-wide container the UI renders from. It is a dumb
// container: it enforces the mutation rules below and nothing else; keeping
// the message list in step with the active conversation is the caller's job.
//
// The mutex guards against data races between UI reads and orchestrator
// writes. It is not a send-serialization mechanism: two concurrent sends
// against the same conversation remain a caller bug.
type State struct {
	mu sync.RWMutex

	conversations        []ports.Conversation
	activeConversationID string
	messages             []ports.Message

	busy   bool
	typing bool
}

// NewState returns an empty container.
func NewState() *State {
	return &State{}
}

// SetConversations replaces the entire conversation list (bulk fetch).
func (s *State) SetConversations(conversations []ports.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]ports.Conversation(nil), conversations...)
}

// AddConversation inserts a conversation at the head of the list. Newest-first
// ordering is load-bearing: new conversations must appear first.
func (s *State) AddConversation(conv ports.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append([]ports.Conversation{conv}, s.conversations...)
}

// UpdateConversation applies a partial update to the conversation with the
// given id. Nil patch fields are left unchanged.
func (s *State) UpdateConversation(id string, patch ports.ConversationPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.conversations {
		if s.conversations[i].ID != id {
			continue
		}
		applyConversationPatch(&s.conversations[i], patch)
		return
	}
}

// RemoveConversation deletes a conversation from the list. If it was the
// active one, the active selection and the message list are cleared: the
// message list must never reference a conversation that no longer exists.
func (s *State) RemoveConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.conversations[:0]
	for _, conv := range s.conversations {
		if conv.ID != id {
			kept = append(kept, conv)
		}
	}
	s.conversations = kept

	if s.activeConversationID == id {
		s.activeConversationID = ""
		s.messages = nil
	}
}

// SetActiveConversation sets (or clears, with "") the active conversation id.
// It does not load messages; loading is a separate fetch.
func (s *State) SetActiveConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeConversationID = id
}

// SetMessages replaces the entire message list (bulk fetch).
func (s *State) SetMessages(messages []ports.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]ports.Message(nil), messages...)
}

// AddMessage appends one message to the end of the list. Strict append; no
// insertion elsewhere.
func (s *State) AddMessage(msg ports.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// UpdateMessage applies a partial content update to a message by id.
func (s *State) UpdateMessage(id string, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Content = content
			return
		}
	}
}

// RemoveMessage filters a message out of the list by id.
func (s *State) RemoveMessage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.messages[:0]
	for _, msg := range s.messages {
		if msg.ID != id {
			kept = append(kept, msg)
		}
	}
	s.messages = kept
}

// ClearMessages empties the message list.
func (s *State) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Conversations returns a copy of the conversation list.
func (s *State) Conversations() []ports.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.Conversation(nil), s.conversations...)
}

// Conversation returns the conversation with the given id, if present.
func (s *State) Conversation(id string) (ports.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv, true
		}
	}
	return ports.Conversation{}, false
}

// Messages returns a copy of the message list.
func (s *State) Messages() []ports.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.Message(nil), s.messages...)
}

// MessageCount returns the number of messages currently held.
func (s *State) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// ActiveConversationID returns the active conversation id, or "" when none.
func (s *State) ActiveConversationID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeConversationID
}

// SetBusy flips the in-flight send flag the UI uses to disable the send
// affordance.
func (s *State) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

// Busy reports whether a send is in flight.
func (s *State) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// SetTyping flips the "generating" indicator shown during model invocation.
func (s *State) SetTyping(typing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = typing
}

// Typing reports whether the model is generating.
func (s *State) Typing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.typing
}

func applyConversationPatch(conv *ports.Conversation, patch ports.ConversationPatch) {
	if patch.Title != nil {
		conv.Title = *patch.Title
	}
	if patch.LastMessage != nil {
		conv.LastMessage = *patch.LastMessage
	}
	if patch.MessageCount != nil {
		conv.MessageCount = *patch.MessageCount
	}
	if patch.UpdatedAt != nil {
		conv.UpdatedAt = *patch.UpdatedAt
	}
}
