package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	ports "github.com/JunaidWali/lumen-chat/lumen/chat/ports"
)

// PlaceholderTitle is the sentinel conversation title used before the first
// generated title is assigned.
const PlaceholderTitle = "New Chat"

var (
	// ErrBackendUnavailable wraps any persistence failure.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrGenerationFailed wraps any model invocation failure.
	ErrGenerationFailed = errors.New("generation failed")
)

// Orchestrator executes the send-message sequence and the user-initiated
// list/load/delete flows. It owns all writes to the State container.
//
// The orchestrator provides no internal mutual exclusion: callers are
// expected to gate re-entrancy (the State busy flag exists for that), and two
// concurrent sends against one conversation risk interleaved ordering and a
// message-count race.
type Orchestrator struct {
	provider ports.Provider
	repo     ports.Repository
	state    *State
	tracer   ports.Tracer
	ownerID  string

	now   func() time.Time
	newID func() string
}

// NewOrchestrator wires the orchestrator to its collaborators. A nil tracer
// disables tracing.
func NewOrchestrator(provider ports.Provider, repo ports.Repository, state *State, tracer ports.Tracer, ownerID string) *Orchestrator {
	if tracer == nil {
		tracer = nopTracer{}
	}
	return &Orchestrator{
		provider: provider,
		repo:     repo,
		state:    state,
		tracer:   tracer,
		ownerID:  ownerID,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// SendMessage runs the full exchange: resolve the conversation, persist the
// user message, invoke the model, persist the reply, update conversation
// metadata. Steps execute strictly in sequence; a failure aborts the
// remainder without rolling back earlier steps.
//
// Empty content with no image attachments is a silent no-op.
func (o *Orchestrator) SendMessage(ctx context.Context, content string, images []string, audioURL string, settings Settings) (err error) {
	if strings.TrimSpace(content) == "" && len(images) == 0 {
		return nil
	}

	o.state.SetBusy(true)
	defer o.state.SetBusy(false)

	ctx, finish := o.tracer.StartSpan(ctx, "send_message", map[string]any{
		"model":       settings.SelectedModel.ID,
		"image_count": len(images),
	})
	defer func() { finish(err) }()

	// Step 1: conversation resolution. Create lazily on first send; reuse
	// the active conversation otherwise.
	conversationID := o.state.ActiveConversationID()
	if conversationID == "" {
		created, cerr := o.repo.CreateConversation(ctx, PlaceholderTitle, o.ownerID, 0, content)
		if cerr != nil {
			o.tracer.Event(ctx, "create_conversation_failed", map[string]any{"error": cerr.Error()})
			return fmt.Errorf("failed to send message: %w: %w", ErrBackendUnavailable, cerr)
		}
		conversationID = created.ID
		o.state.AddConversation(created)
		o.state.SetActiveConversation(conversationID)
	}

	// The subsequent-exchange branch of step 5 counts from the store's view
	// before this exchange's two messages are appended.
	priorCount := o.state.MessageCount()

	// Step 2: persist the user message, then append it. A failure here
	// aborts the send; the conversation created above stays in place
	// (accepted eventual-consistency gap).
	userMsg := ports.Message{
		ID:             o.newID(),
		ConversationID: conversationID,
		Content:        content,
		Role:           ports.RoleUser,
		Timestamp:      o.now(),
		Images:         images,
		AudioURL:       audioURL,
	}
	if _, cerr := o.repo.CreateMessage(ctx, userMsg); cerr != nil {
		o.tracer.Event(ctx, "persist_user_message_failed", map[string]any{"error": cerr.Error()})
		return fmt.Errorf("failed to send message: %w: %w", ErrBackendUnavailable, cerr)
	}
	o.state.AddMessage(userMsg)

	// Step 3: model invocation. Web search is requested only when both the
	// user toggle and the model capability flag are set.
	o.state.SetTyping(true)
	defer o.state.SetTyping(false)

	reply, gerr := o.provider.GenerateResponse(ctx, content, settings.SelectedModel.Name, ports.Options{
		Temperature:      settings.Temperature,
		MaxTokens:        settings.MaxTokens,
		Images:           images,
		WebSearchEnabled: settings.WebSearchEnabled && settings.SelectedModel.SupportsWebSearch,
	})
	if gerr != nil {
		o.tracer.Event(ctx, "generation_failed", map[string]any{"error": gerr.Error()})
		return fmt.Errorf("failed to get AI response: %w: %w", ErrGenerationFailed, gerr)
	}

	// Step 4: persist the reply, then append it. The reply is appended even
	// when persistence fails so the user still sees the generated text.
	assistantMsg := ports.Message{
		ID:             o.newID(),
		ConversationID: conversationID,
		Content:        reply,
		Role:           ports.RoleAssistant,
		Timestamp:      o.now(),
	}
	_, perr := o.repo.CreateMessage(ctx, assistantMsg)
	o.state.AddMessage(assistantMsg)
	if perr != nil {
		o.tracer.Event(ctx, "persist_assistant_message_failed", map[string]any{"error": perr.Error()})
		return fmt.Errorf("failed to send message: %w: %w", ErrBackendUnavailable, perr)
	}

	// Step 5: conversation metadata update.
	return o.updateConversationMetadata(ctx, conversationID, content, reply, priorCount)
}

func (o *Orchestrator) updateConversationMetadata(ctx context.Context, conversationID, firstMessage, reply string, priorCount int) error {
	now := o.now()
	conv, ok := o.state.Conversation(conversationID)
	if !ok {
		return nil
	}

	var patch ports.ConversationPatch
	if conv.Title == PlaceholderTitle {
		// First exchange: generate a title and set the count absolutely.
		title, terr := o.provider.GenerateTitle(ctx, firstMessage)
		if terr != nil || strings.TrimSpace(title) == "" {
			// Degrade to the placeholder; never abort the exchange.
			o.tracer.Event(ctx, "title_generation_failed", map[string]any{})
			title = PlaceholderTitle
		}
		count := 2
		patch = ports.ConversationPatch{
			Title:        &title,
			LastMessage:  &reply,
			MessageCount: &count,
			UpdatedAt:    &now,
		}
	} else {
		count := priorCount + 2
		patch = ports.ConversationPatch{
			LastMessage:  &reply,
			MessageCount: &count,
			UpdatedAt:    &now,
		}
	}

	if _, err := o.repo.UpdateConversation(ctx, conversationID, patch); err != nil {
		o.tracer.Event(ctx, "update_conversation_failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to send message: %w: %w", ErrBackendUnavailable, err)
	}
	o.state.UpdateConversation(conversationID, patch)
	return nil
}

// RefreshConversations fetches the owner's conversation list and replaces the
// store's view of it.
func (o *Orchestrator) RefreshConversations(ctx context.Context) error {
	conversations, err := o.repo.ListConversations(ctx, o.ownerID)
	if err != nil {
		o.tracer.Event(ctx, "list_conversations_failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to load conversations: %w: %w", ErrBackendUnavailable, err)
	}
	o.state.SetConversations(conversations)
	return nil
}

// LoadMessages makes the given conversation active and replaces the message
// list with its persisted history. An empty id clears the selection and the
// message list.
func (o *Orchestrator) LoadMessages(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		o.state.SetActiveConversation("")
		o.state.ClearMessages()
		return nil
	}
	messages, err := o.repo.ListMessages(ctx, conversationID)
	if err != nil {
		o.tracer.Event(ctx, "list_messages_failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to load messages: %w: %w", ErrBackendUnavailable, err)
	}
	o.state.SetActiveConversation(conversationID)
	o.state.SetMessages(messages)
	return nil
}

// Refresh reloads the conversation list and, when a conversation is active,
// its message history. The two fetches run concurrently.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	active := o.state.ActiveConversationID()

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		return o.RefreshConversations(ctx)
	})
	if active != "" {
		p.Go(func(ctx context.Context) error {
			return o.LoadMessages(ctx, active)
		})
	}
	return p.Wait()
}

// DeleteConversation removes a conversation from the backend and the store.
// Deleting the active conversation clears the selection and the message list.
func (o *Orchestrator) DeleteConversation(ctx context.Context, id string) error {
	if err := o.repo.DeleteConversation(ctx, id); err != nil {
		o.tracer.Event(ctx, "delete_conversation_failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to delete conversation: %w: %w", ErrBackendUnavailable, err)
	}
	o.state.RemoveConversation(id)
	return nil
}

// DeleteMessage removes a single message from the backend and the store.
func (o *Orchestrator) DeleteMessage(ctx context.Context, id string) error {
	if err := o.repo.DeleteMessage(ctx, id); err != nil {
		o.tracer.Event(ctx, "delete_message_failed", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to delete message: %w: %w", ErrBackendUnavailable, err)
	}
	o.state.RemoveMessage(id)
	return nil
}

// NewChat clears the active selection and the message list so the next send
// starts a fresh conversation.
func (o *Orchestrator) NewChat() {
	o.state.SetActiveConversation("")
	o.state.ClearMessages()
}

// nopTracer drops all spans and events.
type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	return ctx, func(error) {}
}

func (nopTracer) Event(context.Context, string, map[string]any) {}

var _ ports.Tracer = nopTracer{}
