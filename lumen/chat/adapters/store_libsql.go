package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	"github.com/JunaidWali/lumen-chat/lumen/chat/migrations"
	ports "github.com/JunaidWali/lumen-chat/lumen/chat/ports"
)

// LibSQLRepository implements the chat Repository using embedded LibSQL.
// Conversation ids are minted here: identity for conversations is
// authoritative only at the persistence layer.
type LibSQLRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewLibSQLRepository creates a repository and runs pending schema
// migrations.
func NewLibSQLRepository(db *sql.DB) (*LibSQLRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return &LibSQLRepository{db: db, now: time.Now}, nil
}

// runMigrations applies the embedded goose migrations.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	return nil
}

func (r *LibSQLRepository) CreateConversation(ctx context.Context, title, ownerID string, initialMessageCount int, lastMessage string) (ports.Conversation, error) {
	now := r.now()
	conv := ports.Conversation{
		ID:           uuid.NewString(),
		Title:        title,
		OwnerID:      ownerID,
		MessageCount: initialMessageCount,
		LastMessage:  lastMessage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO conversations (id, title, owner_id, message_count, last_message, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		conv.ID, conv.Title, conv.OwnerID, conv.MessageCount, conv.LastMessage,
		now.Unix(), now.Unix())
	if err != nil {
		return ports.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

func (r *LibSQLRepository) UpdateConversation(ctx context.Context, id string, patch ports.ConversationPatch) (ports.Conversation, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.LastMessage != nil {
		sets = append(sets, "last_message = ?")
		args = append(args, *patch.LastMessage)
	}
	if patch.MessageCount != nil {
		sets = append(sets, "message_count = ?")
		args = append(args, *patch.MessageCount)
	}

	// updated_at always advances on mutation
	updatedAt := r.now()
	if patch.UpdatedAt != nil {
		updatedAt = *patch.UpdatedAt
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, updatedAt.Unix())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE conversations SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ports.Conversation{}, fmt.Errorf("failed to update conversation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ports.Conversation{}, fmt.Errorf("conversation not found: %s", id)
	}

	return r.getConversation(ctx, id)
}

func (r *LibSQLRepository) getConversation(ctx context.Context, id string) (ports.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, owner_id, message_count, last_message, created_at, updated_at
		FROM conversations WHERE id = ?
	`, id)
	return scanConversation(row)
}

func (r *LibSQLRepository) DeleteConversation(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	defer tx.Rollback()

	// Explicit message cleanup; foreign_keys may be off on some connections.
	if _, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete conversation messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (r *LibSQLRepository) ListConversations(ctx context.Context, ownerID string) ([]ports.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, owner_id, message_count, last_message, created_at, updated_at
		FROM conversations
		WHERE owner_id = ?
		ORDER BY updated_at DESC, rowid DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []ports.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}
	return conversations, nil
}

func (r *LibSQLRepository) CreateMessage(ctx context.Context, msg ports.Message) (ports.Message, error) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = r.now()
	}

	var images any
	if len(msg.Images) > 0 {
		data, err := json.Marshal(msg.Images)
		if err != nil {
			return ports.Message{}, fmt.Errorf("failed to marshal message images: %w", err)
		}
		images = string(data)
	}

	query := `
		INSERT INTO messages (id, conversation_id, content, role, images, audio_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ConversationID, msg.Content, string(msg.Role), images, msg.AudioURL,
		msg.Timestamp.Unix())
	if err != nil {
		return ports.Message{}, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

func (r *LibSQLRepository) ListMessages(ctx context.Context, conversationID string) ([]ports.Message, error) {
	// rowid breaks ties between messages persisted within the same second,
	// preserving insertion order.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, content, role, images, audio_url, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, rowid ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []ports.Message
	for rows.Next() {
		var (
			msg       ports.Message
			role      string
			images    sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Content, &role, &images, &msg.AudioURL, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = ports.Role(role)
		msg.Timestamp = time.Unix(createdAt, 0)
		if images.Valid && images.String != "" {
			if err := json.Unmarshal([]byte(images.String), &msg.Images); err != nil {
				return nil, fmt.Errorf("failed to unmarshal message images: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}

func (r *LibSQLRepository) DeleteMessage(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (ports.Conversation, error) {
	var (
		conv      ports.Conversation
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&conv.ID, &conv.Title, &conv.OwnerID, &conv.MessageCount, &conv.LastMessage, &createdAt, &updatedAt); err != nil {
		return ports.Conversation{}, fmt.Errorf("failed to scan conversation: %w", err)
	}
	conv.CreatedAt = time.Unix(createdAt, 0)
	conv.UpdatedAt = time.Unix(updatedAt, 0)
	return conv, nil
}

// Ensure LibSQLRepository implements the Repository interface.
var _ ports.Repository = (*LibSQLRepository)(nil)
