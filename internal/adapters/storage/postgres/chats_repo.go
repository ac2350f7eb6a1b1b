package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"adote-facil/internal/domain/chats"
)

const chatColumns = `
	id, animal_id, owner_user_id, interested_user_id,
	status, created_at, last_activity_at, last_message_seq`

type ChatsRepo struct {
	db *sql.DB
}

func NewChatsRepo(db *sql.DB) *ChatsRepo {
	return &ChatsRepo{db: db}
}

func (r *ChatsRepo) Create(ctx context.Context, c chats.Chat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chats (`+chatColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		c.ID,
		c.AnimalID,
		c.OwnerUserID,
		c.InterestedUserID,
		string(c.Status),
		c.CreatedAt,
		c.LastActivityAt,
		c.LastMessageSeq,
	)
	if isUniqueViolation(err) && uniqueConstraint(err) == "chats_animal_interested_key" {
		return chats.ErrConflict
	}
	return err
}

func (r *ChatsRepo) GetByID(ctx context.Context, id string) (chats.Chat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return chats.Chat{}, chats.ErrNotFound
	}
	return r.getOne(ctx, r.db, `WHERE id = $1`, id)
}

func (r *ChatsRepo) GetByAnimalAndInterested(ctx context.Context, animalID, interestedUserID string) (chats.Chat, error) {
	return r.getOne(ctx, r.db, `WHERE animal_id = $1 AND interested_user_id = $2`, animalID, interestedUserID)
}

func (r *ChatsRepo) ListByParticipant(ctx context.Context, userID string) ([]chats.Chat, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []chats.Chat{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+chatColumns+`
		FROM chats
		WHERE owner_user_id = $1 OR interested_user_id = $1
		ORDER BY last_activity_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chats.Chat, 0)
	for rows.Next() {
		c, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AppendMessage serializa los mensajes del chat con SELECT ... FOR UPDATE
// sobre la fila del chat: seq y created_at se calculan con el lock tomado.
func (r *ChatsRepo) AppendMessage(ctx context.Context, m chats.Message, now time.Time) (chats.Message, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		c, err := r.getOne(ctx, tx, `WHERE id = $1 FOR UPDATE`, m.ChatID)
		if err != nil {
			return err
		}
		if c.Status != chats.StatusOpen {
			return chats.ErrChatClosed
		}

		m.Seq = c.LastMessageSeq + 1
		m.CreatedAt = now
		if m.CreatedAt.Before(c.LastActivityAt) {
			m.CreatedAt = c.LastActivityAt
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO messages (id, chat_id, sender_user_id, body, seq, created_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, m.ID, m.ChatID, m.SenderUserID, m.Body, m.Seq, m.CreatedAt); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE chats
			SET last_message_seq = $2, last_activity_at = $3
			WHERE id = $1
		`, c.ID, m.Seq, m.CreatedAt)
		return err
	})
	if err != nil {
		return chats.Message{}, err
	}
	return m, nil
}

func (r *ChatsRepo) ListMessages(ctx context.Context, chatID string) ([]chats.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, sender_user_id, body, seq, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY seq ASC
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chats.Message, 0)
	for rows.Next() {
		var m chats.Message
		if err := rows.Scan(
			&m.ID,
			&m.ChatID,
			&m.SenderUserID,
			&m.Body,
			&m.Seq,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// querier lo cumplen *sql.DB y *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *ChatsRepo) getOne(ctx context.Context, q querier, where string, args ...any) (chats.Chat, error) {
	row := q.QueryRowContext(ctx, `SELECT `+chatColumns+` FROM chats `+where, args...)
	c, err := scanChat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return chats.Chat{}, chats.ErrNotFound
	}
	return c, err
}

func scanChat(row rowScanner) (chats.Chat, error) {
	var (
		c      chats.Chat
		status string
	)
	if err := row.Scan(
		&c.ID,
		&c.AnimalID,
		&c.OwnerUserID,
		&c.InterestedUserID,
		&status,
		&c.CreatedAt,
		&c.LastActivityAt,
		&c.LastMessageSeq,
	); err != nil {
		return chats.Chat{}, err
	}
	c.Status = chats.Status(status)
	return c, nil
}
