package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"adote-facil/internal/domain/chats"
)

type chatRepo struct {
	mu sync.RWMutex

	byID map[string]chats.Chat
	// clave única (animal_id, interested_user_id) -> chat id
	byKey    map[string]string
	messages map[string][]chats.Message // chat id -> mensajes en orden de seq
}

func NewChatRepo() chats.Repository {
	return &chatRepo{
		byID:     make(map[string]chats.Chat),
		byKey:    make(map[string]string),
		messages: make(map[string][]chats.Message),
	}
}

func chatKey(animalID, interestedUserID string) string {
	return animalID + "|" + interestedUserID
}

func (r *chatRepo) Create(ctx context.Context, c chats.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("chat id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("chat already exists")
	}
	key := chatKey(c.AnimalID, c.InterestedUserID)
	if _, exists := r.byKey[key]; exists {
		return chats.ErrConflict
	}

	r.byID[c.ID] = c
	r.byKey[key] = c.ID
	return nil
}

func (r *chatRepo) GetByID(ctx context.Context, id string) (chats.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return chats.Chat{}, chats.ErrNotFound
	}
	return c, nil
}

func (r *chatRepo) GetByAnimalAndInterested(ctx context.Context, animalID, interestedUserID string) (chats.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[chatKey(animalID, interestedUserID)]
	if !ok {
		return chats.Chat{}, chats.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *chatRepo) ListByParticipant(ctx context.Context, userID string) ([]chats.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]chats.Chat, 0)
	for _, c := range r.byID {
		if c.OwnerUserID == userID || c.InterestedUserID == userID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastActivityAt.Equal(out[j].LastActivityAt) {
			return out[i].LastActivityAt.After(out[j].LastActivityAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *chatRepo) AppendMessage(ctx context.Context, m chats.Message, now time.Time) (chats.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return chats.Message{}, err
	}

	c, ok := r.byID[m.ChatID]
	if !ok {
		return chats.Message{}, chats.ErrNotFound
	}
	if c.Status != chats.StatusOpen {
		return chats.Message{}, chats.ErrChatClosed
	}

	m.Seq = c.LastMessageSeq + 1
	m.CreatedAt = now
	if m.CreatedAt.Before(c.LastActivityAt) {
		m.CreatedAt = c.LastActivityAt
	}

	c.LastMessageSeq = m.Seq
	c.LastActivityAt = m.CreatedAt

	r.byID[c.ID] = c
	r.messages[c.ID] = append(r.messages[c.ID], m)
	return m, nil
}

func (r *chatRepo) ListMessages(ctx context.Context, chatID string) ([]chats.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.messages[chatID]
	out := make([]chats.Message, len(src))
	copy(out, src)
	return out, nil
}
