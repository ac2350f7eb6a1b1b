package chats

import (
	"context"
	"time"
)

type Repository interface {
	// Create devuelve ErrConflict si ya existe un chat para
	// (AnimalID, InterestedUserID).
	Create(ctx context.Context, c Chat) error
	GetByID(ctx context.Context, id string) (Chat, error)
	GetByAnimalAndInterested(ctx context.Context, animalID, interestedUserID string) (Chat, error)

	// ListByParticipant ordena por LastActivityAt desc, empate por ID desc.
	ListByParticipant(ctx context.Context, userID string) ([]Chat, error)

	// AppendMessage, bajo el lock del chat: asigna Seq = LastMessageSeq+1,
	// CreatedAt = max(now, LastActivityAt), persiste el mensaje y actualiza
	// LastActivityAt/LastMessageSeq. ErrNotFound si el chat no existe,
	// ErrChatClosed si no está open.
	AppendMessage(ctx context.Context, m Message, now time.Time) (Message, error)

	// ListMessages ordena por Seq asc.
	ListMessages(ctx context.Context, chatID string) ([]Message, error)
}
