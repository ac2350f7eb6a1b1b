package chats

import (
	"time"

	"adote-facil/internal/domain/access"
)

// Status del chat. Por ahora solo existe open; closed queda reservado.
type Status string

const (
	StatusOpen Status = "open"
)

// Chat es la conversación entre el owner de un animal y un interesado.
// Único por (AnimalID, InterestedUserID).
type Chat struct {
	ID string

	AnimalID string

	OwnerUserID      string // copiado del animal al crear
	InterestedUserID string // quien inicia; nunca el owner

	Status Status

	CreatedAt      time.Time
	LastActivityAt time.Time // CreatedAt hasta el primer mensaje
	LastMessageSeq int64
}

func (c Chat) Snapshot() access.ChatSnapshot {
	return access.ChatSnapshot{
		ID:               c.ID,
		OwnerUserID:      c.OwnerUserID,
		InterestedUserID: c.InterestedUserID,
	}
}

// Message es inmutable. Seq es estrictamente creciente dentro del chat y
// CreatedAt no decrece con Seq.
type Message struct {
	ID           string
	ChatID       string
	SenderUserID string
	Body         string
	Seq          int64
	CreatedAt    time.Time
}

type ChatWithMessages struct {
	Chat     Chat
	Messages []Message
}
