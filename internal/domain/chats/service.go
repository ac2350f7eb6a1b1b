package chats

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("chat not found")
	ErrConflict     = errors.New("chat already exists")
	ErrChatClosed   = errors.New("chat closed")
)

const MaxMessageLength = 4000

// AnimalLookup evita importar el paquete animals (rompe ciclos).
type AnimalLookup interface {
	SnapshotOf(ctx context.Context, animalID string) (access.AnimalSnapshot, error)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	now     func() time.Time
}

func NewService(repo Repository, animals AnimalLookup) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		now:     time.Now,
	}
}

// StartOrGet es idempotente por (animal, actor): si el chat ya existe lo
// devuelve con created=false. Un chat existente sigue accesible aunque el
// animal ya haya sido adoptado.
func (s *Service) StartOrGet(ctx context.Context, actor access.Actor, animalID string) (Chat, bool, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return Chat{}, false, access.Deny(access.ReasonUnauthenticated).Err()
	}
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return Chat{}, false, ErrInvalidInput
	}

	animal, err := s.animals.SnapshotOf(ctx, animalID)
	if err != nil {
		return Chat{}, false, err
	}

	d := access.AuthorizeChatCreation(actor, animal)
	metrics.ObserveDecision("chat_creation", d.Allowed, d.Reason.String())
	if !d.Allowed && d.Reason != access.ReasonAnimalNotAvailable {
		return Chat{}, false, d.Err()
	}

	existing, err := s.repo.GetByAnimalAndInterested(ctx, animalID, actor.UserID)
	switch {
	case err == nil:
		metrics.ChatsStarted.WithLabelValues("reused").Inc()
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return Chat{}, false, err
	}

	// Sin chat previo, un animal no disponible sí bloquea.
	if err := d.Err(); err != nil {
		return Chat{}, false, err
	}

	now := s.now().UTC()
	c := Chat{
		ID:               uuid.NewString(),
		AnimalID:         animalID,
		OwnerUserID:      animal.OwnerUserID,
		InterestedUserID: actor.UserID,
		Status:           StatusOpen,
		CreatedAt:        now,
		LastActivityAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if !errors.Is(err, ErrConflict) {
			return Chat{}, false, err
		}
		// Otra request ganó la carrera: devolvemos su fila.
		winner, err := s.repo.GetByAnimalAndInterested(ctx, animalID, actor.UserID)
		if err != nil {
			return Chat{}, false, err
		}
		metrics.ChatsStarted.WithLabelValues("reused").Inc()
		return winner, false, nil
	}

	metrics.ChatsStarted.WithLabelValues("created").Inc()
	return c, true, nil
}

func (s *Service) ListFor(ctx context.Context, actor access.Actor) ([]Chat, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return nil, access.Deny(access.ReasonUnauthenticated).Err()
	}
	return s.repo.ListByParticipant(ctx, actor.UserID)
}

func (s *Service) Get(ctx context.Context, actor access.Actor, chatID string) (ChatWithMessages, error) {
	c, err := s.load(ctx, actor, chatID)
	if err != nil {
		return ChatWithMessages{}, err
	}

	d := access.AuthorizeChatAccess(actor, c.Snapshot())
	metrics.ObserveDecision("chat_access", d.Allowed, d.Reason.String())
	if err := d.Err(); err != nil {
		return ChatWithMessages{}, err
	}

	msgs, err := s.repo.ListMessages(ctx, c.ID)
	if err != nil {
		return ChatWithMessages{}, err
	}
	return ChatWithMessages{Chat: c, Messages: msgs}, nil
}

// PostMessage valida membresía antes que el cuerpo. El orden y el timestamp
// los asigna el repositorio bajo el lock del chat.
func (s *Service) PostMessage(ctx context.Context, actor access.Actor, chatID, body string) (Message, error) {
	c, err := s.load(ctx, actor, chatID)
	if err != nil {
		return Message{}, err
	}

	d := access.AuthorizeMessageCreation(actor, c.Snapshot(), body)
	metrics.ObserveDecision("message_creation", d.Allowed, d.Reason.String())
	if !d.Allowed {
		if d.Reason == access.ReasonEmptyBody {
			return Message{}, ErrInvalidInput
		}
		return Message{}, d.Err()
	}

	body = strings.TrimSpace(body)
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return Message{}, ErrInvalidInput
	}

	m, err := s.repo.AppendMessage(ctx, Message{
		ID:           uuid.NewString(),
		ChatID:       c.ID,
		SenderUserID: actor.UserID,
		Body:         body,
	}, s.now().UTC())
	if err != nil {
		return Message{}, err
	}

	metrics.MessagesPosted.Inc()
	return m, nil
}

func (s *Service) load(ctx context.Context, actor access.Actor, chatID string) (Chat, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return Chat{}, access.Deny(access.ReasonUnauthenticated).Err()
	}
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return Chat{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, chatID)
}
