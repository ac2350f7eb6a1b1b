package chats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/domain/animals"
	"adote-facil/internal/middleware"
	"adote-facil/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	// Rutas planas bajo /users: el módulo users registra /users y /users/me.
	r.Post("/users/chats", startChatHandler(svc, log))
	r.Get("/users/chats", listChatsHandler(svc, log))
	r.Get("/users/chats/{chatID}", getChatHandler(svc, log))
	r.Post("/users/chats/messages", postMessageHandler(svc, log))
}

type startChatRequest struct {
	AnimalID string `json:"animal_id"`
}

type postMessageRequest struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID               string    `json:"id"`
	AnimalID         string    `json:"animal_id"`
	OwnerUserID      string    `json:"owner_user_id"`
	InterestedUserID string    `json:"interested_user_id"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	LastActivityAt   time.Time `json:"last_activity_at"`
}

type messageResponse struct {
	ID           string    `json:"id"`
	ChatID       string    `json:"chat_id"`
	SenderUserID string    `json:"sender_user_id"`
	Content      string    `json:"content"`
	Seq          int64     `json:"seq"`
	CreatedAt    time.Time `json:"created_at"`
}

type chatWithMessagesResponse struct {
	chatResponse
	Messages []messageResponse `json:"messages"`
}

// startChatHandler godoc
// @Summary  Inicia (o recupera) el chat con el owner de un animal
// @Tags     chats
// @Accept   json
// @Produce  json
// @Param    body  body      startChatRequest  true  "animal"
// @Success  201   {object}  chatResponse  "creado"
// @Success  200   {object}  chatResponse  "ya existía"
// @Failure  403   {string}  string
// @Failure  404   {string}  string
// @Security BearerAuth
// @Router   /users/chats [post]
func startChatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req startChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.AnimalID) == "" {
			http.Error(w, "animal_id required", http.StatusBadRequest)
			return
		}

		c, created, err := svc.StartOrGet(r.Context(), actor, req.AnimalID)
		if err != nil {
			if errors.Is(err, animals.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeError(w, r, log, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, toChatResponse(c))
	}
}

// listChatsHandler godoc
// @Summary  Chats en los que participa el usuario
// @Tags     chats
// @Produce  json
// @Success  200  {array}  chatResponse
// @Security BearerAuth
// @Router   /users/chats [get]
func listChatsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListFor(r.Context(), actor)
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]chatResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toChatResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getChatHandler godoc
// @Summary  Chat con sus mensajes (solo participantes)
// @Tags     chats
// @Produce  json
// @Param    chatID  path  string  true  "id del chat"
// @Success  200  {object}  chatWithMessagesResponse
// @Failure  403  {string}  string
// @Security BearerAuth
// @Router   /users/chats/{chatID} [get]
func getChatHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cm, err := svc.Get(r.Context(), actor, chi.URLParam(r, "chatID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		msgs := make([]messageResponse, 0, len(cm.Messages))
		for _, m := range cm.Messages {
			msgs = append(msgs, toMessageResponse(m))
		}
		writeJSON(w, http.StatusOK, chatWithMessagesResponse{
			chatResponse: toChatResponse(cm.Chat),
			Messages:     msgs,
		})
	}
}

// postMessageHandler godoc
// @Summary  Envía un mensaje (solo participantes)
// @Tags     chats
// @Accept   json
// @Produce  json
// @Param    body  body      postMessageRequest  true  "mensaje"
// @Success  201   {object}  messageResponse
// @Failure  400   {string}  string
// @Failure  403   {string}  string
// @Security BearerAuth
// @Router   /users/chats/messages [post]
func postMessageHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req postMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.PostMessage(r.Context(), actor, req.ChatID, req.Content)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMessageResponse(m))
	}
}

// writeError: NotFound y Forbidden responden igual (403) para que no se
// pueda confirmar que un chat id existe.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, access.ErrUnauthenticated):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, access.ErrForbidden), errors.Is(err, ErrNotFound):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrChatClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error("chats handler failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"path":       r.URL.Path,
			"err":        err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func actorFrom(r *http.Request) (access.Actor, bool) {
	return middleware.ActorFrom(r.Context())
}

func toChatResponse(c Chat) chatResponse {
	return chatResponse{
		ID:               c.ID,
		AnimalID:         c.AnimalID,
		OwnerUserID:      c.OwnerUserID,
		InterestedUserID: c.InterestedUserID,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
		LastActivityAt:   c.LastActivityAt,
	}
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:           m.ID,
		ChatID:       m.ChatID,
		SenderUserID: m.SenderUserID,
		Content:      m.Body,
		Seq:          m.Seq,
		CreatedAt:    m.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
