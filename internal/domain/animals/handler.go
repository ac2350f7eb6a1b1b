package animals

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/middleware"
	"adote-facil/internal/platform/logger"
	"adote-facil/internal/ports/pictures"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	maxPictureBytes   = 5 << 20
	maxMultipartBytes = (MaxPictures + 1) * maxPictureBytes
)

func RegisterRoutes(r chi.Router, svc *Service, store pictures.Store, log logger.Logger) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc, store, log))

		// Catálogo público (solo available)
		ar.Get("/available", listAvailableHandler(svc, log))

		// Gestión: mis animales en cualquier estado
		ar.Get("/user", listMyAnimalsHandler(svc, log))

		ar.Get("/{animalID}", getAnimalHandler(svc, log))

		// Solo owner
		ar.Patch("/{animalID}", updateStatusHandler(svc, log))
		ar.Patch("/{animalID}/details", updateDetailsHandler(svc, log))
	})
}

// createAnimalRequest no trae fotos: entran solo como archivos multipart.
type createAnimalRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Gender      string `json:"gender"`
	Race        string `json:"race"`
	Description string `json:"description"`
}

type updateStatusRequest struct {
	Status string `json:"status" example:"adopted"`
}

type updateDetailsRequest struct {
	Name        *string   `json:"name"`
	Type        *string   `json:"type"`
	Gender      *string   `json:"gender"`
	Race        *string   `json:"race"`
	Description *string   `json:"description"`
	Pictures    *[]string `json:"pictures"`
}

type animalResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Gender      string    `json:"gender"`
	Race        string    `json:"race"`
	Description string    `json:"description"`
	Pictures    []string  `json:"pictures"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary  Publica un animal para adopción
// @Tags     animals
// @Accept   json,mpfd
// @Produce  json
// @Param    body  body      createAnimalRequest  true  "datos del animal"
// @Success  201   {object}  animalResponse
// @Failure  400   {string}  string
// @Failure  401   {string}  string
// @Security BearerAuth
// @Router   /animals [post]
func createAnimalHandler(svc *Service, store pictures.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			req     createAnimalRequest
			uploads []pictures.Upload
			err     error
		)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			req, uploads, err = readMultipart(w, r)
		} else {
			err = json.NewDecoder(r.Body).Decode(&req)
			if err != nil {
				err = errInvalidJSON
			}
		}
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		in := CreateInput{
			Name:        req.Name,
			Type:        req.Type,
			Gender:      req.Gender,
			Race:        req.Race,
			Description: req.Description,
		}
		// Validar antes de escribir en el store: un anuncio rechazado no deja fotos.
		if err := in.Validate(); err != nil {
			writeError(w, r, log, err)
			return
		}

		if len(uploads) > 0 {
			if store == nil {
				writeError(w, r, log, ErrInvalidInput)
				return
			}
			in.Pictures, err = store.Save(r.Context(), uploads)
			if err != nil {
				writeError(w, r, log, err)
				return
			}
		}

		a, err := svc.Create(r.Context(), actor.UserID, in)
		if err != nil {
			if len(in.Pictures) > 0 {
				if derr := store.Delete(r.Context(), in.Pictures); derr != nil {
					log.Warn("orphan pictures left after failed create", map[string]any{
						"request_id": chimw.GetReqID(r.Context()),
						"pictures":   in.Pictures,
						"err":        derr,
					})
				}
			}
			writeError(w, r, log, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

var errInvalidJSON = errors.New("invalid json")

// readMultipart lee los campos del formulario y las fotos ("pictures").
// No escribe nada: el handler guarda las fotos recién con el input validado.
func readMultipart(w http.ResponseWriter, r *http.Request) (createAnimalRequest, []pictures.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMultipartBytes)
	if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
		return createAnimalRequest{}, nil, ErrInvalidInput
	}

	req := createAnimalRequest{
		Name:        r.FormValue("name"),
		Type:        r.FormValue("type"),
		Gender:      r.FormValue("gender"),
		Race:        r.FormValue("race"),
		Description: r.FormValue("description"),
	}

	files := r.MultipartForm.File["pictures"]
	if len(files) > pictures.MaxPerAnimal {
		return createAnimalRequest{}, nil, ErrInvalidInput
	}

	uploads := make([]pictures.Upload, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxPictureBytes {
			return createAnimalRequest{}, nil, ErrInvalidInput
		}
		f, err := fh.Open()
		if err != nil {
			return createAnimalRequest{}, nil, err
		}
		data, err := io.ReadAll(io.LimitReader(f, maxPictureBytes+1))
		_ = f.Close()
		if err != nil {
			return createAnimalRequest{}, nil, err
		}
		uploads = append(uploads, pictures.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return req, uploads, nil
}

// listAvailableHandler godoc
// @Summary  Lista animales disponibles
// @Tags     animals
// @Produce  json
// @Param    type    query  string  false  "filtro por tipo"
// @Param    limit   query  int     false  "máximo (default 50, tope 200)"
// @Param    offset  query  int     false  "desplazamiento"
// @Success  200  {array}  animalResponse
// @Security BearerAuth
// @Router   /animals/available [get]
func listAvailableHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := actorFrom(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		filter := ListFilter{Type: q.Get("type")}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "limit must be an integer", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}
		if v := q.Get("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "offset must be an integer", http.StatusBadRequest)
				return
			}
			filter.Offset = n
		}

		items, err := svc.ListAvailable(r.Context(), filter)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// listMyAnimalsHandler godoc
// @Summary  Lista los animales del usuario autenticado
// @Tags     animals
// @Produce  json
// @Param    owner_id  query  string  false  "por defecto el propio usuario"
// @Success  200  {array}  animalResponse
// @Failure  403  {string}  string
// @Security BearerAuth
// @Router   /animals/user [get]
func listMyAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ownerID := actor.UserID
		if v := strings.TrimSpace(r.URL.Query().Get("owner_id")); v != "" {
			ownerID = v
		}

		items, err := svc.ListByOwner(r.Context(), actor, ownerID)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// getAnimalHandler godoc
// @Summary  Detalle de un animal
// @Tags     animals
// @Produce  json
// @Param    animalID  path  string  true  "id del animal"
// @Success  200  {object}  animalResponse
// @Failure  404  {string}  string
// @Security BearerAuth
// @Router   /animals/{animalID} [get]
func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.Get(r.Context(), actor, chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateStatusHandler godoc
// @Summary  Cambia el estado (available/adopted). Solo el owner.
// @Tags     animals
// @Accept   json
// @Produce  json
// @Param    animalID  path  string               true  "id del animal"
// @Param    body      body  updateStatusRequest  true  "nuevo estado"
// @Success  200  {object}  animalResponse
// @Failure  400  {string}  string
// @Failure  403  {string}  string
// @Failure  404  {string}  string
// @Failure  409  {string}  string
// @Security BearerAuth
// @Router   /animals/{animalID} [patch]
func updateStatusHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateStatus(r.Context(), actor, chi.URLParam(r, "animalID"), req.Status)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateDetailsHandler godoc
// @Summary  Edita datos del anuncio. Solo el owner.
// @Tags     animals
// @Accept   json
// @Produce  json
// @Param    animalID  path  string                true  "id del animal"
// @Param    body      body  updateDetailsRequest  true  "campos a modificar"
// @Success  200  {object}  animalResponse
// @Failure  400  {string}  string
// @Failure  403  {string}  string
// @Failure  404  {string}  string
// @Security BearerAuth
// @Router   /animals/{animalID}/details [patch]
func updateDetailsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateDetailsRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateDetails(r.Context(), actor, chi.URLParam(r, "animalID"), UpdateDetailsInput{
			Name:        req.Name,
			Type:        req.Type,
			Gender:      req.Gender,
			Race:        req.Race,
			Description: req.Description,
			Pictures:    req.Pictures,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, errInvalidJSON):
		http.Error(w, "invalid json", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, pictures.ErrUnsupportedType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, access.ErrUnauthenticated):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, access.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error("animals handler failed", map[string]any{
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

func toAnimalResponse(a Animal) animalResponse {
	pics := a.Pictures
	if pics == nil {
		pics = []string{}
	}
	return animalResponse{
		ID:          a.ID,
		OwnerUserID: a.OwnerUserID,
		Name:        a.Name,
		Type:        a.Type,
		Gender:      a.Gender,
		Race:        a.Race,
		Description: a.Description,
		Pictures:    pics,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAnimalResponses(items []Animal) []animalResponse {
	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a))
	}
	return out
}

// writeJSON se repite en animals/chats/users; todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
