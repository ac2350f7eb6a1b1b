package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/middleware"
	"adote-facil/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RegisterPublicRoutes: registro y login, sin credenciales. El router los
// agrupa detrás del rate limit.
func RegisterPublicRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/users", registerHandler(svc, log))
	r.Post("/login", loginHandler(svc, log))
}

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Patch("/users", updateProfileHandler(svc, log))
	r.Get("/users/me", meHandler(svc, log))
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// registerHandler godoc
// @Summary  Crea una cuenta
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      registerRequest  true  "datos de la cuenta"
// @Success  201   {object}  userResponse
// @Failure  400   {string}  string
// @Failure  409   {string}  string
// @Router   /users [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// loginHandler godoc
// @Summary  Login con email y password
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      loginRequest  true  "credenciales"
// @Success  200   {object}  loginResponse
// @Failure  401   {string}  string
// @Router   /login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		token, u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(u)})
	}
}

// updateProfileHandler godoc
// @Summary  Actualiza la cuenta propia
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      updateProfileRequest  true  "campos a modificar"
// @Success  200   {object}  userResponse
// @Failure  400   {string}  string
// @Failure  409   {string}  string
// @Security BearerAuth
// @Router   /users [patch]
func updateProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateProfileRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), actor, UpdateProfileInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// meHandler godoc
// @Summary  Cuenta del usuario autenticado
// @Tags     users
// @Produce  json
// @Success  200  {object}  userResponse
// @Security BearerAuth
// @Router   /users/me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.Me(r.Context(), actor)
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, access.ErrUnauthenticated):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, access.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Error("users handler failed", map[string]any{
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

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
