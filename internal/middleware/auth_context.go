package middleware

import (
	"context"
	"net/http"
	"strings"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/platform/logger"
	"adote-facil/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader solo se acepta con DEV_AUTH.
const DebugUserHeader = "X-Debug-User-ID"

type AuthOptions struct {
	Verifier         auth.AuthVerifier
	AllowDebugHeader bool
	Logger           logger.Logger // nil => Nop
}

// AuthContext resuelve la identidad del request y la deja en el contexto.
// Nunca corta el request: sin claims, cada handler responde 401.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.AllowDebugHeader {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), auth.Claims{UserID: uid})))
					return
				}
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if opts.Verifier == nil || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := opts.Verifier.Verify(r.Context(), token)
			if err != nil || strings.TrimSpace(claims.UserID) == "" {
				log.Debug("bearer token rejected", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"err":        err,
				})
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// ActorFrom traduce los claims del request al actor que reciben los servicios.
func ActorFrom(ctx context.Context) (access.Actor, bool) {
	c, ok := GetClaims(ctx)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return access.Actor{}, false
	}
	return access.Actor{UserID: c.UserID}, true
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
