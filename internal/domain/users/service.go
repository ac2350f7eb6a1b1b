package users

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const MinPasswordLength = 8

type Service struct {
	repo     Repository
	hasher   PasswordHasher
	tokens   auth.TokenIssuer
	verifier auth.AuthVerifier
	now      func() time.Time
}

// NewService: tokens y verifier pueden ser nil si la emisión/verificación
// la resuelve un proveedor externo (Odin).
func NewService(repo Repository, hasher PasswordHasher, tokens auth.TokenIssuer, verifier auth.AuthVerifier) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		verifier: verifier,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" || !validEmail(email) {
		return User{}, ErrInvalidInput
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return User{}, ErrInvalidInput
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	now := s.now().UTC()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login devuelve el token de acceso y el usuario. Email inexistente y
// password incorrecto devuelven el mismo error.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	if s.tokens == nil {
		return "", User{}, errors.New("login: token issuer not configured")
	}

	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Email    *string
	Password *string
}

// UpdateProfile solo modifica la cuenta del propio actor.
func (s *Service) UpdateProfile(ctx context.Context, actor access.Actor, in UpdateProfileInput) (User, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return User{}, access.Deny(access.ReasonUnauthenticated).Err()
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return User{}, ErrInvalidInput
	}
	if in.Email != nil && !validEmail(normalizeEmail(*in.Email)) {
		return User{}, ErrInvalidInput
	}
	if in.Password != nil && utf8.RuneCountInString(*in.Password) < MinPasswordLength {
		return User{}, ErrInvalidInput
	}

	u, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = normalizeEmail(*in.Email)
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Me(ctx context.Context, actor access.Actor) (User, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return User{}, access.Deny(access.ReasonUnauthenticated).Err()
	}
	return s.repo.GetByID(ctx, actor.UserID)
}

// ResolveActor verifica el token y confirma que el usuario sigue existiendo.
func (s *Service) ResolveActor(ctx context.Context, token string) (access.Actor, error) {
	if s.verifier == nil {
		return access.Actor{}, errors.New("resolve actor: verifier not configured")
	}

	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return access.Actor{}, access.Deny(access.ReasonUnauthenticated).Err()
	}
	if _, err := s.repo.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return access.Actor{}, access.Deny(access.ReasonUnauthenticated).Err()
		}
		return access.Actor{}, err
	}
	return access.Actor{UserID: claims.UserID}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t\r\n")
}
