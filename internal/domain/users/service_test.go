package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/ports/auth"
)

// -------------------------
// Fakes
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) emailOwner(email string) (string, bool) {
	for id, u := range r.byID {
		if u.Email == email {
			return id, true
		}
	}
	return "", false
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.emailOwner(u.Email); taken {
		return ErrEmailTaken
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	if id, taken := r.emailOwner(u.Email); taken && id != u.ID {
		return ErrEmailTaken
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.emailOwner(email)
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// plainHasher evita bcrypt en tests de servicio.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "h:" + pw, nil }

func (plainHasher) Compare(hash, pw string) error {
	if hash != "h:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens emite "tok:<userID>" y verifica ese mismo formato.
type fakeTokens struct{}

func (fakeTokens) Issue(userID, email string) (string, error) { return "tok:" + userID, nil }

func (fakeTokens) Verify(ctx context.Context, token string) (auth.Claims, error) {
	id, ok := strings.CutPrefix(token, "tok:")
	if !ok || id == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}
	return auth.Claims{UserID: id}, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, plainHasher{}, fakeTokens{}, fakeTokens{})
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		in      RegisterInput
		wantErr error
	}{
		{"ok", RegisterInput{Name: "Ana", Email: " Ana@Example.com ", Password: "secret123"}, nil},
		{"duplicate email other case", RegisterInput{Name: "Otra", Email: "ana@example.COM", Password: "secret123"}, ErrEmailTaken},
		{"missing name", RegisterInput{Email: "b@example.com", Password: "secret123"}, ErrInvalidInput},
		{"bad email", RegisterInput{Name: "B", Email: "not-an-email", Password: "secret123"}, ErrInvalidInput},
		{"short password", RegisterInput{Name: "B", Email: "b@example.com", Password: "short"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Register(ctx, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if u.Email != "ana@example.com" || u.PasswordHash == tt.in.Password || u.ID == "" {
					t.Fatalf("unexpected user: %+v", u)
				}
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, got, err := svc.Login(ctx, "ANA@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "tok:"+u.ID || got.ID != u.ID {
		t.Fatalf("unexpected login result: token=%q user=%+v", token, got)
	}

	if _, _, err := svc.Login(ctx, "ana@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	ana, _ := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	_, _ = svc.Register(ctx, RegisterInput{Name: "Bia", Email: "bia@example.com", Password: "secret123"})
	actor := access.Actor{UserID: ana.ID}

	name := " Ana Maria "
	got, err := svc.UpdateProfile(ctx, actor, UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != "Ana Maria" || got.Email != "ana@example.com" || !got.UpdatedAt.After(ana.UpdatedAt) {
		t.Fatalf("unexpected user: %+v", got)
	}

	taken := "BIA@example.com"
	if _, err := svc.UpdateProfile(ctx, actor, UpdateProfileInput{Email: &taken}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	short := "123"
	if _, err := svc.UpdateProfile(ctx, actor, UpdateProfileInput{Password: &short}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	pw := "new-secret-1"
	if _, err := svc.UpdateProfile(ctx, actor, UpdateProfileInput{Password: &pw}); err != nil {
		t.Fatalf("UpdateProfile password: %v", err)
	}
	if repo.byID[ana.ID].PasswordHash != "h:new-secret-1" {
		t.Fatalf("password hash not updated")
	}
	if _, _, err := svc.Login(ctx, "ana@example.com", pw); err != nil {
		t.Fatalf("Login with new password: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, access.Actor{}, UpdateProfileInput{Name: &name}); !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestResolveActor(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, _ := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})

	actor, err := svc.ResolveActor(ctx, "tok:"+u.ID)
	if err != nil {
		t.Fatalf("ResolveActor: %v", err)
	}
	if actor.UserID != u.ID {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	if _, err := svc.ResolveActor(ctx, "garbage"); !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for bad token, got %v", err)
	}
	if _, err := svc.ResolveActor(ctx, "tok:deleted-user"); !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown user, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, _ := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})

	got, err := svc.Me(ctx, access.Actor{UserID: u.ID})
	if err != nil || got.ID != u.ID {
		t.Fatalf("Me: user=%+v err=%v", got, err)
	}
	if _, err := svc.Me(ctx, access.Actor{}); !errors.Is(err, access.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
