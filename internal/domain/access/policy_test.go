package access

import (
	"errors"
	"testing"
)

func TestAuthorizeAnimalMutation(t *testing.T) {
	animal := AnimalSnapshot{ID: "a-1", OwnerUserID: "owner-1", Available: true}

	tests := []struct {
		name  string
		actor Actor
		want  Decision
	}{
		{"owner", Actor{UserID: "owner-1"}, Allow()},
		{"other user", Actor{UserID: "user-2"}, Deny(ReasonNotOwner)},
		{"anonymous", Actor{}, Deny(ReasonUnauthenticated)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthorizeAnimalMutation(tt.actor, animal); got != tt.want {
				t.Errorf("AuthorizeAnimalMutation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthorizeAnimalRead_AnyAuthenticatedUser(t *testing.T) {
	adopted := AnimalSnapshot{ID: "a-1", OwnerUserID: "owner-1", Available: false}
	if d := AuthorizeAnimalRead(Actor{UserID: "someone"}, adopted); !d.Allowed {
		t.Fatalf("expected allow, got %v", d)
	}
	if d := AuthorizeAnimalRead(Actor{UserID: "  "}, adopted); d != Deny(ReasonUnauthenticated) {
		t.Fatalf("expected deny(unauthenticated), got %v", d)
	}
}

func TestAuthorizeOwnerListing(t *testing.T) {
	if d := AuthorizeOwnerListing(Actor{UserID: "u-1"}, "u-1"); !d.Allowed {
		t.Fatalf("expected allow for own listing, got %v", d)
	}
	if d := AuthorizeOwnerListing(Actor{UserID: "u-1"}, "u-2"); d != Deny(ReasonNotOwner) {
		t.Fatalf("expected deny(not_owner), got %v", d)
	}
}

func TestAuthorizeChatCreation(t *testing.T) {
	tests := []struct {
		name   string
		actor  Actor
		animal AnimalSnapshot
		want   Decision
	}{
		{"interested user on available animal", Actor{UserID: "v"}, AnimalSnapshot{OwnerUserID: "o", Available: true}, Allow()},
		{"owner talking to self", Actor{UserID: "o"}, AnimalSnapshot{OwnerUserID: "o", Available: true}, Deny(ReasonSelfChat)},
		{"self chat wins over availability", Actor{UserID: "o"}, AnimalSnapshot{OwnerUserID: "o", Available: false}, Deny(ReasonSelfChat)},
		{"adopted animal", Actor{UserID: "v"}, AnimalSnapshot{OwnerUserID: "o", Available: false}, Deny(ReasonAnimalNotAvailable)},
		{"anonymous", Actor{}, AnimalSnapshot{OwnerUserID: "o", Available: true}, Deny(ReasonUnauthenticated)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthorizeChatCreation(tt.actor, tt.animal); got != tt.want {
				t.Errorf("AuthorizeChatCreation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthorizeChatAccessAndMessageCreation(t *testing.T) {
	chat := ChatSnapshot{ID: "c-1", OwnerUserID: "o", InterestedUserID: "v"}

	tests := []struct {
		name       string
		actor      Actor
		body       string
		wantAccess Decision
		wantPost   Decision
	}{
		{"owner", Actor{UserID: "o"}, "hi", Allow(), Allow()},
		{"interested", Actor{UserID: "v"}, "hi", Allow(), Allow()},
		{"outsider", Actor{UserID: "x"}, "hi", Deny(ReasonNotParticipant), Deny(ReasonNotParticipant)},
		{"outsider with empty body", Actor{UserID: "x"}, "   ", Deny(ReasonNotParticipant), Deny(ReasonNotParticipant)},
		{"participant with blank body", Actor{UserID: "v"}, " \n\t", Allow(), Deny(ReasonEmptyBody)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AuthorizeChatAccess(tt.actor, chat); got != tt.wantAccess {
				t.Errorf("AuthorizeChatAccess() = %v, want %v", got, tt.wantAccess)
			}
			if got := AuthorizeMessageCreation(tt.actor, chat, tt.body); got != tt.wantPost {
				t.Errorf("AuthorizeMessageCreation() = %v, want %v", got, tt.wantPost)
			}
		})
	}
}

func TestDecisionErr(t *testing.T) {
	if err := Allow().Err(); err != nil {
		t.Fatalf("Allow().Err() = %v, want nil", err)
	}

	err := Deny(ReasonNotOwner).Err()
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("not_owner must not match ErrUnauthenticated")
	}
	if ReasonOf(err) != ReasonNotOwner {
		t.Fatalf("ReasonOf() = %v, want not_owner", ReasonOf(err))
	}

	unauth := Deny(ReasonUnauthenticated).Err()
	if !errors.Is(unauth, ErrUnauthenticated) || errors.Is(unauth, ErrForbidden) {
		t.Fatalf("unauthenticated deny must match only ErrUnauthenticated, got %v", unauth)
	}

	var zero Decision
	if zero.Allowed {
		t.Fatalf("zero Decision must deny")
	}
}
