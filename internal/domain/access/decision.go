package access

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// DenyReason explica por qué una evaluación terminó en Deny.
type DenyReason int

const (
	ReasonNone DenyReason = iota
	ReasonUnauthenticated
	ReasonNotOwner
	ReasonSelfChat
	ReasonAnimalNotAvailable
	ReasonNotParticipant
	ReasonEmptyBody
)

func (r DenyReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonNotOwner:
		return "not_owner"
	case ReasonSelfChat:
		return "self_chat"
	case ReasonAnimalNotAvailable:
		return "animal_not_available"
	case ReasonNotParticipant:
		return "not_participant"
	case ReasonEmptyBody:
		return "empty_body"
	default:
		return "unknown"
	}
}

// Decision es el resultado de un chequeo. El valor cero es Deny.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true, Reason: ReasonNone}
}

func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func (d Decision) String() string {
	if d.Allowed {
		return "allow"
	}
	return "deny(" + d.Reason.String() + ")"
}

// Err devuelve nil si la decisión es Allow; si no, un *DeniedError.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

// DeniedError matchea ErrUnauthenticated o ErrForbidden con errors.Is,
// según la razón.
type DeniedError struct {
	Reason DenyReason
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("access denied: %s", e.Reason)
}

func (e *DeniedError) Is(target error) bool {
	if e.Reason == ReasonUnauthenticated {
		return target == ErrUnauthenticated
	}
	return target == ErrForbidden
}

// ReasonOf extrae la razón de un error de acceso (ReasonNone si no lo es).
func ReasonOf(err error) DenyReason {
	var de *DeniedError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ReasonNone
}
