// Package access concentra las reglas de autorización sobre animales y chats.
//
// Todas las funciones son puras: reciben el actor autenticado y una foto del
// recurso tal como está persistido (nunca campos enviados por el cliente) y
// devuelven una Decision. No ejecutan la mutación ni tocan storage.
package access

import "strings"

// Actor es la identidad autenticada que ejecuta la operación.
type Actor struct {
	UserID string
}

func (a Actor) authenticated() bool {
	return strings.TrimSpace(a.UserID) != ""
}

// AnimalSnapshot es lo que la política necesita saber de un animal persistido.
type AnimalSnapshot struct {
	ID          string
	OwnerUserID string
	Available   bool
}

// ChatSnapshot es lo que la política necesita saber de un chat persistido.
type ChatSnapshot struct {
	ID               string
	OwnerUserID      string
	InterestedUserID string
}

func (c ChatSnapshot) hasParticipant(userID string) bool {
	return userID == c.OwnerUserID || userID == c.InterestedUserID
}

func AuthorizeAnimalMutation(actor Actor, animal AnimalSnapshot) Decision {
	if !actor.authenticated() {
		return Deny(ReasonUnauthenticated)
	}
	if animal.OwnerUserID != actor.UserID {
		return Deny(ReasonNotOwner)
	}
	return Allow()
}

// AuthorizeAnimalRead: cualquier usuario autenticado puede ver un animal.
func AuthorizeAnimalRead(actor Actor, _ AnimalSnapshot) Decision {
	if !actor.authenticated() {
		return Deny(ReasonUnauthenticated)
	}
	return Allow()
}

// AuthorizeOwnerListing protege la vista de gestión "mis animales".
func AuthorizeOwnerListing(actor Actor, ownerUserID string) Decision {
	if !actor.authenticated() {
		return Deny(ReasonUnauthenticated)
	}
	if strings.TrimSpace(ownerUserID) != actor.UserID {
		return Deny(ReasonNotOwner)
	}
	return Allow()
}

func AuthorizeChatCreation(actor Actor, animal AnimalSnapshot) Decision {
	if !actor.authenticated() {
		return Deny(ReasonUnauthenticated)
	}
	if animal.OwnerUserID == actor.UserID {
		return Deny(ReasonSelfChat)
	}
	if !animal.Available {
		return Deny(ReasonAnimalNotAvailable)
	}
	return Allow()
}

func AuthorizeChatAccess(actor Actor, chat ChatSnapshot) Decision {
	if !actor.authenticated() {
		return Deny(ReasonUnauthenticated)
	}
	if !chat.hasParticipant(actor.UserID) {
		return Deny(ReasonNotParticipant)
	}
	return Allow()
}

// AuthorizeMessageCreation evalúa membresía antes que el cuerpo: un no
// participante recibe NotParticipant aunque el mensaje esté vacío.
func AuthorizeMessageCreation(actor Actor, chat ChatSnapshot, body string) Decision {
	if d := AuthorizeChatAccess(actor, chat); !d.Allowed {
		return d
	}
	if strings.TrimSpace(body) == "" {
		return Deny(ReasonEmptyBody)
	}
	return Allow()
}
