package animals

import (
	"strings"
	"time"

	"adote-facil/internal/domain/access"
)

// Status del ciclo de vida de un anuncio. No hay borrado físico.
// @Enum available, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

// ParseStatus acepta mayúsculas/minúsculas ("ADOPTED" == "adopted").
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAvailable:
		return StatusAvailable, true
	case StatusAdopted:
		return StatusAdopted, true
	default:
		return "", false
	}
}

// Animal es un anuncio de adopción. OwnerUserID no cambia después de crearse.
type Animal struct {
	ID          string
	OwnerUserID string

	Name        string
	Type        string // perro, gato, ...
	Gender      string
	Race        string
	Description string

	// Referencias opacas devueltas por pictures.Store, en orden (0..5).
	Pictures []string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot arma la vista que consume la capa de acceso.
func (a Animal) Snapshot() access.AnimalSnapshot {
	return access.AnimalSnapshot{
		ID:          a.ID,
		OwnerUserID: a.OwnerUserID,
		Available:   a.Status == StatusAvailable,
	}
}
