package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"adote-facil/internal/domain/access"
	"adote-facil/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("animal not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

const MaxPictures = 5

type Options struct {
	// AllowAdoptionReversal habilita adopted -> available.
	AllowAdoptionReversal bool
}

type Service struct {
	repo Repository
	opts Options
	now  func() time.Time
}

func NewService(repo Repository, opts Options) *Service {
	return &Service{
		repo: repo,
		opts: opts,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Type        string
	Gender      string
	Race        string
	Description string
	Pictures    []string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Animal{}, access.Deny(access.ReasonUnauthenticated).Err()
	}
	if err := in.Validate(); err != nil {
		return Animal{}, err
	}

	now := s.now().UTC()
	a := Animal{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Type:        strings.TrimSpace(in.Type),
		Gender:      strings.TrimSpace(in.Gender),
		Race:        strings.TrimSpace(in.Race),
		Description: strings.TrimSpace(in.Description),
		Pictures:    append([]string(nil), in.Pictures...),
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Validate aplica las reglas de Create. El handler la usa antes de
// guardar fotos para no dejar archivos de un anuncio rechazado.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Type) == "" ||
		strings.TrimSpace(in.Gender) == "" ||
		strings.TrimSpace(in.Race) == "" {
		return ErrInvalidInput
	}
	return validatePictures(in.Pictures)
}

func validatePictures(pics []string) error {
	if len(pics) > MaxPictures {
		return ErrInvalidInput
	}
	for _, p := range pics {
		if strings.TrimSpace(p) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// ListAvailable es el catálogo público: solo available, de todos los owners.
func (s *Service) ListAvailable(ctx context.Context, filter ListFilter) ([]Animal, error) {
	filter = filter.Normalize()
	filter.Type = strings.TrimSpace(filter.Type)
	return s.repo.ListAvailable(ctx, filter)
}

// ListByOwner devuelve todos los animales del owner (cualquier estado).
// Solo el propio owner puede pedirlos.
func (s *Service) ListByOwner(ctx context.Context, actor access.Actor, ownerUserID string) ([]Animal, error) {
	d := access.AuthorizeOwnerListing(actor, ownerUserID)
	metrics.ObserveDecision("owner_listing", d.Allowed, d.Reason.String())
	if err := d.Err(); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Get(ctx context.Context, actor access.Actor, id string) (Animal, error) {
	if strings.TrimSpace(actor.UserID) == "" {
		return Animal{}, access.Deny(access.ReasonUnauthenticated).Err()
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	d := access.AuthorizeAnimalRead(actor, a.Snapshot())
	metrics.ObserveDecision("animal_read", d.Allowed, d.Reason.String())
	if err := d.Err(); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// UpdateStatus lee, autoriza y escribe dentro de Repository.Modify: la
// decisión se toma sobre la fila bloqueada, no sobre una lectura previa.
// Orden de errores: NotFound, Forbidden, InvalidInput.
func (s *Service) UpdateStatus(ctx context.Context, actor access.Actor, id string, raw string) (Animal, error) {
	var next Status
	changed := false
	updated, err := s.repo.Modify(ctx, id, func(a *Animal) error {
		d := access.AuthorizeAnimalMutation(actor, a.Snapshot())
		metrics.ObserveDecision("animal_mutation", d.Allowed, d.Reason.String())
		if err := d.Err(); err != nil {
			return err
		}

		parsed, ok := ParseStatus(raw)
		if !ok {
			return ErrInvalidInput
		}
		next = parsed
		if a.Status == next {
			return nil
		}
		if a.Status == StatusAdopted && next == StatusAvailable && !s.opts.AllowAdoptionReversal {
			return ErrInvalidTransition
		}
		a.Status = next
		a.UpdatedAt = s.now().UTC()
		changed = true
		return nil
	})
	if err != nil {
		return Animal{}, err
	}
	if changed {
		metrics.AnimalStatusChanges.WithLabelValues(string(next)).Inc()
	}
	return updated, nil
}

type UpdateDetailsInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Type        *string
	Gender      *string
	Race        *string
	Description *string
	Pictures    *[]string
}

// UpdateDetails valida después de autorizar, igual que UpdateStatus.
// Pictures solo puede reordenar o quitar fotos que el animal ya tiene:
// las nuevas entran por el upload de Create.
func (s *Service) UpdateDetails(ctx context.Context, actor access.Actor, id string, in UpdateDetailsInput) (Animal, error) {
	return s.repo.Modify(ctx, id, func(a *Animal) error {
		d := access.AuthorizeAnimalMutation(actor, a.Snapshot())
		metrics.ObserveDecision("animal_mutation", d.Allowed, d.Reason.String())
		if err := d.Err(); err != nil {
			return err
		}

		if err := in.validate(a.Pictures); err != nil {
			return err
		}

		if in.Name != nil {
			a.Name = strings.TrimSpace(*in.Name)
		}
		if in.Type != nil {
			a.Type = strings.TrimSpace(*in.Type)
		}
		if in.Gender != nil {
			a.Gender = strings.TrimSpace(*in.Gender)
		}
		if in.Race != nil {
			a.Race = strings.TrimSpace(*in.Race)
		}
		if in.Description != nil {
			a.Description = strings.TrimSpace(*in.Description)
		}
		if in.Pictures != nil {
			a.Pictures = append([]string(nil), (*in.Pictures)...)
		}
		a.UpdatedAt = s.now().UTC()
		return nil
	})
}

func (in UpdateDetailsInput) validate(current []string) error {
	for _, p := range []*string{in.Name, in.Type, in.Gender, in.Race} {
		if p != nil && strings.TrimSpace(*p) == "" {
			return ErrInvalidInput
		}
	}
	if in.Pictures == nil {
		return nil
	}
	if err := validatePictures(*in.Pictures); err != nil {
		return err
	}

	known := make(map[string]bool, len(current))
	for _, ref := range current {
		known[ref] = true
	}
	for _, ref := range *in.Pictures {
		if !known[ref] {
			return ErrInvalidInput
		}
		// Sin duplicados.
		delete(known, ref)
	}
	return nil
}
