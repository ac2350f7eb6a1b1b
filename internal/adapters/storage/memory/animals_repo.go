package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"adote-facil/internal/domain/animals"
)

type animalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return cloneAnimal(a), nil
}

func (r *animalRepo) ListAvailable(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter = filter.Normalize()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.Status != animals.StatusAvailable {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(a.Type, filter.Type) {
			continue
		}
		out = append(out, a)
	}
	sortNewestFirst(out)

	if filter.Offset >= len(out) {
		return []animals.Animal{}, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	res := make([]animals.Animal, 0, len(out))
	for _, a := range out {
		res = append(res, cloneAnimal(a))
	}
	return res, nil
}

func (r *animalRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.OwnerUserID == ownerUserID {
			out = append(out, cloneAnimal(a))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// Modify sostiene el write lock durante fn: lectura, autorización y
// escritura no se intercalan con otro Modify.
func (r *animalRepo) Modify(ctx context.Context, id string, fn func(a *animals.Animal) error) (animals.Animal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return animals.Animal{}, err
	}

	current, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}

	work := cloneAnimal(current)
	if err := fn(&work); err != nil {
		return animals.Animal{}, err
	}

	// id y owner no cambian aunque fn los toque.
	work.ID = current.ID
	work.OwnerUserID = current.OwnerUserID

	r.byID[id] = cloneAnimal(work)
	return work, nil
}

// Orden: created_at desc, id desc.
func sortNewestFirst(items []animals.Animal) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

func cloneAnimal(a animals.Animal) animals.Animal {
	if a.Pictures != nil {
		a.Pictures = append([]string(nil), a.Pictures...)
	}
	return a
}
