package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	ListAvailable(ctx context.Context, filter ListFilter) ([]Animal, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Animal, error)

	// Modify carga el animal, aplica fn sobre la copia y la persiste, todo
	// bajo el lock de la fila. Si fn devuelve error no se escribe nada.
	// Devuelve ErrNotFound si el id no existe.
	Modify(ctx context.Context, id string, fn func(a *Animal) error) (Animal, error)
}

// ListFilter pagina el listado público. Orden: más nuevos primero.
type ListFilter struct {
	Type   string
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Normalize aplica defaults y topes.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
