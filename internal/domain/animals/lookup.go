package animals

import (
	"context"

	"adote-facil/internal/domain/access"
)

// SnapshotOf expone la foto de acceso de un animal sin pasar por la
// autorización de lectura. Lo consume chats (vía su puerto AnimalLookup)
// para evitar ciclos de imports entre módulos.
func (s *Service) SnapshotOf(ctx context.Context, animalID string) (access.AnimalSnapshot, error) {
	a, err := s.repo.GetByID(ctx, animalID)
	if err != nil {
		return access.AnimalSnapshot{}, err
	}
	return a.Snapshot(), nil
}
