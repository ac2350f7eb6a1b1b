package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"adote-facil/internal/domain/animals"
)

const animalColumns = `
	id, owner_user_id,
	name, type, gender, race, description,
	pictures, status,
	created_at, updated_at`

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		a.OwnerUserID,
		a.Name,
		a.Type,
		a.Gender,
		a.Race,
		a.Description,
		picturesArray(a.Pictures),
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)
	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) ListAvailable(ctx context.Context, filter animals.ListFilter) ([]animals.Animal, error) {
	filter = filter.Normalize()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE status = 'available'
		  AND ($1 = '' OR lower(type) = lower($1))
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, strings.TrimSpace(filter.Type), filter.Limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	return collectAnimals(rows)
}

func (r *AnimalsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]animals.Animal, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []animals.Animal{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	return collectAnimals(rows)
}

// Modify bloquea la fila con SELECT ... FOR UPDATE y escribe dentro de la
// misma transacción. Si fn falla, rollback.
func (r *AnimalsRepo) Modify(ctx context.Context, id string, fn func(a *animals.Animal) error) (animals.Animal, error) {
	var out animals.Animal

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1 FOR UPDATE`, id)
		current, err := scanAnimal(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return animals.ErrNotFound
			}
			return err
		}

		work := current
		work.Pictures = append([]string(nil), current.Pictures...)
		if err := fn(&work); err != nil {
			return err
		}
		work.ID = current.ID
		work.OwnerUserID = current.OwnerUserID

		if _, err := tx.ExecContext(ctx, `
			UPDATE animals
			SET
				name = $2,
				type = $3,
				gender = $4,
				race = $5,
				description = $6,
				pictures = $7,
				status = $8,
				updated_at = $9
			WHERE id = $1
		`,
			work.ID,
			work.Name,
			work.Type,
			work.Gender,
			work.Race,
			work.Description,
			picturesArray(work.Pictures),
			string(work.Status),
			work.UpdatedAt,
		); err != nil {
			return err
		}

		out = work
		return nil
	})
	if err != nil {
		return animals.Animal{}, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var (
		a      animals.Animal
		status string
		pics   []string
	)
	if err := row.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.Name,
		&a.Type,
		&a.Gender,
		&a.Race,
		&a.Description,
		typeMap.SQLScanner(&pics),
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}
	a.Status = animals.Status(status)
	a.Pictures = pics
	return a, nil
}

func collectAnimals(rows *sql.Rows) ([]animals.Animal, error) {
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func picturesArray(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	return in
}
