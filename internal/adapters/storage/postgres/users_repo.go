package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"adote-facil/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		u.ID,
		u.Name,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			name = $2,
			email = $3,
			password_hash = $4,
			updated_at = $5
		WHERE id = $1
	`,
		u.ID,
		u.Name,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrEmailTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *UsersRepo) getOne(ctx context.Context, where string, arg any) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
	`+where, arg)

	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
