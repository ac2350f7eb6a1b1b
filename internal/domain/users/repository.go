package users

import "context"

type Repository interface {
	// Create y Update devuelven ErrEmailTaken si el email ya pertenece a otro usuario.
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error

	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// PasswordHasher es el puerto del algoritmo de hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare devuelve error si password no corresponde al hash.
	Compare(hash, password string) error
}
