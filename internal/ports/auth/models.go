package auth

import "errors"

// ErrInvalidToken lo devuelven los verifiers ante tokens vencidos, mal firmados o vacíos.
var ErrInvalidToken = errors.New("invalid token")

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
}
