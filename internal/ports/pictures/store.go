package pictures

import (
	"context"
	"errors"
)

// MaxPerAnimal es el máximo de fotos por anuncio.
const MaxPerAnimal = 5

var ErrUnsupportedType = errors.New("unsupported picture type")

// Upload es una foto recibida del cliente, ya leída en memoria.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store persiste fotos y devuelve referencias opacas en el mismo orden.
// Se llama antes de animals.Service.Create; el core nunca lo invoca.
type Store interface {
	Save(ctx context.Context, uploads []Upload) ([]string, error)
	// Delete borra referencias devueltas por Save. Referencias desconocidas se ignoran.
	Delete(ctx context.Context, refs []string) error
}
