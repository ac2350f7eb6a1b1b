// Package disk guarda las fotos de los anuncios en un directorio local.
// Las referencias que devuelve son paths relativos servidos bajo /pictures/.
package disk

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"adote-facil/internal/ports/pictures"

	"github.com/google/uuid"
)

// URLPrefix es el prefijo con el que el router sirve Dir.
const URLPrefix = "/pictures/"

var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pictures dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save valida todas las fotos antes de escribir la primera. Si una escritura
// falla se borran las ya escritas.
func (s *Store) Save(ctx context.Context, uploads []pictures.Upload) ([]string, error) {
	if len(uploads) > pictures.MaxPerAnimal {
		return nil, fmt.Errorf("too many pictures: %d", len(uploads))
	}

	exts := make([]string, len(uploads))
	for i, u := range uploads {
		// Se confía en el contenido, no en el Content-Type del cliente.
		ext, ok := allowed[http.DetectContentType(u.Data)]
		if !ok || len(u.Data) == 0 {
			return nil, pictures.ErrUnsupportedType
		}
		exts[i] = ext
	}

	refs := make([]string, 0, len(uploads))
	written := make([]string, 0, len(uploads))
	for i, u := range uploads {
		if err := ctx.Err(); err != nil {
			s.cleanup(written)
			return nil, err
		}

		name := uuid.NewString() + exts[i]
		path := filepath.Join(s.Dir, name)
		if err := os.WriteFile(path, u.Data, 0o644); err != nil {
			s.cleanup(written)
			return nil, fmt.Errorf("write picture: %w", err)
		}
		written = append(written, path)
		refs = append(refs, URLPrefix+name)
	}
	return refs, nil
}

// Delete borra las fotos de refs. Solo acepta refs bajo URLPrefix y usa el
// nombre base, así ninguna ref puede salir de Dir.
func (s *Store) Delete(ctx context.Context, refs []string) error {
	var errs []error
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		name, ok := strings.CutPrefix(ref, URLPrefix)
		if !ok || name == "" || name != filepath.Base(name) {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) cleanup(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// Handler sirve las fotos guardadas. Montar en URLPrefix.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(URLPrefix, http.FileServer(http.Dir(s.Dir)))
}
