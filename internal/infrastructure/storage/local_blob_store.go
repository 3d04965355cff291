// Package storage guarda los CVs subidos en disco local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/DheemanKumar/lead-manager/internal/application/ports"
)

var _ ports.BlobStorage = (*LocalBlobStore)(nil)

// ErrInvalidRef la referencia no corresponde a un archivo de este store.
var ErrInvalidRef = errors.New("storage: referencia inválida")

// Extensiones aceptadas; cualquier otra se guarda sin extensión.
var allowedExt = map[string]struct{}{".pdf": {}, ".txt": {}, ".doc": {}, ".docx": {}}

// LocalBlobStore guarda cada documento como <uuid><ext> dentro de un directorio.
// La referencia devuelta es el nombre del archivo (nunca una ruta).
type LocalBlobStore struct {
	dir string
}

// NewLocalBlobStore crea el directorio si no existe.
func NewLocalBlobStore(dir string) (*LocalBlobStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage: directorio vacío")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &LocalBlobStore{dir: dir}, nil
}

// Put escribe el documento y devuelve su referencia.
func (s *LocalBlobStore) Put(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExt[ext]; !ok {
		ext = ""
	}
	ref := uuid.NewString() + ext
	// Escritura atómica: tmp + rename para no dejar archivos a medias.
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, ref)); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	return ref, nil
}

// Read devuelve el contenido del documento.
func (s *LocalBlobStore) Read(_ context.Context, ref string) ([]byte, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	return data, nil
}

// Delete borra el documento; no es error si ya no existe.
func (s *LocalBlobStore) Delete(_ context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *LocalBlobStore) path(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(s.dir, ref), nil
}
