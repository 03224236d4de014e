package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"github.com/jhoicas/kiosko-api/internal/application/catalogo"
)

var _ catalogo.ImageStore = (*ImageStore)(nil)

// ImageStore guarda imágenes de productos en un bucket blob y las expone bajo
// una URL pública (el servidor HTTP sirve el directorio como estático). Las
// claves son UUIDs: el nombre original del archivo nunca llega al storage.
type ImageStore struct {
	bucket    *blob.Bucket
	publicURL string
}

// NewImageStore abre (o crea) el bucket local de imágenes.
func NewImageStore(ctx context.Context, dir, publicURL string) (*ImageStore, error) {
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, fmt.Errorf("abrir bucket de imágenes: %w", err)
	}
	return &ImageStore{bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Upload escribe la imagen y devuelve su URL pública.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := uuid.New().String() + extensionFor(filename, contentType)
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("abrir writer de imagen: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("cerrar imagen: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// Delete borra la imagen a la que apunta una URL pública emitida por Upload.
// URLs ajenas al prefijo del store se rechazan.
func (s *ImageStore) Delete(ctx context.Context, publicURL string) error {
	if !strings.HasPrefix(publicURL, s.publicURL+"/") {
		return fmt.Errorf("url de imagen fuera del store: %s", publicURL)
	}
	key := path.Base(publicURL)
	if err := s.bucket.Delete(ctx, key); err != nil {
		return fmt.Errorf("borrar imagen: %w", err)
	}
	return nil
}

// Close cierra el bucket.
func (s *ImageStore) Close() error {
	return s.bucket.Close()
}

// extensionFor decide la extensión de la clave: primero la del nombre
// original, si no la que sugiere el content type.
func extensionFor(filename, contentType string) string {
	if ext := path.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
