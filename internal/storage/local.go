package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/onfr0y/Sp-app/internal/apperr"
)

// Local écrit les images dans un répertoire servi statiquement sous
// /uploads/posts. L'identifiant de stockage est le nom du fichier.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("création du répertoire d'upload %s: %w", dir, err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Store(_ context.Context, data []byte, filename, contentType string) (Image, error) {
	if err := Validate(filename, contentType, int64(len(data))); err != nil {
		return Image{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("post-%d-%s%s", time.Now().UnixMilli(), randomSuffix(), ext)
	path := filepath.Join(l.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		// Une écriture partielle ne doit pas laisser de fichier orphelin
		_ = os.Remove(path)
		return Image{}, apperr.ServiceUnavailable("Erreur lors de l'écriture du fichier", err)
	}

	width, height := DecodeDimensions(data)
	return Image{
		URL:       "/uploads/posts/" + name,
		Width:     width,
		Height:    height,
		StorageID: name,
	}, nil
}

func (l *Local) Delete(_ context.Context, storageID string) error {
	// filepath.Base neutralise tout chemin relatif glissé dans l'identifiant
	path := filepath.Join(l.dir, filepath.Base(storageID))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return apperr.NotFound("Fichier non trouvé")
		}
		return apperr.ServiceUnavailable("Erreur lors de la suppression du fichier", err)
	}
	return nil
}

func randomSuffix() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
