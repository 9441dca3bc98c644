package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/onfr0y/Sp-app/internal/apperr"
	"github.com/onfr0y/Sp-app/internal/config"
)

// MaxUploadSize est la taille maximale d'un fichier accepté (10 Mo).
const MaxUploadSize = 10 << 20

// Image décrit un fichier stocké : l'URL publique, les dimensions si elles
// ont pu être lues, et l'identifiant nécessaire pour le supprimer plus tard.
type Image struct {
	URL       string `json:"url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	StorageID string `json:"storage_id"`
}

// Store est le contrat commun aux deux backends (disque local et S3).
// Le choix du backend se fait à la construction, jamais dans la logique
// métier.
type Store interface {
	Store(ctx context.Context, data []byte, filename, contentType string) (Image, error)
	Delete(ctx context.Context, storageID string) error
}

var allowedContentTypes = map[string]bool{
	"image/jpeg":  true,
	"image/pjpeg": true,
	"image/png":   true,
	"image/gif":   true,
	"image/webp":  true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Validate vérifie type et taille avant toute écriture. L'appelant peut
// donc rejeter un lot entier sans avoir rien stocké.
func Validate(filename, contentType string, size int64) error {
	if size > MaxUploadSize {
		return apperr.PayloadTooLarge("Fichier trop volumineux (10 Mo maximum)")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] || !allowedContentTypes[contentType] {
		return apperr.UnsupportedMediaType("Type de fichier non supporté (JPEG, PNG, GIF ou WEBP)")
	}
	return nil
}

// New choisit le backend selon la configuration : S3 si les credentials
// sont complets, sinon le disque local si un répertoire est configuré.
// (nil, nil) signifie que l'upload est désactivé — ce n'est pas fatal.
func New(cfg *config.Config) (Store, error) {
	switch {
	case cfg.S3Configured():
		return NewS3(cfg)
	case cfg.UploadDir != "":
		return NewLocal(cfg.UploadDir)
	default:
		return nil, nil
	}
}
