package storage

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DecodeDimensions lit la largeur et la hauteur d'une image sans la décoder
// entièrement. (0, 0) si le format est illisible : les dimensions manquantes
// ne sont pas une erreur, le fil retombe sur une valeur par défaut.
func DecodeDimensions(data []byte) (width, height int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
