package config

import (
	"os"
)

// Config regroupe toute la configuration lue au démarrage. La struct est
// construite une seule fois puis injectée dans les constructeurs : aucun
// composant ne relit l'environnement en cours de route.
type Config struct {
	Port          string
	DBUrl         string
	JWTSecret     string
	AllowedOrigin string
	Env           string

	// Stockage S3 (distant)
	S3Bucket    string
	S3Region    string
	S3AccessKey string
	S3SecretKey string

	// Stockage local (répertoire des uploads)
	UploadDir string
}

func Load() *Config {
	cfg := &Config{
		Port:          os.Getenv("PORT"),
		DBUrl:         os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		Env:           os.Getenv("APP_ENV"),
		S3Bucket:      os.Getenv("AWS_BUCKET_NAME"),
		S3Region:      os.Getenv("AWS_REGION"),
		S3AccessKey:   os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "http://localhost:5173"
	}
	return cfg
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// S3Configured indique si les trois volets de credentials S3 sont présents.
func (c *Config) S3Configured() bool {
	return c.S3Bucket != "" && c.S3Region != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
