package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/onfr0y/Sp-app/internal/auth"
	"github.com/onfr0y/Sp-app/internal/config"
	"github.com/onfr0y/Sp-app/internal/database"
	"github.com/onfr0y/Sp-app/internal/feed"
	"github.com/onfr0y/Sp-app/internal/logs"
	"github.com/onfr0y/Sp-app/internal/middleware"
	"github.com/onfr0y/Sp-app/internal/post"
	"github.com/onfr0y/Sp-app/internal/storage"
	"github.com/onfr0y/Sp-app/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DBUrl == "" {
		logs.LogJSON(logs.LevelFatal, "DATABASE_URL manquant", nil)
		os.Exit(1)
	}
	logs.Verbose = !cfg.Production()

	db, err := database.Connect(cfg.DBUrl)
	if err != nil {
		logs.LogJSON(logs.LevelFatal, "Database connection failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Un stockage absent ou injoignable désactive l'upload sans empêcher
	// le serveur de démarrer.
	store, err := storage.New(cfg)
	if err != nil {
		logs.LogJSON(logs.LevelError, "Storage unavailable, uploads disabled", map[string]interface{}{
			"error": err.Error(),
		})
		store = nil
	}
	if store == nil {
		logs.LogJSON(logs.LevelWarn, "No storage backend configured, uploads disabled", nil)
	}

	users := user.NewRepo(db)
	posts := post.NewRepo(db)

	authHandler := auth.NewHandler(users, store, cfg)
	userHandler := user.NewHandler(users)
	postHandler := post.NewHandler(posts, users, store)
	feedHandler := feed.NewHandler(feed.NewService(posts))

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Le backend local sert ses fichiers lui-même
	if cfg.UploadDir != "" && !cfg.S3Configured() {
		r.Static("/uploads/posts", cfg.UploadDir)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Inscription & Connexion
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Lecture publique
	api.GET("/posts", middleware.OptionalAuth(cfg.JWTSecret), feedHandler.GetFeed)
	api.GET("/posts/:id", postHandler.GetPost)
	api.GET("/users/search", userHandler.SearchUsers)
	api.GET("/users/:id", userHandler.GetUser)

	// Routes authentifiées
	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWTSecret))
	authed.POST("/posts", postHandler.CreatePost)
	authed.PUT("/posts/:id/like", postHandler.ToggleLike)
	authed.DELETE("/posts/:id", postHandler.DeletePost)
	authed.PUT("/users/:id/follow", userHandler.FollowUser)
	authed.PUT("/users/:id/unfollow", userHandler.UnfollowUser)
	authed.PUT("/users/:id", userHandler.UpdateUser)

	if err := r.Run(":" + cfg.Port); err != nil {
		logs.LogJSON(logs.LevelFatal, "Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
