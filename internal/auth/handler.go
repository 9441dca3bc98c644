package auth

import (
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/onfr0y/Sp-app/internal/apperr"
	"github.com/onfr0y/Sp-app/internal/config"
	"github.com/onfr0y/Sp-app/internal/logs"
	"github.com/onfr0y/Sp-app/internal/storage"
	"github.com/onfr0y/Sp-app/internal/user"
)

type Handler struct {
	users *user.Repo
	store storage.Store // nil si aucun backend configuré
	cfg   *config.Config
}

func NewHandler(users *user.Repo, store storage.Store, cfg *config.Config) *Handler {
	return &Handler{users: users, store: store, cfg: cfg}
}

type registerInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatar_url"`
}

// Register POST /api/auth/register
// Accepte du JSON ou du multipart (avec un fichier "avatar" optionnel).
func (h *Handler) Register(c *gin.Context) {
	route := c.FullPath()

	var input registerInput
	isMultipart := strings.HasPrefix(c.ContentType(), "multipart/form-data")
	if isMultipart {
		input.Username = c.PostForm("username")
		input.Email = c.PostForm("email")
		input.Password = c.PostForm("password")
		input.AvatarURL = c.PostForm("avatar_url")
	} else if err := c.BindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("Requête invalide"))
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		apperr.Abort(c, apperr.BadRequest("Champs requis manquants"))
		return
	}
	if len(input.Username) < 3 || len(input.Username) > 20 {
		apperr.Abort(c, apperr.BadRequest("Le nom d'utilisateur doit contenir entre 3 et 20 caractères"))
		return
	}
	if len(input.Password) < 6 {
		apperr.Abort(c, apperr.BadRequest("Le mot de passe doit contenir au moins 6 caractères"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Abort(c, apperr.Internal("Erreur lors du traitement du mot de passe", err))
		return
	}

	avatar, err := h.resolveAvatar(c, isMultipart, input.AvatarURL)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	newUser := user.User{
		ID:             uuid.New().String(),
		Username:       input.Username,
		Email:          input.Email,
		Password:       string(hash),
		ProfilePicture: avatar.URL,
		Followers:      pq.StringArray{},
		Followings:     pq.StringArray{},
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.users.Create(&newUser); err != nil {
		h.discardAvatar(c, avatar)
		apperr.Abort(c, err)
		logs.LogJSON(logs.LevelWarn, "Registration failed", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Utilisateur inscrit", "user": newUser})
	logs.LogJSON(logs.LevelInfo, "User registered", map[string]interface{}{
		"route":  route,
		"userID": newUser.ID,
	})
}

// Login POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&input); err != nil {
		apperr.Abort(c, apperr.BadRequest("Requête invalide"))
		return
	}
	if input.Email == "" || input.Password == "" {
		apperr.Abort(c, apperr.BadRequest("Champs requis manquants"))
		return
	}

	// Même message pour email inconnu et mot de passe erroné
	invalidCredentials := apperr.Unauthorized("Email ou mot de passe invalide")

	u, err := h.users.FindByEmail(input.Email)
	if err != nil {
		if apperr.From(err).Status == http.StatusNotFound {
			apperr.Abort(c, invalidCredentials)
		} else {
			apperr.Abort(c, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(input.Password)); err != nil {
		apperr.Abort(c, invalidCredentials)
		return
	}

	token, err := GenerateToken(u.ID, h.cfg.JWTSecret)
	if err != nil {
		apperr.Abort(c, apperr.Internal("Erreur lors de la génération du token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// resolveAvatar stocke la photo de profil fournie à l'inscription : soit un
// fichier multipart, soit une URL distante récupérée côté serveur. Image
// zéro si rien n'est fourni ou si l'upload est désactivé.
func (h *Handler) resolveAvatar(c *gin.Context, isMultipart bool, avatarURL string) (storage.Image, error) {
	if h.store == nil {
		return storage.Image{}, nil
	}

	if isMultipart {
		file, header, err := c.Request.FormFile("avatar")
		if err == nil {
			defer file.Close()
			contentType := header.Header.Get("Content-Type")
			if err := storage.Validate(header.Filename, contentType, header.Size); err != nil {
				return storage.Image{}, err
			}
			data, err := io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
			if err != nil {
				return storage.Image{}, apperr.Internal("Erreur lors de la lecture du fichier", err)
			}
			return h.store.Store(c.Request.Context(), data, header.Filename, contentType)
		}
	}

	if avatarURL != "" {
		return h.importRemoteAvatar(c, avatarURL)
	}
	return storage.Image{}, nil
}

// importRemoteAvatar télécharge l'image pointée par l'URL puis la fait
// passer par l'adaptateur de stockage comme n'importe quel upload.
func (h *Handler) importRemoteAvatar(c *gin.Context, avatarURL string) (storage.Image, error) {
	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().SetContext(c.Request.Context()).Get(avatarURL)
	if err != nil || resp.IsError() {
		return storage.Image{}, apperr.BadRequest("Avatar inaccessible à cette URL")
	}

	data := resp.Body()
	if int64(len(data)) > storage.MaxUploadSize {
		return storage.Image{}, apperr.PayloadTooLarge("Fichier trop volumineux (10 Mo maximum)")
	}

	contentType := resp.Header().Get("Content-Type")
	parsed, err := url.Parse(avatarURL)
	if err != nil {
		return storage.Image{}, apperr.BadRequest("URL d'avatar invalide")
	}
	filename := path.Base(parsed.Path)

	return h.store.Store(c.Request.Context(), data, filename, contentType)
}

// discardAvatar retire du stockage un avatar déjà écrit quand l'inscription
// échoue ensuite, pour ne laisser aucun objet orphelin.
func (h *Handler) discardAvatar(c *gin.Context, avatar storage.Image) {
	if h.store == nil || avatar.StorageID == "" {
		return
	}
	if err := h.store.Delete(c.Request.Context(), avatar.StorageID); err != nil {
		logs.LogJSON(logs.LevelWarn, "Avatar cleanup failed", map[string]interface{}{
			"error":     err.Error(),
			"storageID": avatar.StorageID,
		})
	}
}
