package post

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/onfr0y/Sp-app/internal/apperr"
	"github.com/onfr0y/Sp-app/internal/logs"
	"github.com/onfr0y/Sp-app/internal/storage"
	"github.com/onfr0y/Sp-app/internal/user"
)

const maxDescLength = 500

// Repository est la vue du dépôt de posts dont le handler a besoin.
type Repository interface {
	Create(p *Post) error
	GetByID(id string) (*Post, error)
	Delete(id string) error
	ToggleLike(postID, userID string) (liked bool, likeCount int, err error)
}

// UserDirectory vérifie l'existence (et les droits) du propriétaire.
type UserDirectory interface {
	GetByID(id string) (*user.User, error)
}

type Handler struct {
	posts Repository
	users UserDirectory
	store storage.Store // nil si aucun backend configuré
}

func NewHandler(posts Repository, users UserDirectory, store storage.Store) *Handler {
	return &Handler{posts: posts, users: users, store: store}
}

// CreatePost POST /api/posts
// Multipart : champ "desc" + une ou plusieurs entrées "images". Les fichiers
// sont tous validés avant la moindre écriture ; si un upload échoue après
// d'autres réussis, les images déjà stockées sont supprimées avant de
// remonter l'erreur — jamais de post au jeu d'images partiel.
func (h *Handler) CreatePost(c *gin.Context) {
	route := c.FullPath()

	userID := c.GetString("user_id")
	if userID == "" {
		apperr.Abort(c, apperr.Unauthorized("Utilisateur non authentifié"))
		return
	}
	if _, err := h.users.GetByID(userID); err != nil {
		apperr.Abort(c, err)
		return
	}

	desc := c.PostForm("desc")
	if len(desc) > maxDescLength {
		apperr.Abort(c, apperr.BadRequest("Description trop longue (500 caractères maximum)"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperr.Abort(c, apperr.BadRequest("Requête multipart invalide"))
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		apperr.Abort(c, apperr.BadRequest("Au moins une image est requise"))
		return
	}

	// La requête doit être valide avant de constater l'absence de stockage
	if h.store == nil {
		apperr.Abort(c, apperr.ServiceUnavailable("Stockage d'images non configuré", nil))
		return
	}

	// Validation de tout le lot avant la première écriture
	for _, header := range files {
		if err := storage.Validate(header.Filename, contentTypeOf(header), header.Size); err != nil {
			apperr.Abort(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	var stored []storage.Image
	for _, header := range files {
		data, err := readFile(header)
		if err != nil {
			h.rollback(ctx, stored)
			apperr.Abort(c, apperr.Internal("Erreur lors de la lecture du fichier", err))
			return
		}
		img, err := h.store.Store(ctx, data, header.Filename, contentTypeOf(header))
		if err != nil {
			h.rollback(ctx, stored)
			apperr.Abort(c, err)
			return
		}
		stored = append(stored, img)
	}

	newPost := Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Desc:      desc,
		Images:    stored,
		Likes:     pq.StringArray{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.posts.Create(&newPost); err != nil {
		h.rollback(ctx, stored)
		apperr.Abort(c, err)
		logs.LogJSON(logs.LevelError, "Post creation failed after upload", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post créé avec succès", "post": newPost})
	logs.LogJSON(logs.LevelInfo, "Post created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": newPost.ID,
	})
}

// GetPost GET /api/posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		apperr.Abort(c, apperr.BadRequest("Format d'identifiant invalide"))
		return
	}

	p, err := h.posts.GetByID(postID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": p, "like_count": len(p.Likes)})
}

// ToggleLike PUT /api/posts/:id/like
func (h *Handler) ToggleLike(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	if _, err := uuid.Parse(postID); err != nil {
		apperr.Abort(c, apperr.BadRequest("Format d'identifiant invalide"))
		return
	}
	if _, err := uuid.Parse(userID); err != nil {
		apperr.Abort(c, apperr.BadRequest("Format d'identifiant utilisateur invalide"))
		return
	}

	liked, likeCount, err := h.posts.ToggleLike(postID, userID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post_id":    postID,
		"is_liked":   liked,
		"like_count": likeCount,
	})
}

// DeletePost DELETE /api/posts/:id
// Réservé au propriétaire ou à un admin. Les images sont supprimées du
// stockage d'abord ; une erreur y est loguée mais n'empêche pas la
// suppression de la ligne.
func (h *Handler) DeletePost(c *gin.Context) {
	route := c.FullPath()

	postID := c.Param("id")
	userID := c.GetString("user_id")

	if _, err := uuid.Parse(postID); err != nil {
		apperr.Abort(c, apperr.BadRequest("Format d'identifiant invalide"))
		return
	}

	p, err := h.posts.GetByID(postID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if p.UserID != userID {
		current, err := h.users.GetByID(userID)
		if err != nil || !current.IsAdmin {
			apperr.Abort(c, apperr.Forbidden("Vous n'êtes pas autorisé à supprimer ce post"))
			return
		}
	}

	if h.store != nil {
		for _, img := range p.Images {
			if err := h.store.Delete(c.Request.Context(), img.StorageID); err != nil {
				logs.LogJSON(logs.LevelError, "Storage delete failed", map[string]interface{}{
					"error":     err.Error(),
					"route":     route,
					"postID":    postID,
					"storageID": img.StorageID,
				})
			}
		}
	}

	if err := h.posts.Delete(postID); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post supprimé avec succès"})
	logs.LogJSON(logs.LevelInfo, "Post deleted", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
}

// rollback supprime les images déjà stockées après un échec en aval.
func (h *Handler) rollback(ctx context.Context, images []storage.Image) {
	for _, img := range images {
		if err := h.store.Delete(ctx, img.StorageID); err != nil {
			logs.LogJSON(logs.LevelError, "Rollback delete failed", map[string]interface{}{
				"error":     err.Error(),
				"storageID": img.StorageID,
			})
		}
	}
}

func contentTypeOf(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, storage.MaxUploadSize+1))
}
