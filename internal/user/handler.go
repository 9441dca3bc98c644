package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/onfr0y/Sp-app/internal/apperr"
	"github.com/onfr0y/Sp-app/internal/logs"
)

const searchLimit = 20

type Handler struct {
	users *Repo
}

func NewHandler(users *Repo) *Handler {
	return &Handler{users: users}
}

// GetUser GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		apperr.Abort(c, apperr.BadRequest("Format d'identifiant invalide"))
		return
	}

	u, err := h.users.GetByID(id)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

// SearchUsers GET /api/users/search?q=
func (h *Handler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		apperr.Abort(c, apperr.BadRequest("Paramètre de recherche manquant"))
		return
	}

	users, err := h.users.SearchByUsernamePrefix(q, searchLimit)
	if err != nil {
		apperr.Abort(c, err)
		return
	}
	if len(users) == 0 {
		apperr.Abort(c, apperr.NotFound("Aucun utilisateur trouvé"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUser PUT /api/users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	route := c.FullPath()
	currentUserID := c.GetString("user_id")
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		apperr.Abort(c, apperr.BadRequest("Format d'identifiant invalide"))
		return
	}

	if currentUserID != id {
		current, err := h.users.GetByID(currentUserID)
		if err != nil || !current.IsAdmin {
			apperr.Abort(c, apperr.Forbidden("Vous n'êtes pas autorisé à modifier ce compte"))
			return
		}
	}

	var patch map[string]interface{}
	if err := c.BindJSON(&patch); err != nil {
		apperr.Abort(c, apperr.BadRequest("Requête invalide"))
		return
	}

	// Un nouveau mot de passe est re-haché, jamais stocké en clair
	if raw, ok := patch["password"]; ok {
		password, ok := raw.(string)
		if !ok || len(password) < 6 {
			apperr.Abort(c, apperr.BadRequest("Le mot de passe doit contenir au moins 6 caractères"))
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			apperr.Abort(c, apperr.Internal("Erreur lors du traitement du mot de passe", err))
			return
		}
		patch["password"] = string(hash)
	}

	updated, err := h.users.Update(id, patch)
	if err != nil {
		apperr.Abort(c, err)
		logs.LogJSON(logs.LevelWarn, "User update failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": currentUserID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Compte mis à jour", "user": updated})
}

// FollowUser PUT /api/users/:id/follow
func (h *Handler) FollowUser(c *gin.Context) {
	h.applyFollow(c, true)
}

// UnfollowUser PUT /api/users/:id/unfollow
func (h *Handler) UnfollowUser(c *gin.Context) {
	h.applyFollow(c, false)
}

func (h *Handler) applyFollow(c *gin.Context, add bool) {
	route := c.FullPath()
	followerID := c.GetString("user_id")
	targetID := c.Param("id")

	if _, err := uuid.Parse(targetID); err != nil {
		apperr.Abort(c, apperr.BadRequest("Format d'identifiant invalide"))
		return
	}

	if err := h.users.ApplyFollowEdge(followerID, targetID, add); err != nil {
		apperr.Abort(c, err)
		logs.LogJSON(logs.LevelWarn, "Follow edge rejected", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("targetID : %s", targetID),
		})
		return
	}

	message := "Utilisateur suivi"
	if !add {
		message = "Utilisateur non suivi"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
	logs.LogJSON(logs.LevelInfo, "Follow edge applied", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("targetID : %s", targetID),
	})
}
