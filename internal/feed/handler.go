package feed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onfr0y/Sp-app/internal/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// GetFeed GET /api/posts
// Renvoie le tableau des projections. Avec ?columns= et ?width= (tous deux
// positifs), chaque projection porte en plus sa position masonry calculée
// côté serveur.
func (h *Handler) GetFeed(c *gin.Context) {
	feed, err := h.svc.GetFeed()
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	columns, _ := strconv.Atoi(c.Query("columns"))
	width, _ := strconv.ParseFloat(c.Query("width"), 64)
	if columns > 0 && width > 0 {
		positioned, _ := Layout(feed, columns, width)
		c.JSON(http.StatusOK, positioned)
		return
	}

	c.JSON(http.StatusOK, feed)
}
