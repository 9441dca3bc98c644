package apperr

import (
	"github.com/gin-gonic/gin"

	"github.com/onfr0y/Sp-app/internal/logs"
)

// Abort écrit la réponse d'erreur JSON et interrompt la requête.
// Les détails internes (cause) ne sortent qu'en mode verbeux.
func Abort(c *gin.Context, err error) {
	appErr := From(err)
	body := gin.H{"error": appErr.Message}
	if appErr.Cause != nil && logs.Verbose {
		body["details"] = appErr.Cause.Error()
	}
	c.AbortWithStatusJSON(appErr.Status, body)
}
