package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/partyup/matchmaking_backend/services"
	"go.uber.org/zap"
)

// Env bundles the dependencies every handler needs.
type Env struct {
	Parties  *services.PartyService
	Spots    *services.SpotService
	Messages *services.MessageService
	Logger   *zap.SugaredLogger
}

// respondError maps a service failure onto an HTTP status. Validation and
// conflict messages travel verbatim; storage causes stay in the logs.
func (e *Env) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch services.KindOf(err) {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindAuth:
		status = http.StatusUnauthorized
	case services.KindForbidden:
		status = http.StatusForbidden
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindStorage:
		e.Logger.Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
