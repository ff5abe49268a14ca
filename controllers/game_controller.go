package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetGames godoc
// @Summary List supported games
// @Description Returns the static game catalog
// @Tags games
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "List of games"
// @Router /api/games [get]
func (e *Env) GetGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"games": e.Parties.Catalog.Games()})
}
