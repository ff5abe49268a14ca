package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClaimSpot godoc
// @Summary Claim an open spot
// @Description Fills the spot with the authenticated user; broadcasts the party update to its rooms
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Spot ID"
// @Success 204 "Spot claimed"
// @Failure 400 {object} map[string]string "Invalid spot ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Spot not found"
// @Failure 409 {object} map[string]string "Spot taken or already in a party"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/spots/{id} [patch]
func (e *Env) ClaimSpot(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	spotID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot ID"})
		return
	}

	if _, err := e.Spots.ClaimSpot(userID, uint(spotID)); err != nil {
		e.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LeaveSpot godoc
// @Summary Leave a claimed spot
// @Description Reopens the spot; a full party drops back into the game listing
// @Tags spots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Spot ID"
// @Success 204 "Spot released"
// @Failure 400 {object} map[string]string "Invalid spot ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the occupant"
// @Failure 404 {object} map[string]string "Spot not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/spots/{id} [delete]
func (e *Env) LeaveSpot(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	spotID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid spot ID"})
		return
	}

	if err := e.Spots.LeaveSpot(userID, uint(spotID)); err != nil {
		e.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
