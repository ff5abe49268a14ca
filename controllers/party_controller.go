package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/partyup/matchmaking_backend/services"
)

type CreatePartyInput struct {
	Party       services.PartyDraft  `json:"party" binding:"required"`
	Spots       []services.SpotDraft `json:"spots"`
	Requirement []uint               `json:"requirement"`
}

// CreateParty godoc
// @Summary Create a new party
// @Description Creates a party with its spots and requirements; the owner's spot is filled automatically
// @Tags parties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param party body CreatePartyInput true "Party Creation"
// @Success 201 {object} map[string]interface{} "Party created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Owner or pre-filled user already in a party"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/parties [post]
func (e *Env) CreateParty(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreatePartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	partyID, err := e.Parties.CreateParty(userID, input.Party, input.Spots, input.Requirement)
	if err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"party_id": partyID})
}

// GetParty godoc
// @Summary Get party detail
// @Description Returns the nested party view with spots, roles and requirements resolved
// @Tags parties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Party ID"
// @Success 200 {object} map[string]interface{} "Party detail"
// @Failure 400 {object} map[string]string "Invalid party ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/parties/{id} [get]
func (e *Env) GetParty(c *gin.Context) {
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid party ID"})
		return
	}

	view, err := e.Parties.GetPartyView(uint(partyID))
	if err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"party": view})
}

// ListGameParties godoc
// @Summary List open parties for a game
// @Description Returns one page of a game's open parties, newest first
// @Tags parties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param game_id query int true "Game ID"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} map[string]interface{} "Listing page"
// @Failure 400 {object} map[string]string "Invalid game ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/parties [get]
func (e *Env) ListGameParties(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Query("game_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	listing, err := e.Parties.ListGameParties(uint(gameID), page)
	if err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// UpdateParty godoc
// @Summary Update party metadata
// @Description Lets the owner edit title, description, gamemode or application flag
// @Tags parties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Party ID"
// @Param party body services.PartyUpdate true "Party Update"
// @Success 200 {object} map[string]interface{} "Updated party"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/parties/{id} [put]
func (e *Env) UpdateParty(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid party ID"})
		return
	}

	var input services.PartyUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := e.Parties.UpdateParty(userID, uint(partyID), input)
	if err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"party": view})
}

// DeleteParty godoc
// @Summary Delete a party
// @Description Removes the party, its spots and requirements; chat logs are archived
// @Tags parties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Party ID"
// @Success 200 {object} map[string]string "Party deleted successfully"
// @Failure 400 {object} map[string]string "Invalid party ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/parties/{id} [delete]
func (e *Env) DeleteParty(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid party ID"})
		return
	}

	if err := e.Parties.DeleteParty(userID, uint(partyID)); err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "party deleted successfully"})
}
