package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CreateMessageInput struct {
	MessageBody string `json:"message_body" binding:"required" example:"anyone up for ranked?"`
}

type UpdateMessageInput struct {
	MessageBody string `json:"message_body" binding:"required"`
}

// GetMessages godoc
// @Summary Get a party's chat log
// @Description Returns the party's messages ascending by timestamp
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Party ID"
// @Success 200 {object} map[string]interface{} "List of messages"
// @Failure 400 {object} map[string]string "Invalid party ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/parties/{id}/messages [get]
func (e *Env) GetMessages(c *gin.Context) {
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid party ID"})
		return
	}

	messages, err := e.Messages.GetPartyMessages(uint(partyID))
	if err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// CreateMessage godoc
// @Summary Post a chat message
// @Description Appends a message to the party's chat; members only
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Party ID"
// @Param message body CreateMessageInput true "Message"
// @Success 201 {object} map[string]interface{} "Message posted"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a party member"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/parties/{id}/messages [post]
func (e *Env) CreateMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	partyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid party ID"})
		return
	}

	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := e.Messages.PostMessage(userID, uint(partyID), input.MessageBody)
	if err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": message})
}

// UpdateMessage godoc
// @Summary Edit a chat message
// @Description Replaces the message body; author only
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Param message body UpdateMessageInput true "New body"
// @Success 200 {object} map[string]interface{} "Message updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Message not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages/{id} [put]
func (e *Env) UpdateMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
		return
	}

	var input UpdateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := e.Messages.EditMessage(userID, uint(messageID), input.MessageBody)
	if err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": message})
}

// DeleteMessage godoc
// @Summary Delete a chat message
// @Description Archives then removes the message; author only
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]string "Message deleted"
// @Failure 400 {object} map[string]string "Invalid message ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Message not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/messages/{id} [delete]
func (e *Env) DeleteMessage(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
		return
	}

	if err := e.Messages.DeleteMessage(userID, uint(messageID)); err != nil {
		e.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}
