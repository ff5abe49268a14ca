package websocket

import (
	"encoding/json"
	"strings"

	"github.com/partyup/matchmaking_backend/services"
)

// Socket actions clients may send.
const (
	ActionJoin        = "join"
	ActionLeave       = "leave"
	ActionPostParty   = "post party"
	ActionChatMessage = "chat message"
)

type postPartyPayload struct {
	Party       services.PartyDraft  `json:"party"`
	Spots       []services.SpotDraft `json:"spots"`
	Requirement []uint               `json:"requirement"`
}

type chatMessagePayload struct {
	PartyID     uint   `json:"party_id"`
	MessageBody string `json:"message_body"`
}

// handleAction routes one client request. Failures go back to the requester
// as a "<action> error" event and never reach the room.
func (h *Handler) handleAction(client *Client, raw []byte) {
	var action Action
	if err := json.Unmarshal(raw, &action); err != nil {
		client.sendEvent("error", "malformed request")
		return
	}

	switch action.Action {
	case ActionJoin:
		if !validRoom(action.Room) {
			client.sendEvent("join error", "unknown room")
			return
		}
		h.Hub.Join(client, action.Room)

	case ActionLeave:
		h.Hub.Leave(client, action.Room)

	case ActionPostParty:
		var payload postPartyPayload
		if err := json.Unmarshal(action.Payload, &payload); err != nil {
			client.sendEvent("post party error", "malformed party information")
			return
		}
		_, err := h.Parties.CreateParty(client.userID, payload.Party, payload.Spots, payload.Requirement)
		if err != nil {
			client.sendEvent("post party error", err.Error())
			return
		}
		// The lifecycle manager already announced the party to the game room.

	case ActionChatMessage:
		var payload chatMessagePayload
		if err := json.Unmarshal(action.Payload, &payload); err != nil {
			client.sendEvent("chat message error", "malformed message")
			return
		}
		_, err := h.Messages.PostMessage(client.userID, payload.PartyID, payload.MessageBody)
		if err != nil {
			client.sendEvent("chat message error", err.Error())
			return
		}

	default:
		client.sendEvent("error", "unknown action")
	}
}

func validRoom(room string) bool {
	return strings.HasPrefix(room, "party:") || strings.HasPrefix(room, "games:")
}
