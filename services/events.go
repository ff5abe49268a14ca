package services

import "fmt"

const (
	// PostedParty emitted to a game room when a new party goes up
	PostedParty = "posted party"
	// UpdateParty emitted to a party room whenever its state changes
	UpdateParty = "update party"
	// DelistParty emitted to a game room when a party fills up or dies
	DelistParty = "delist party"
	// SpotUpdated emitted to a game room when a spot fills or reopens
	SpotUpdated = "spot updated"
	// ChatMessage emitted to a party room when a chat entry is posted or edited
	ChatMessage = "chat message"
	// ChatMessageDeleted emitted to a party room when a chat entry is removed
	ChatMessageDeleted = "chat message deleted"
)

// Broadcaster fans an event out to every connection currently subscribed to a
// room. Fire and forget: nothing is queued for absent subscribers.
type Broadcaster interface {
	Emit(room string, event string, payload interface{})
}

// PartyRoom names the realtime channel for one party's live state.
func PartyRoom(partyID uint) string {
	return fmt.Sprintf("party:%d", partyID)
}

// GameRoom names the realtime channel for a game's open-party listing.
func GameRoom(gameID uint) string {
	return fmt.Sprintf("games:%d", gameID)
}
