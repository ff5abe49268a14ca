package services

import (
	"errors"
	"strings"

	"github.com/partyup/matchmaking_backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SpotService handles claim and leave transitions. The race-sensitive part of
// a claim is a conditional update that only lands while the spot is still
// open, backed by the partial unique index on spots.filled; application code
// never decides a race on its own reads.
type SpotService struct {
	DB      *gorm.DB
	Logger  *zap.SugaredLogger
	Parties *PartyService
	Hub     Broadcaster
}

// ClaimResult reports what a successful claim did to the party.
type ClaimResult struct {
	PartyID  uint `json:"party_id"`
	GameID   uint `json:"game_id"`
	Delisted bool `json:"delisted"`
}

// ClaimSpot fills a spot with the caller. Exactly one of two concurrent
// claims on the same spot succeeds; the loser gets a conflict. A caller who
// already holds any spot in the system is rejected before, and by the store
// constraint even during, the write. Filling the last open spot flips the
// party ready and delists it from the game listing.
func (s *SpotService) ClaimSpot(userID, spotID uint) (*ClaimResult, error) {
	var spot models.Spot
	err := s.DB.First(&spot, spotID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgSpotNotFound)
	}
	if err != nil {
		return nil, storage(err)
	}
	if spot.Filled != nil {
		return nil, conflict(MsgSpotTaken)
	}

	var held int64
	if err := s.DB.Model(&models.Spot{}).Where("filled = ?", userID).Count(&held).Error; err != nil {
		return nil, storage(err)
	}
	if held > 0 {
		return nil, conflict(MsgAlreadyInParty)
	}

	mu := s.Parties.lockParty(spot.PartyID)
	defer mu.Unlock()

	// The write that decides the race.
	res := s.DB.Model(&models.Spot{}).
		Where("id = ? AND filled IS NULL", spotID).
		Update("filled", userID)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, conflict(MsgAlreadyInParty)
		}
		s.Logger.Errorw("spot claim failed", "spot_id", spotID, "user_id", userID, "error", res.Error)
		return nil, storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, conflict(MsgSpotTaken)
	}

	var remaining int64
	if err := s.DB.Model(&models.Spot{}).
		Where("party_id = ? AND filled IS NULL", spot.PartyID).
		Count(&remaining).Error; err != nil {
		return nil, storage(err)
	}

	result := &ClaimResult{PartyID: spot.PartyID}
	if remaining == 0 {
		if err := s.DB.Model(&models.Party{}).
			Where("id = ?", spot.PartyID).
			Update("ready", true).Error; err != nil {
			return nil, storage(err)
		}
		result.Delisted = true
	}

	view, err := s.Parties.GetPartyView(spot.PartyID)
	if err != nil {
		return nil, err
	}
	result.GameID = view.GameID

	if page, err := s.Parties.GamePage(spot.PartyID); err == nil {
		event := SpotUpdated
		if result.Delisted {
			event = DelistParty
		}
		s.Hub.Emit(GameRoom(view.GameID), event, page)
	}
	s.Hub.Emit(PartyRoom(spot.PartyID), UpdateParty, view)

	return result, nil
}

// LeaveSpot reopens a spot held by the caller. A full party drops back to
// ready=false and reappears in the game listing.
func (s *SpotService) LeaveSpot(userID, spotID uint) error {
	var spot models.Spot
	err := s.DB.First(&spot, spotID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(MsgSpotNotFound)
	}
	if err != nil {
		return storage(err)
	}

	mu := s.Parties.lockParty(spot.PartyID)
	defer mu.Unlock()

	res := s.DB.Model(&models.Spot{}).
		Where("id = ? AND filled = ?", spotID, userID).
		Update("filled", nil)
	if res.Error != nil {
		s.Logger.Errorw("spot leave failed", "spot_id", spotID, "user_id", userID, "error", res.Error)
		return storage(res.Error)
	}
	if res.RowsAffected == 0 {
		return forbidden(MsgNotSpotOccupant)
	}

	if err := s.DB.Model(&models.Party{}).
		Where("id = ? AND ready = ?", spot.PartyID, true).
		Update("ready", false).Error; err != nil {
		return storage(err)
	}

	view, err := s.Parties.GetPartyView(spot.PartyID)
	if err != nil {
		return err
	}
	if page, err := s.Parties.GamePage(spot.PartyID); err == nil {
		s.Hub.Emit(GameRoom(view.GameID), SpotUpdated, page)
	}
	s.Hub.Emit(PartyRoom(spot.PartyID), UpdateParty, view)

	return nil
}

// isUniqueViolation matches the duplicate-key errors postgres and sqlite
// report when the one-spot-per-user index rejects a write.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
