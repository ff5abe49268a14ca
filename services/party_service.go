package services

import (
	"errors"
	"html"
	"sync"
	"time"

	"github.com/partyup/matchmaking_backend/catalog"
	"github.com/partyup/matchmaking_backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PartyDisplayLimit is the page size for game listings.
const PartyDisplayLimit = 8

// PartyService enforces party lifecycle rules and owns the read path. It
// holds no state of its own; the database is the source of truth.
type PartyService struct {
	DB      *gorm.DB
	Logger  *zap.SugaredLogger
	Catalog *catalog.Store
	Hub     Broadcaster

	locks sync.Map
}

// PartyDraft carries the party fields of a creation request.
type PartyDraft struct {
	GameID      uint   `json:"game_id"`
	Title       string `json:"title"`
	Gamemode    uint   `json:"gamemode"`
	Description string `json:"description"`
	RequireApp  bool   `json:"require_app"`
}

// SpotDraft describes one requested spot. Filled lets a creator reserve a
// seat for a known teammate up front.
type SpotDraft struct {
	Roles  []uint `json:"roles"`
	Filled *uint  `json:"filled"`
}

// UserView is the public slice of a profile embedded in views.
type UserView struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// SpotView is a spot with its role ids resolved against the catalog.
type SpotView struct {
	ID     uint                   `json:"id"`
	Filled *UserView              `json:"filled"`
	Roles  []*catalog.DisplayInfo `json:"roles"`
}

// PartyView is the fully resolved nested detail of one party. All free-text
// fields are escaped before this struct leaves the service.
type PartyView struct {
	ID          uint                   `json:"id"`
	GameID      uint                   `json:"game_id"`
	Title       string                 `json:"title"`
	OwnerID     uint                   `json:"owner_id"`
	Owner       *UserView              `json:"owner"`
	Description string                 `json:"description"`
	RequireApp  bool                   `json:"require_app"`
	Gamemode    *catalog.DisplayInfo   `json:"gamemode"`
	Ready       bool                   `json:"ready"`
	SpotsLeft   int                    `json:"spots_left"`
	Spots       []SpotView             `json:"spots"`
	Reqs        []*catalog.DisplayInfo `json:"reqs"`
}

// GamePageView is the payload game-listing subscribers receive when one of a
// game's parties changes.
type GamePageView struct {
	GameID         uint       `json:"game_id"`
	PagesAvailable int        `json:"pages_available"`
	Party          *PartyView `json:"party"`
}

// GameListing is one page of a game's open parties.
type GameListing struct {
	GameID         uint         `json:"game_id"`
	Page           int          `json:"page"`
	PagesAvailable int          `json:"pages_available"`
	Parties        []*PartyView `json:"parties"`
}

// lockParty serializes mutate-then-broadcast sequences for one party within
// this process so room subscribers see events in commit order. Cross-process
// correctness rests on the store constraints, not on this lock. Entries are
// dropped when their party is deleted.
func (s *PartyService) lockParty(partyID uint) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(partyID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// CreateParty validates a creation request, persists the party with its
// spots and requirements as one transaction, and announces it to the game
// room. The owner's spot is created filled; requested spots start open unless
// the draft pre-fills them.
func (s *PartyService) CreateParty(ownerID uint, draft PartyDraft, spots []SpotDraft, reqs []uint) (uint, error) {
	if draft.GameID == 0 || draft.Title == "" {
		return 0, validation(MsgMissingPartyFields)
	}
	if len(spots) < 1 {
		return 0, validation(MsgInsufficientSpots)
	}
	if len(reqs) > 2 {
		return 0, validation(MsgTooManyRequirements)
	}
	seen := make(map[uint]bool, len(reqs))
	for _, r := range reqs {
		if seen[r] {
			return 0, validation(MsgDuplicateRequirement)
		}
		seen[r] = true
	}

	party := models.Party{
		GameID:      draft.GameID,
		Title:       draft.Title,
		OwnerID:     ownerID,
		Description: draft.Description,
		RequireApp:  draft.RequireApp,
		Gamemode:    draft.Gamemode,
		Ready:       false,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&party).Error; err != nil {
			return err
		}

		owner := ownerID
		ownerSpot := models.Spot{PartyID: party.ID, Filled: &owner}
		if err := tx.Create(&ownerSpot).Error; err != nil {
			return err
		}

		open := 0
		for _, sd := range spots {
			spot := models.Spot{PartyID: party.ID, Filled: sd.Filled}
			if err := tx.Create(&spot).Error; err != nil {
				return err
			}
			if sd.Filled == nil {
				open++
			}
			for _, roleID := range sd.Roles {
				if err := tx.Create(&models.SpotRole{SpotID: spot.ID, RoleID: roleID}).Error; err != nil {
					return err
				}
			}
		}

		for _, reqID := range reqs {
			if err := tx.Create(&models.Requirement{PartyID: party.ID, RequirementID: reqID}).Error; err != nil {
				return err
			}
		}

		if open == 0 {
			if err := tx.Model(&models.Party{}).Where("id = ?", party.ID).Update("ready", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The occupant index rejects an owner or pre-filled user who is
		// already seated somewhere.
		if isUniqueViolation(err) {
			return 0, conflict(MsgAlreadyInParty)
		}
		s.Logger.Errorw("party creation failed", "owner_id", ownerID, "error", err)
		return 0, storage(err)
	}

	if page, err := s.GamePage(party.ID); err == nil {
		s.Hub.Emit(GameRoom(party.GameID), PostedParty, page)
	}

	return party.ID, nil
}

// GetPartyView joins party, spots, roles and requirements into one nested
// view, resolves occupant profiles, enriches ids through the catalog, and
// escapes free text. Unknown catalog keys resolve to null.
func (s *PartyService) GetPartyView(partyID uint) (*PartyView, error) {
	var party models.Party
	err := s.DB.Preload("Spots.Roles").Preload("Requirements").First(&party, partyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgPartyNotFound)
	}
	if err != nil {
		return nil, storage(err)
	}
	return s.buildView(&party)
}

func (s *PartyService) buildView(party *models.Party) (*PartyView, error) {
	userIDs := []uint{party.OwnerID}
	for _, spot := range party.Spots {
		if spot.Filled != nil {
			userIDs = append(userIDs, *spot.Filled)
		}
	}

	var users []models.User
	if err := s.DB.Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, storage(err)
	}
	profiles := make(map[uint]*UserView, len(users))
	for _, u := range users {
		profiles[u.ID] = &UserView{
			Username:  html.EscapeString(u.Username),
			AvatarURL: u.AvatarURL,
		}
	}

	view := &PartyView{
		ID:          party.ID,
		GameID:      party.GameID,
		Title:       html.EscapeString(party.Title),
		OwnerID:     party.OwnerID,
		Owner:       profiles[party.OwnerID],
		Description: html.EscapeString(party.Description),
		RequireApp:  party.RequireApp,
		Gamemode:    s.Catalog.Gamemode(party.GameID, party.Gamemode),
		Ready:       party.Ready,
		Spots:       make([]SpotView, 0, len(party.Spots)),
		Reqs:        make([]*catalog.DisplayInfo, 0, len(party.Requirements)),
	}

	for _, spot := range party.Spots {
		sv := SpotView{
			ID:    spot.ID,
			Roles: make([]*catalog.DisplayInfo, 0, len(spot.Roles)),
		}
		if spot.Filled != nil {
			sv.Filled = profiles[*spot.Filled]
		} else {
			view.SpotsLeft++
		}
		for _, role := range spot.Roles {
			sv.Roles = append(sv.Roles, s.Catalog.Role(party.GameID, role.RoleID))
		}
		view.Spots = append(view.Spots, sv)
	}

	for _, req := range party.Requirements {
		view.Reqs = append(view.Reqs, s.Catalog.Requirement(party.GameID, req.RequirementID))
	}

	return view, nil
}

// GamePage shapes one party for game-listing subscribers, including how many
// listing pages its game currently has.
func (s *PartyService) GamePage(partyID uint) (*GamePageView, error) {
	view, err := s.GetPartyView(partyID)
	if err != nil {
		return nil, err
	}
	pages, err := s.countPages(view.GameID)
	if err != nil {
		return nil, err
	}
	return &GamePageView{GameID: view.GameID, PagesAvailable: pages, Party: view}, nil
}

func (s *PartyService) countPages(gameID uint) (int, error) {
	var count int64
	if err := s.DB.Model(&models.Party{}).Where("game_id = ? AND ready = ?", gameID, false).Count(&count).Error; err != nil {
		return 0, storage(err)
	}
	pages := int((count + PartyDisplayLimit - 1) / PartyDisplayLimit)
	return pages, nil
}

// ListGameParties returns one page of a game's open parties, newest first.
// Page numbering starts at 1; an empty page is not an error.
func (s *PartyService) ListGameParties(gameID uint, page int) (*GameListing, error) {
	if page < 1 {
		page = 1
	}

	pages, err := s.countPages(gameID)
	if err != nil {
		return nil, err
	}

	var parties []models.Party
	err = s.DB.Preload("Spots.Roles").Preload("Requirements").
		Where("game_id = ? AND ready = ?", gameID, false).
		Order("created_at DESC").
		Limit(PartyDisplayLimit).
		Offset((page - 1) * PartyDisplayLimit).
		Find(&parties).Error
	if err != nil {
		return nil, storage(err)
	}

	listing := &GameListing{
		GameID:         gameID,
		Page:           page,
		PagesAvailable: pages,
		Parties:        make([]*PartyView, 0, len(parties)),
	}
	for i := range parties {
		view, err := s.buildView(&parties[i])
		if err != nil {
			return nil, err
		}
		listing.Parties = append(listing.Parties, view)
	}
	return listing, nil
}

// PartyUpdate carries the owner-editable fields. Nil means "leave as is", so
// an empty string can clear the description.
type PartyUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Gamemode    *uint   `json:"gamemode"`
	RequireApp  *bool   `json:"require_app"`
}

// UpdateParty lets the owner edit party metadata after creation.
func (s *PartyService) UpdateParty(userID, partyID uint, update PartyUpdate) (*PartyView, error) {
	mu := s.lockParty(partyID)
	defer mu.Unlock()

	var party models.Party
	err := s.DB.First(&party, partyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgPartyNotFound)
	}
	if err != nil {
		return nil, storage(err)
	}
	if party.OwnerID != userID {
		return nil, forbidden(MsgNotPartyOwner)
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		if *update.Title == "" {
			return nil, validation(MsgMissingPartyFields)
		}
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Gamemode != nil {
		fields["gamemode"] = *update.Gamemode
	}
	if update.RequireApp != nil {
		fields["require_app"] = *update.RequireApp
	}
	if len(fields) > 0 {
		if err := s.DB.Model(&models.Party{}).Where("id = ?", partyID).Updates(fields).Error; err != nil {
			return nil, storage(err)
		}
	}

	view, err := s.GetPartyView(partyID)
	if err != nil {
		return nil, err
	}
	s.Hub.Emit(PartyRoom(partyID), UpdateParty, view)
	if page, err := s.GamePage(partyID); err == nil {
		s.Hub.Emit(GameRoom(party.GameID), SpotUpdated, page)
	}
	return view, nil
}

// DeleteParty removes a party with everything hanging off it. Chat logs are
// archived first. Owner only.
func (s *PartyService) DeleteParty(userID, partyID uint) error {
	mu := s.lockParty(partyID)
	defer mu.Unlock()

	var party models.Party
	err := s.DB.First(&party, partyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(MsgPartyNotFound)
	}
	if err != nil {
		return storage(err)
	}
	if party.OwnerID != userID {
		return forbidden(MsgNotPartyOwner)
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return purgeParty(tx, &party)
	}); err != nil {
		s.Logger.Errorw("party deletion failed", "party_id", partyID, "error", err)
		return storage(err)
	}

	s.locks.Delete(partyID)

	gone := map[string]uint{"party_id": partyID, "game_id": party.GameID}
	s.Hub.Emit(GameRoom(party.GameID), DelistParty, gone)
	s.Hub.Emit(PartyRoom(partyID), DelistParty, gone)
	return nil
}

// PurgeAbandoned deletes parties untouched for olderThan where nobody besides
// the owner holds a spot. Used by the maintenance job. Returns how many
// parties were removed.
func (s *PartyService) PurgeAbandoned(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	var stale []models.Party
	if err := s.DB.Where("updated_at <= ?", cutoff).Find(&stale).Error; err != nil {
		return 0, storage(err)
	}

	purged := 0
	for i := range stale {
		party := &stale[i]

		var members int64
		err := s.DB.Model(&models.Spot{}).
			Where("party_id = ? AND filled IS NOT NULL AND filled != ?", party.ID, party.OwnerID).
			Count(&members).Error
		if err != nil || members > 0 {
			continue
		}

		if err := s.DB.Transaction(func(tx *gorm.DB) error {
			return purgeParty(tx, party)
		}); err != nil {
			s.Logger.Errorw("stale party purge failed", "party_id", party.ID, "error", err)
			continue
		}
		s.locks.Delete(party.ID)
		s.Hub.Emit(GameRoom(party.GameID), DelistParty, map[string]uint{
			"party_id": party.ID,
			"game_id":  party.GameID,
		})
		purged++
	}
	return purged, nil
}

// purgeParty cascades a party's rows inside tx: archived chat logs first,
// then messages, spot roles, spots, requirements, and the party itself.
func purgeParty(tx *gorm.DB, party *models.Party) error {
	var messages []models.PartyMessage
	if err := tx.Where("party_id = ?", party.ID).Find(&messages).Error; err != nil {
		return err
	}
	now := time.Now()
	for _, m := range messages {
		archived := models.ArchivedMessage{
			MessageID:   m.ID,
			PartyID:     m.PartyID,
			OwnerID:     m.OwnerID,
			MessageBody: m.MessageBody,
			TimeCreated: m.TimeCreated,
			UnixStamp:   m.UnixStamp,
			ArchivedAt:  now,
		}
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("party_id = ?", party.ID).Delete(&models.PartyMessage{}).Error; err != nil {
		return err
	}
	if err := tx.Where("spot_id IN (?)",
		tx.Model(&models.Spot{}).Select("id").Where("party_id = ?", party.ID),
	).Delete(&models.SpotRole{}).Error; err != nil {
		return err
	}
	if err := tx.Where("party_id = ?", party.ID).Delete(&models.Spot{}).Error; err != nil {
		return err
	}
	if err := tx.Where("party_id = ?", party.ID).Delete(&models.Requirement{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Party{}, party.ID).Error
}
