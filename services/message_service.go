package services

import (
	"errors"
	"html"
	"time"

	"github.com/partyup/matchmaking_backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageService is the append-only chat log scoped to a party. Only
// confirmed members (spot occupants) may post; only an author may edit or
// delete their entry.
type MessageService struct {
	DB     *gorm.DB
	Logger *zap.SugaredLogger
	Hub    Broadcaster
}

// MessageView is one chat entry with the author resolved and text escaped.
type MessageView struct {
	ID          uint      `json:"id"`
	PartyID     uint      `json:"party_id"`
	User        UserView  `json:"user"`
	MessageBody string    `json:"message_body"`
	TimeCreated time.Time `json:"time_created"`
	UnixStamp   int64     `json:"unix_stamp"`
	Edited      bool      `json:"edited"`
}

func messageView(m *models.PartyMessage) *MessageView {
	return &MessageView{
		ID:      m.ID,
		PartyID: m.PartyID,
		User: UserView{
			Username:  html.EscapeString(m.Owner.Username),
			AvatarURL: m.Owner.AvatarURL,
		},
		MessageBody: html.EscapeString(m.MessageBody),
		TimeCreated: m.TimeCreated,
		UnixStamp:   m.UnixStamp,
		Edited:      m.Edited,
	}
}

// isMember reports whether the user occupies a spot in the party.
func (s *MessageService) isMember(userID, partyID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Spot{}).
		Where("party_id = ? AND filled = ?", partyID, userID).
		Count(&count).Error
	if err != nil {
		return false, storage(err)
	}
	return count > 0, nil
}

// GetPartyMessages returns a party's chat log ascending by unix stamp. No
// messages is an empty slice, not an error.
func (s *MessageService) GetPartyMessages(partyID uint) ([]*MessageView, error) {
	var messages []models.PartyMessage
	err := s.DB.Where("party_id = ?", partyID).
		Order("unix_stamp ASC").
		Preload("Owner").
		Find(&messages).Error
	if err != nil {
		return nil, storage(err)
	}

	views := make([]*MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messageView(&messages[i]))
	}
	return views, nil
}

// PostMessage appends a chat entry and broadcasts it to the party room.
func (s *MessageService) PostMessage(userID, partyID uint, body string) (*MessageView, error) {
	if body == "" {
		return nil, validation(MsgEmptyMessage)
	}

	member, err := s.isMember(userID, partyID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, forbidden(MsgNotPartyMember)
	}

	now := time.Now()
	message := models.PartyMessage{
		PartyID:     partyID,
		OwnerID:     userID,
		MessageBody: body,
		TimeCreated: now,
		UnixStamp:   now.UnixMilli(),
	}
	if err := s.DB.Create(&message).Error; err != nil {
		s.Logger.Errorw("chat post failed", "party_id", partyID, "user_id", userID, "error", err)
		return nil, storage(err)
	}
	if err := s.DB.Preload("Owner").First(&message, message.ID).Error; err != nil {
		return nil, storage(err)
	}

	view := messageView(&message)
	s.Hub.Emit(PartyRoom(partyID), ChatMessage, view)
	return view, nil
}

// EditMessage replaces a chat entry's body. Author only; marks it edited.
func (s *MessageService) EditMessage(userID, messageID uint, body string) (*MessageView, error) {
	if body == "" {
		return nil, validation(MsgEmptyMessage)
	}

	var message models.PartyMessage
	err := s.DB.First(&message, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound(MsgMessageNotFound)
	}
	if err != nil {
		return nil, storage(err)
	}
	if message.OwnerID != userID {
		return nil, forbidden(MsgNotMessageOwner)
	}

	err = s.DB.Model(&models.PartyMessage{}).Where("id = ?", messageID).
		Updates(map[string]interface{}{"message_body": body, "edited": true}).Error
	if err != nil {
		return nil, storage(err)
	}
	if err := s.DB.Preload("Owner").First(&message, messageID).Error; err != nil {
		return nil, storage(err)
	}

	view := messageView(&message)
	s.Hub.Emit(PartyRoom(message.PartyID), ChatMessage, view)
	return view, nil
}

// DeleteMessage archives then removes a chat entry. Author only.
func (s *MessageService) DeleteMessage(userID, messageID uint) error {
	var message models.PartyMessage
	err := s.DB.First(&message, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(MsgMessageNotFound)
	}
	if err != nil {
		return storage(err)
	}
	if message.OwnerID != userID {
		return forbidden(MsgNotMessageOwner)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		archived := models.ArchivedMessage{
			MessageID:   message.ID,
			PartyID:     message.PartyID,
			OwnerID:     message.OwnerID,
			MessageBody: message.MessageBody,
			TimeCreated: message.TimeCreated,
			UnixStamp:   message.UnixStamp,
			ArchivedAt:  time.Now(),
		}
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PartyMessage{}, messageID).Error
	})
	if err != nil {
		s.Logger.Errorw("chat delete failed", "message_id", messageID, "error", err)
		return storage(err)
	}

	s.Hub.Emit(PartyRoom(message.PartyID), ChatMessageDeleted, map[string]uint{
		"message_id": messageID,
		"party_id":   message.PartyID,
	})
	return nil
}
