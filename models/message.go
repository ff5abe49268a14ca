package models

import (
	"time"
)

// PartyMessage is an append-only chat entry scoped to a party. Ordering is by
// UnixStamp ascending.
type PartyMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PartyID     uint      `gorm:"not null;index" json:"party_id"`
	OwnerID     uint      `gorm:"not null" json:"owner_id"`
	Owner       User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	MessageBody string    `gorm:"type:text;not null" json:"message_body"`
	TimeCreated time.Time `json:"time_created"`
	UnixStamp   int64     `gorm:"index" json:"unix_stamp"`
	Edited      bool      `gorm:"default:false" json:"edited"`
}

// ArchivedMessage keeps a copy of deleted chat entries after a message delete
// or a party purge.
type ArchivedMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MessageID   uint      `json:"message_id"`
	PartyID     uint      `gorm:"index" json:"party_id"`
	OwnerID     uint      `json:"owner_id"`
	MessageBody string    `gorm:"type:text" json:"message_body"`
	TimeCreated time.Time `json:"time_created"`
	UnixStamp   int64     `json:"unix_stamp"`
	ArchivedAt  time.Time `json:"archived_at"`
}
