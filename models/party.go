package models

import (
	"time"
)

// Party is a hosted group-formation session for one game. Ready is derived:
// it flips to true only when every non-owner spot is filled.
type Party struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	GameID       uint          `gorm:"not null;index" json:"game_id"`
	Title        string        `gorm:"size:255;not null" json:"title"`
	OwnerID      uint          `gorm:"not null" json:"owner_id"`
	Owner        User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Description  string        `gorm:"type:text" json:"description"`
	RequireApp   bool          `json:"require_app"`
	Gamemode     uint          `json:"gamemode"`
	Ready        bool          `gorm:"default:false" json:"ready"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Spots        []Spot        `json:"spots,omitempty"`
	Requirements []Requirement `json:"requirements,omitempty"`
}

// Spot is a claimable slot within a party. Filled is null while the spot is
// open. The partial unique index is the system-wide guarantee that a user
// holds at most one spot, regardless of how many server processes run.
type Spot struct {
	ID      uint       `gorm:"primaryKey" json:"id"`
	PartyID uint       `gorm:"not null;index" json:"party_id"`
	Filled  *uint      `gorm:"index:idx_spot_occupant,unique,where:filled IS NOT NULL" json:"filled"`
	Roles   []SpotRole `json:"roles,omitempty"`
}

// SpotRole restricts a spot to an acceptable role id. The set is fixed at
// creation.
type SpotRole struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SpotID uint `gorm:"not null;index" json:"spot_id"`
	RoleID uint `gorm:"not null" json:"role_id"`
}

// Requirement tags a party with an entry prerequisite. At most two per party,
// no duplicates.
type Requirement struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	PartyID       uint `gorm:"not null;uniqueIndex:idx_party_requirement" json:"party_id"`
	RequirementID uint `gorm:"not null;uniqueIndex:idx_party_requirement" json:"requirement_id"`
}
