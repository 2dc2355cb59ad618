package models

import "time"

// VotersTable is the join table behind Link.Voters and User.Votes
const VotersTable = "link_voters"

// Link represents a URL posted to the feed
type Link struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Description string    `gorm:"not null" json:"description"`
	URL         string    `gorm:"not null" json:"url"`
	PostedByID  *uint     `gorm:"index" json:"-"` // set once at creation

	// Relationships
	PostedBy *User  `gorm:"foreignKey:PostedByID;constraint:OnDelete:SET NULL" json:"postedBy,omitempty"`
	Voters   []User `gorm:"many2many:link_voters;" json:"voters,omitempty"`
}
