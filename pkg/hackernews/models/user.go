package models

import "time"

// User represents an account that posts and votes on links
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `json:"-"`

	// Relationships
	Links []Link `gorm:"foreignKey:PostedByID" json:"links,omitempty"`
	Votes []Link `gorm:"many2many:link_voters;" json:"votes,omitempty"`
}
