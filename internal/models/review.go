package models

import (
	"fmt"
	"time"
)

// Review is a guest's rating of a listing.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"not null;index" json:"listing_id" validate:"required"`
	Listing   *Listing  `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"listing,omitempty" validate:"-"`
	GuestID   uint      `gorm:"not null;index" json:"guest_id" validate:"required"`
	Guest     *User     `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"guest,omitempty" validate:"-"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating" validate:"min=1,max=5"`
	Comment   string    `gorm:"type:text;not null" json:"comment" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Review) TableName() string {
	return "reviews"
}

func (r Review) String() string {
	guest := fmt.Sprintf("user %d", r.GuestID)
	if r.Guest != nil {
		guest = r.Guest.Username
	}
	title := fmt.Sprintf("listing %d", r.ListingID)
	if r.Listing != nil {
		title = r.Listing.Title
	}
	return fmt.Sprintf("Review by %s for %s - %d stars", guest, title, r.Rating)
}
