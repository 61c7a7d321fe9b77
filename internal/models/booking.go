package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// DateLayout renders check-in and check-out dates.
const DateLayout = "2006-01-02"

// Booking reserves a listing for a guest between two dates.
type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Reference       uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"reference"`
	ListingID       uint          `gorm:"not null;index" json:"listing_id" validate:"required"`
	Listing         *Listing      `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"listing,omitempty" validate:"-"`
	GuestID         uint          `gorm:"not null;index" json:"guest_id" validate:"required"`
	Guest           *User         `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"guest,omitempty" validate:"-"`
	CheckIn         time.Time     `gorm:"type:date;not null" json:"check_in" validate:"required"`
	CheckOut        time.Time     `gorm:"type:date;not null" json:"check_out" validate:"required,gtfield=CheckIn"`
	TotalPrice      float64       `gorm:"type:numeric(10,2);not null" json:"total_price" validate:"gte=0"`
	GuestsCount     int           `gorm:"not null;default:1" json:"guests_count" validate:"min=1"`
	Status          BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status" validate:"oneof=pending confirmed completed cancelled"`
	SpecialRequests string        `gorm:"type:text" json:"special_requests"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns the booking reference.
func (b *Booking) BeforeCreate(_ *gorm.DB) error {
	if b.Reference == uuid.Nil {
		b.Reference = uuid.New()
	}
	return nil
}

// Nights is the number of whole days between check-in and check-out.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn) / (24 * time.Hour))
}

func (b Booking) String() string {
	title := fmt.Sprintf("listing %d", b.ListingID)
	if b.Listing != nil {
		title = b.Listing.Title
	}
	return fmt.Sprintf("Booking %s - %s (%s to %s)",
		b.Reference, title, b.CheckIn.Format(DateLayout), b.CheckOut.Format(DateLayout))
}
