package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyType enumerates the kinds of property a listing can offer.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeVilla     PropertyType = "villa"
	PropertyTypeCabin     PropertyType = "cabin"
	PropertyTypeCondo     PropertyType = "condo"
	PropertyTypeHouse     PropertyType = "house"
)

// PropertyTypes lists every accepted property type.
var PropertyTypes = []PropertyType{
	PropertyTypeApartment,
	PropertyTypeVilla,
	PropertyTypeCabin,
	PropertyTypeCondo,
	PropertyTypeHouse,
}

// Valid reports whether p is one of the enumerated property types.
func (p PropertyType) Valid() bool {
	for _, t := range PropertyTypes {
		if p == t {
			return true
		}
	}
	return false
}

// Listing is a rentable property owned by a single host.
type Listing struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	PublicID      uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"public_id"`
	HostID        uint         `gorm:"not null;index" json:"host_id" validate:"required"`
	Host          *User        `gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE" json:"host,omitempty" validate:"-"`
	Title         string       `gorm:"size:200;not null" json:"title" validate:"required,max=200"`
	Description   string       `gorm:"type:text" json:"description"`
	Address       string       `gorm:"size:255;not null" json:"address" validate:"required"`
	City          string       `gorm:"size:100;not null;index" json:"city" validate:"required"`
	Country       string       `gorm:"size:100;not null" json:"country" validate:"required"`
	PricePerNight float64      `gorm:"type:numeric(10,2);not null" json:"price_per_night" validate:"gt=0"`
	MaxGuests     int          `gorm:"not null;check:max_guests >= 1" json:"max_guests" validate:"min=1"`
	Bedrooms      int          `gorm:"not null" json:"bedrooms" validate:"min=0"`
	Bathrooms     int          `gorm:"not null" json:"bathrooms" validate:"min=0"`
	PropertyType  PropertyType `gorm:"type:varchar(20);not null" json:"property_type" validate:"property_type"`
	Amenities     string       `gorm:"type:text" json:"amenities"`
	IsAvailable   bool         `gorm:"not null;default:true" json:"is_available"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate assigns the public identifier.
func (l *Listing) BeforeCreate(_ *gorm.DB) error {
	if l.PublicID == uuid.Nil {
		l.PublicID = uuid.New()
	}
	return nil
}

// AmenityList splits the comma-delimited amenities column.
func (l Listing) AmenityList() []string {
	if strings.TrimSpace(l.Amenities) == "" {
		return nil
	}
	parts := strings.Split(l.Amenities, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (l Listing) String() string {
	return fmt.Sprintf("%s - %s, %s", l.Title, l.City, l.Country)
}
