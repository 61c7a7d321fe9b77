package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPropertyType_Valid(t *testing.T) {
	for _, p := range PropertyTypes {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, PropertyType("castle").Valid())
	assert.False(t, PropertyType("").Valid())
}

func TestListing_AmenityList(t *testing.T) {
	tests := []struct {
		name      string
		amenities string
		want      []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "WiFi", []string{"WiFi"}},
		{"spaced", "WiFi, Kitchen ,,TV", []string{"WiFi", "Kitchen", "TV"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Listing{Amenities: tt.amenities}
			assert.Equal(t, tt.want, l.AmenityList())
		})
	}
}

func TestListing_BeforeCreateKeepsExistingID(t *testing.T) {
	id := uuid.New()
	l := &Listing{PublicID: id}
	assert.NoError(t, l.BeforeCreate(nil))
	assert.Equal(t, id, l.PublicID)

	fresh := &Listing{}
	assert.NoError(t, fresh.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, fresh.PublicID)
}

func TestBooking_NightsAndString(t *testing.T) {
	checkIn := time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)
	b := Booking{
		Reference: uuid.MustParse("6f1c1f0e-7f5d-4a55-9a37-0d2b9f0f4c11"),
		ListingID: 3,
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDate(0, 0, 4),
	}
	assert.Equal(t, 4, b.Nights())
	assert.Equal(t, "Booking 6f1c1f0e-7f5d-4a55-9a37-0d2b9f0f4c11 - listing 3 (2026-03-28 to 2026-04-01)", b.String())

	b.Listing = &Listing{Title: "Mountain Cabin Retreat"}
	assert.Contains(t, b.String(), "Mountain Cabin Retreat")
}

func TestReview_String(t *testing.T) {
	r := Review{ListingID: 2, GuestID: 9, Rating: 4}
	assert.Equal(t, "Review by user 9 for listing 2 - 4 stars", r.String())

	r.Guest = &User{Username: "guest1"}
	r.Listing = &Listing{Title: "Modern City Condo"}
	assert.Equal(t, "Review by guest1 for Modern City Condo - 4 stars", r.String())
}

func TestValidate(t *testing.T) {
	checkIn := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	listing := Listing{
		HostID: 1, Title: "Modern City Condo", Address: "321 Urban Avenue",
		City: "San Francisco", Country: "USA", PricePerNight: 200, MaxGuests: 4,
		Bedrooms: 2, Bathrooms: 2, PropertyType: PropertyTypeCondo,
	}
	booking := Booking{
		ListingID: 1, GuestID: 2, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2),
		TotalPrice: 400, GuestsCount: 2, Status: BookingStatusConfirmed,
		// Associations are skipped even when incomplete.
		Listing: &Listing{Title: "partial"},
	}

	tests := []struct {
		name    string
		model   any
		wantErr bool
	}{
		{"valid user", &User{Username: "host1", Email: "host1@example.com", Password: "x"}, false},
		{"user bad email", &User{Username: "host1", Email: "nope", Password: "x"}, true},
		{"user without password", &User{Username: "host1"}, true},
		{"valid listing", &listing, false},
		{"listing unknown type", func() *Listing { l := listing; l.PropertyType = "castle"; return &l }(), true},
		{"listing zero capacity", func() *Listing { l := listing; l.MaxGuests = 0; return &l }(), true},
		{"valid booking", &booking, false},
		{"booking checkout before checkin", func() *Booking { b := booking; b.CheckOut = checkIn; return &b }(), true},
		{"booking unknown status", func() *Booking { b := booking; b.Status = "lost"; return &b }(), true},
		{"booking no guests", func() *Booking { b := booking; b.GuestsCount = 0; return &b }(), true},
		{"valid review", &Review{ListingID: 1, GuestID: 2, Rating: 3, Comment: "ok"}, false},
		{"review rating too high", &Review{ListingID: 1, GuestID: 2, Rating: 6, Comment: "ok"}, true},
		{"review without comment", &Review{ListingID: 1, GuestID: 2, Rating: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.model)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Host1 User", User{FirstName: "Host1", LastName: "User"}.FullName())
	assert.Equal(t, "Guest", User{FirstName: "Guest"}.FullName())
}
