package seed

import "alxtravel/internal/models"

const (
	// HostCount is the number of host accounts, named host1..hostN.
	HostCount = 5
	// GuestUsername is the single guest account created after the hosts.
	GuestUsername = "guest1"
	// PlaceholderPassword is shared by every seeded account.
	PlaceholderPassword = "password123"
	// EmailDomain is appended to usernames to build seeded addresses.
	EmailDomain = "example.com"

	BookingCount = 10

	MinReviewsPerListing = 1
	MaxReviewsPerListing = 3

	MinCheckInOffsetDays = 1
	MaxCheckInOffsetDays = 30
	MinStayNights        = 1
	MaxStayNights        = 7

	// MaxBookingGuests caps guests per booking below the listing capacity.
	MaxBookingGuests = 3

	MinRating = 3
	MaxRating = 5

	SpecialRequest = "Sample special request"
	// ReviewCommentFormat takes the listing title.
	ReviewCommentFormat = "Great stay at %s! Would definitely recommend."
)

// BookingStatuses are the states a seeded booking is drawn from.
var BookingStatuses = []models.BookingStatus{
	models.BookingStatusPending,
	models.BookingStatusConfirmed,
	models.BookingStatusCompleted,
}

// ListingTemplate is the fixed content of one catalog listing.
type ListingTemplate struct {
	Title         string
	Description   string
	Address       string
	City          string
	Country       string
	PricePerNight float64
	MaxGuests     int
	Bedrooms      int
	Bathrooms     int
	PropertyType  models.PropertyType
	Amenities     string
}

// Listing builds the model for the template, owned by hostID.
func (t ListingTemplate) Listing(hostID uint) models.Listing {
	return models.Listing{
		HostID:        hostID,
		Title:         t.Title,
		Description:   t.Description,
		Address:       t.Address,
		City:          t.City,
		Country:       t.Country,
		PricePerNight: t.PricePerNight,
		MaxGuests:     t.MaxGuests,
		Bedrooms:      t.Bedrooms,
		Bathrooms:     t.Bathrooms,
		PropertyType:  t.PropertyType,
		Amenities:     t.Amenities,
		IsAvailable:   true,
	}
}

// Catalog lists the seeded properties in creation order.
var Catalog = []ListingTemplate{
	{
		Title:         "Cozy Apartment in Downtown",
		Description:   "A beautiful cozy apartment located in the heart of downtown. Perfect for couples or solo travelers.",
		Address:       "123 Main Street",
		City:          "New York",
		Country:       "USA",
		PricePerNight: 120.00,
		MaxGuests:     2,
		Bedrooms:      1,
		Bathrooms:     1,
		PropertyType:  models.PropertyTypeApartment,
		Amenities:     "WiFi,Kitchen,Air Conditioning,TV",
	},
	{
		Title:         "Luxury Villa with Ocean View",
		Description:   "Stunning luxury villa with breathtaking ocean views. Private pool and modern amenities.",
		Address:       "456 Ocean Drive",
		City:          "Miami",
		Country:       "USA",
		PricePerNight: 350.00,
		MaxGuests:     6,
		Bedrooms:      3,
		Bathrooms:     2,
		PropertyType:  models.PropertyTypeVilla,
		Amenities:     "Pool,WiFi,Kitchen,Air Conditioning,TV,Garden",
	},
	{
		Title:         "Mountain Cabin Retreat",
		Description:   "Escape to this peaceful mountain cabin surrounded by nature. Perfect for hiking and relaxation.",
		Address:       "789 Mountain Road",
		City:          "Aspen",
		Country:       "USA",
		PricePerNight: 180.00,
		MaxGuests:     4,
		Bedrooms:      2,
		Bathrooms:     1,
		PropertyType:  models.PropertyTypeCabin,
		Amenities:     "Fireplace,WiFi,Kitchen,Garden",
	},
	{
		Title:         "Modern City Condo",
		Description:   "Sleek modern condo with amazing city views. Close to all attractions and public transport.",
		Address:       "321 Urban Avenue",
		City:          "San Francisco",
		Country:       "USA",
		PricePerNight: 200.00,
		MaxGuests:     4,
		Bedrooms:      2,
		Bathrooms:     2,
		PropertyType:  models.PropertyTypeCondo,
		Amenities:     "WiFi,Kitchen,Air Conditioning,TV,Gym",
	},
	{
		Title:         "Family-Friendly House",
		Description:   "Spacious house perfect for families. Large backyard and close to parks and schools.",
		Address:       "654 Family Lane",
		City:          "Chicago",
		Country:       "USA",
		PricePerNight: 220.00,
		MaxGuests:     8,
		Bedrooms:      4,
		Bathrooms:     3,
		PropertyType:  models.PropertyTypeHouse,
		Amenities:     "WiFi,Kitchen,Air Conditioning,TV,Garden,Playground",
	},
}
