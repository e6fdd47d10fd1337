// Package catalog defines the tourism data models and the per-domain
// search parameters shared by the remote services and the search state.
package catalog

import (
	"strings"
	"time"
)

// Data domains. Each one is a single cache invalidation scope.
const (
	DomainHotels      = "hotels"
	DomainRestaurants = "restaurants"
	DomainNews        = "news"
)

// Search defaults.
const (
	DefaultCity   = "casablanca"
	DefaultLimit  = 20
	DefaultSortBy = "rating"
)

// Hotel represents a hotel listing.
type Hotel struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	Address        string   `json:"address"`
	Stars          int      `json:"stars"`
	Rating         float64  `json:"rating"`
	PricePerNight  float64  `json:"pricePerNight"`
	Currency       string   `json:"currency"`
	Amenities      []string `json:"amenities"`
	RoomsAvailable int      `json:"roomsAvailable"`
}

// Restaurant represents a restaurant listing.
type Restaurant struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Cuisine    string  `json:"cuisine"`
	PriceRange string  `json:"priceRange"`
	Rating     float64 `json:"rating"`
	Seats      int     `json:"seats"`
}

// Article is a news feed item.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// HotelParams filters and paginates a hotel search.
type HotelParams struct {
	City      string  `json:"city"`
	CheckIn   string  `json:"checkIn,omitempty"`
	CheckOut  string  `json:"checkOut,omitempty"`
	Guests    int     `json:"guests,omitempty"`
	MinRating float64 `json:"minRating,omitempty"`
	MaxPrice  float64 `json:"maxPrice,omitempty"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sortBy"`
}

// DefaultHotelParams returns the parameters of a fresh hotel search.
func DefaultHotelParams() HotelParams {
	return HotelParams{
		City:   DefaultCity,
		Limit:  DefaultLimit,
		Offset: 0,
		SortBy: DefaultSortBy,
	}
}

// Ready reports whether the search can be sent: a city is required, and
// a date range needs both ends.
func (p HotelParams) Ready() bool {
	if strings.TrimSpace(p.City) == "" {
		return false
	}
	if p.CheckIn != "" || p.CheckOut != "" {
		return p.CheckIn != "" && p.CheckOut != ""
	}
	return true
}

// RestaurantParams filters and paginates a restaurant search.
type RestaurantParams struct {
	City       string `json:"city"`
	Cuisine    string `json:"cuisine,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	SortBy     string `json:"sortBy"`
}

// DefaultRestaurantParams returns the parameters of a fresh restaurant
// search.
func DefaultRestaurantParams() RestaurantParams {
	return RestaurantParams{
		City:   DefaultCity,
		Limit:  DefaultLimit,
		Offset: 0,
		SortBy: DefaultSortBy,
	}
}

// Ready reports whether the search can be sent.
func (p RestaurantParams) Ready() bool {
	return strings.TrimSpace(p.City) != ""
}

// NewsParams paginates the news feed.
type NewsParams struct {
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

// Booking is a hotel booking request.
type Booking struct {
	HotelID   string `json:"hotelId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Guests    int    `json:"guests"`
	GuestName string `json:"guestName"`
	Email     string `json:"email"`
}

// BookingConfirmation is returned for an accepted booking.
type BookingConfirmation struct {
	ID       string  `json:"id"`
	HotelID  string  `json:"hotelId"`
	CheckIn  string  `json:"checkIn"`
	CheckOut string  `json:"checkOut"`
	Guests   int     `json:"guests"`
	Nights   int     `json:"nights"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// Reservation is a restaurant table request.
type Reservation struct {
	RestaurantID string `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PartySize    int    `json:"partySize"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
}

// ReservationConfirmation is returned for an accepted reservation.
type ReservationConfirmation struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurantId"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PartySize    int    `json:"partySize"`
}
