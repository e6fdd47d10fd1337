package searchstate

import (
	"github.com/alex-user-go/tourguide/internal/catalog"
)

// HotelUpdate is a partial hotel search update. Nil fields are left
// unchanged.
type HotelUpdate struct {
	City      *string  `json:"city,omitempty"`
	CheckIn   *string  `json:"checkIn,omitempty"`
	CheckOut  *string  `json:"checkOut,omitempty"`
	Guests    *int     `json:"guests,omitempty"`
	MinRating *float64 `json:"minRating,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	Limit     *int     `json:"limit,omitempty"`
	Offset    *int     `json:"offset,omitempty"`
	SortBy    *string  `json:"sortBy,omitempty"`
}

// Apply merges u into p. Supplying any field other than Offset resets
// Offset to 0 unless Offset is supplied too.
func (u HotelUpdate) Apply(p catalog.HotelParams) catalog.HotelParams {
	filtered := false
	filtered = assign(&p.City, u.City) || filtered
	filtered = assign(&p.CheckIn, u.CheckIn) || filtered
	filtered = assign(&p.CheckOut, u.CheckOut) || filtered
	filtered = assign(&p.Guests, u.Guests) || filtered
	filtered = assign(&p.MinRating, u.MinRating) || filtered
	filtered = assign(&p.MaxPrice, u.MaxPrice) || filtered
	filtered = assign(&p.Limit, u.Limit) || filtered
	filtered = assign(&p.SortBy, u.SortBy) || filtered

	p.Offset = paginate(u.Offset, filtered, p.Offset)
	return p
}

// RestaurantUpdate is a partial restaurant search update.
type RestaurantUpdate struct {
	City       *string `json:"city,omitempty"`
	Cuisine    *string `json:"cuisine,omitempty"`
	PriceRange *string `json:"priceRange,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
	Offset     *int    `json:"offset,omitempty"`
	SortBy     *string `json:"sortBy,omitempty"`
}

// Apply merges u into p with the same offset rule as HotelUpdate.
func (u RestaurantUpdate) Apply(p catalog.RestaurantParams) catalog.RestaurantParams {
	filtered := false
	filtered = assign(&p.City, u.City) || filtered
	filtered = assign(&p.Cuisine, u.Cuisine) || filtered
	filtered = assign(&p.PriceRange, u.PriceRange) || filtered
	filtered = assign(&p.Limit, u.Limit) || filtered
	filtered = assign(&p.SortBy, u.SortBy) || filtered

	p.Offset = paginate(u.Offset, filtered, p.Offset)
	return p
}

// Hotels controls a hotel search.
type Hotels = Controller[catalog.HotelParams, HotelUpdate]

// Restaurants controls a restaurant search.
type Restaurants = Controller[catalog.RestaurantParams, RestaurantUpdate]

// NewHotels returns a hotel search at its defaults.
func NewHotels() *Hotels {
	return New[catalog.HotelParams, HotelUpdate](catalog.DefaultHotelParams())
}

// NewRestaurants returns a restaurant search at its defaults.
func NewRestaurants() *Restaurants {
	return New[catalog.RestaurantParams, RestaurantUpdate](catalog.DefaultRestaurantParams())
}
