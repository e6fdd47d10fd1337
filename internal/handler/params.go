package handler

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/alex-user-go/tourguide/internal/catalog"
	"github.com/alex-user-go/tourguide/internal/remote"
)

// ParseHotelParams reads a hotel search from query parameters. Absent
// parameters keep their defaults; every malformed one is reported.
func ParseHotelParams(q url.Values) (catalog.HotelParams, []string) {
	p := catalog.DefaultHotelParams()
	var errs []string

	stringParam(q, "city", &p.City)
	stringParam(q, "checkIn", &p.CheckIn)
	stringParam(q, "checkOut", &p.CheckOut)
	stringParam(q, "sortBy", &p.SortBy)
	errs = intParam(q, "guests", 0, &p.Guests, errs)
	errs = floatParam(q, "minRating", &p.MinRating, errs)
	errs = floatParam(q, "maxPrice", &p.MaxPrice, errs)
	errs = pageParams(q, &p.Limit, &p.Offset, errs)

	return p, errs
}

// ParseRestaurantParams reads a restaurant search from query parameters.
func ParseRestaurantParams(q url.Values) (catalog.RestaurantParams, []string) {
	p := catalog.DefaultRestaurantParams()
	var errs []string

	stringParam(q, "city", &p.City)
	stringParam(q, "cuisine", &p.Cuisine)
	stringParam(q, "priceRange", &p.PriceRange)
	stringParam(q, "sortBy", &p.SortBy)
	errs = pageParams(q, &p.Limit, &p.Offset, errs)

	return p, errs
}

// ParseNewsParams reads a news listing from query parameters.
func ParseNewsParams(q url.Values) (catalog.NewsParams, []string) {
	p := catalog.NewsParams{Limit: catalog.DefaultLimit}
	var errs []string

	stringParam(q, "category", &p.Category)
	errs = pageParams(q, &p.Limit, &p.Offset, errs)

	return p, errs
}

func stringParam(q url.Values, name string, dst *string) {
	if q.Has(name) {
		*dst = strings.TrimSpace(q.Get(name))
	}
}

func intParam(q url.Values, name string, minimum int, dst *int, errs []string) []string {
	if !q.Has(name) {
		return errs
	}
	v, err := strconv.Atoi(strings.TrimSpace(q.Get(name)))
	if err != nil || v < minimum {
		return append(errs, name+" must be an integer of at least "+strconv.Itoa(minimum))
	}
	*dst = v
	return errs
}

func floatParam(q url.Values, name string, dst *float64, errs []string) []string {
	if !q.Has(name) {
		return errs
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(q.Get(name)), 64)
	if err != nil || v < 0 {
		return append(errs, name+" must be a non-negative number")
	}
	*dst = v
	return errs
}

func pageParams(q url.Values, limit, offset *int, errs []string) []string {
	errs = intParam(q, "limit", 1, limit, errs)
	if *limit > remote.MaxLimit {
		errs = append(errs, "limit must be at most "+strconv.Itoa(remote.MaxLimit))
	}
	return intParam(q, "offset", 0, offset, errs)
}
