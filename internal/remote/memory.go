package remote

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alex-user-go/tourguide/internal/catalog"
	"github.com/alex-user-go/tourguide/internal/validator"
)

// Messages returned by the in-memory catalog for rejected calls.
const (
	MsgHotelNotFound      = "hotel not found"
	MsgRestaurantNotFound = "restaurant not found"
	MsgArticleNotFound    = "article not found"
	MsgNoRooms            = "no rooms available"
	MsgNoSeats            = "not enough seats available"
	MsgUnsupportedSort    = "unsupported sort order"
	MsgInvalidPage        = "limit and offset must not be negative"
)

// MaxLimit caps the page size of every listing.
const MaxLimit = 100

// Catalog is an in-memory catalog with availability and booking
// capacity. It is safe for concurrent use.
type Catalog struct {
	mu           sync.Mutex
	hotels       []catalog.Hotel
	restaurants  []catalog.Restaurant
	articles     []catalog.Article
	seatsTaken   map[string]int
	bookings     map[string]catalog.BookingConfirmation
	reservations map[string]catalog.ReservationConfirmation
	newID        func() string
}

var _ Services = (*Catalog)(nil)

// NewCatalog returns a catalog seeded with Moroccan cities.
func NewCatalog() *Catalog {
	return NewCatalogWith(seedHotels(), seedRestaurants(), seedArticles())
}

// NewCatalogWith returns a catalog holding the given listings.
func NewCatalogWith(hotels []catalog.Hotel, restaurants []catalog.Restaurant, articles []catalog.Article) *Catalog {
	return &Catalog{
		hotels:       slices.Clone(hotels),
		restaurants:  slices.Clone(restaurants),
		articles:     slices.Clone(articles),
		seatsTaken:   make(map[string]int),
		bookings:     make(map[string]catalog.BookingConfirmation),
		reservations: make(map[string]catalog.ReservationConfirmation),
		newID:        uuid.NewString,
	}
}

// SearchHotels filters, sorts and paginates hotels.
func (c *Catalog) SearchHotels(ctx context.Context, params catalog.HotelParams) (Response[catalog.Page[catalog.Hotel]], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.Page[catalog.Hotel]]{}, err
	}

	less, ok := hotelOrder(params.SortBy)
	if !ok {
		return Fail[catalog.Page[catalog.Hotel]](MsgUnsupportedSort), nil
	}

	c.mu.Lock()
	matches := make([]catalog.Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		if !sameText(params.City, h.City) {
			continue
		}
		if params.MinRating > 0 && h.Rating < params.MinRating {
			continue
		}
		if params.MaxPrice > 0 && h.PricePerNight > params.MaxPrice {
			continue
		}
		if params.CheckIn != "" && h.RoomsAvailable == 0 {
			continue
		}
		h.Amenities = slices.Clone(h.Amenities)
		matches = append(matches, h)
	}
	c.mu.Unlock()

	slices.SortStableFunc(matches, less)
	return page(matches, params.Limit, params.Offset)
}

// GetHotel returns one hotel by ID.
func (c *Catalog) GetHotel(ctx context.Context, id string) (Response[catalog.Hotel], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.Hotel]{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.hotels, func(h catalog.Hotel) bool { return h.ID == id })
	if i < 0 {
		return Fail[catalog.Hotel](MsgHotelNotFound), nil
	}
	h := c.hotels[i]
	h.Amenities = slices.Clone(h.Amenities)
	return OK(h), nil
}

// BookHotel takes one room of the hotel for the stay.
func (c *Catalog) BookHotel(ctx context.Context, booking catalog.Booking) (Response[catalog.BookingConfirmation], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.BookingConfirmation]{}, err
	}

	if strings.TrimSpace(booking.GuestName) == "" {
		return Fail[catalog.BookingConfirmation](validator.MsgNameRequired), nil
	}
	if booking.Guests < 1 {
		return Fail[catalog.BookingConfirmation](validator.MsgGuestsInvalid), nil
	}
	checkIn, err := validator.ParseDate(booking.CheckIn)
	if err != nil {
		return Fail[catalog.BookingConfirmation](validator.MsgInvalidDate), nil
	}
	checkOut, err := validator.ParseDate(booking.CheckOut)
	if err != nil {
		return Fail[catalog.BookingConfirmation](validator.MsgInvalidDate), nil
	}
	nights := int(checkOut.Sub(checkIn) / (24 * time.Hour))
	if nights < 1 {
		return Fail[catalog.BookingConfirmation](validator.MsgCheckOutBefore), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.hotels, func(h catalog.Hotel) bool { return h.ID == booking.HotelID })
	if i < 0 {
		return Fail[catalog.BookingConfirmation](MsgHotelNotFound), nil
	}
	h := &c.hotels[i]
	if h.RoomsAvailable < 1 {
		return Fail[catalog.BookingConfirmation](MsgNoRooms), nil
	}
	h.RoomsAvailable--

	conf := catalog.BookingConfirmation{
		ID:       c.newID(),
		HotelID:  h.ID,
		CheckIn:  booking.CheckIn,
		CheckOut: booking.CheckOut,
		Guests:   booking.Guests,
		Nights:   nights,
		Total:    roundCents(h.PricePerNight * float64(nights)),
		Currency: h.Currency,
	}
	c.bookings[conf.ID] = conf
	return OK(conf), nil
}

// SearchRestaurants filters, sorts and paginates restaurants.
func (c *Catalog) SearchRestaurants(ctx context.Context, params catalog.RestaurantParams) (Response[catalog.Page[catalog.Restaurant]], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.Page[catalog.Restaurant]]{}, err
	}

	less, ok := restaurantOrder(params.SortBy)
	if !ok {
		return Fail[catalog.Page[catalog.Restaurant]](MsgUnsupportedSort), nil
	}

	c.mu.Lock()
	matches := make([]catalog.Restaurant, 0, len(c.restaurants))
	for _, r := range c.restaurants {
		if !sameText(params.City, r.City) || !sameText(params.Cuisine, r.Cuisine) {
			continue
		}
		if params.PriceRange != "" && params.PriceRange != r.PriceRange {
			continue
		}
		matches = append(matches, r)
	}
	c.mu.Unlock()

	slices.SortStableFunc(matches, less)
	return page(matches, params.Limit, params.Offset)
}

// GetRestaurant returns one restaurant by ID.
func (c *Catalog) GetRestaurant(ctx context.Context, id string) (Response[catalog.Restaurant], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.Restaurant]{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.restaurants, func(r catalog.Restaurant) bool { return r.ID == id })
	if i < 0 {
		return Fail[catalog.Restaurant](MsgRestaurantNotFound), nil
	}
	return OK(c.restaurants[i]), nil
}

// ReserveTable books seats for one date and time slot.
func (c *Catalog) ReserveTable(ctx context.Context, reservation catalog.Reservation) (Response[catalog.ReservationConfirmation], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.ReservationConfirmation]{}, err
	}

	if strings.TrimSpace(reservation.Name) == "" {
		return Fail[catalog.ReservationConfirmation](validator.MsgNameRequired), nil
	}
	if reservation.PartySize < 1 {
		return Fail[catalog.ReservationConfirmation](validator.MsgPartyInvalid), nil
	}
	if _, err := validator.ParseDate(reservation.Date); err != nil {
		return Fail[catalog.ReservationConfirmation](validator.MsgInvalidDate), nil
	}
	if _, err := time.Parse(validator.TimeLayout, reservation.Time); err != nil {
		return Fail[catalog.ReservationConfirmation](validator.MsgInvalidTime), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.restaurants, func(r catalog.Restaurant) bool { return r.ID == reservation.RestaurantID })
	if i < 0 {
		return Fail[catalog.ReservationConfirmation](MsgRestaurantNotFound), nil
	}

	slot := reservation.RestaurantID + "|" + reservation.Date + "|" + reservation.Time
	if c.seatsTaken[slot]+reservation.PartySize > c.restaurants[i].Seats {
		return Fail[catalog.ReservationConfirmation](MsgNoSeats), nil
	}
	c.seatsTaken[slot] += reservation.PartySize

	conf := catalog.ReservationConfirmation{
		ID:           c.newID(),
		RestaurantID: reservation.RestaurantID,
		Date:         reservation.Date,
		Time:         reservation.Time,
		PartySize:    reservation.PartySize,
	}
	c.reservations[conf.ID] = conf
	return OK(conf), nil
}

// ListNews lists articles newest first.
func (c *Catalog) ListNews(ctx context.Context, params catalog.NewsParams) (Response[catalog.Page[catalog.Article]], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.Page[catalog.Article]]{}, err
	}

	c.mu.Lock()
	matches := make([]catalog.Article, 0, len(c.articles))
	for _, a := range c.articles {
		if sameText(params.Category, a.Category) {
			matches = append(matches, a)
		}
	}
	c.mu.Unlock()

	slices.SortStableFunc(matches, func(a, b catalog.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return page(matches, params.Limit, params.Offset)
}

// GetArticle returns one article by ID.
func (c *Catalog) GetArticle(ctx context.Context, id string) (Response[catalog.Article], error) {
	if err := ctx.Err(); err != nil {
		return Response[catalog.Article]{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.articles, func(a catalog.Article) bool { return a.ID == id })
	if i < 0 {
		return Fail[catalog.Article](MsgArticleNotFound), nil
	}
	return OK(c.articles[i]), nil
}

func hotelOrder(sortBy string) (func(a, b catalog.Hotel) int, bool) {
	switch sortBy {
	case "", "rating":
		return func(a, b catalog.Hotel) int { return cmp.Compare(b.Rating, a.Rating) }, true
	case "price":
		return func(a, b catalog.Hotel) int { return cmp.Compare(a.PricePerNight, b.PricePerNight) }, true
	case "stars":
		return func(a, b catalog.Hotel) int { return cmp.Compare(b.Stars, a.Stars) }, true
	case "name":
		return func(a, b catalog.Hotel) int { return strings.Compare(a.Name, b.Name) }, true
	default:
		return nil, false
	}
}

func restaurantOrder(sortBy string) (func(a, b catalog.Restaurant) int, bool) {
	switch sortBy {
	case "", "rating":
		return func(a, b catalog.Restaurant) int { return cmp.Compare(b.Rating, a.Rating) }, true
	case "price":
		return func(a, b catalog.Restaurant) int { return cmp.Compare(len(a.PriceRange), len(b.PriceRange)) }, true
	case "name":
		return func(a, b catalog.Restaurant) int { return strings.Compare(a.Name, b.Name) }, true
	default:
		return nil, false
	}
}

// page cuts one page out of items. A zero limit means catalog.DefaultLimit.
func page[T any](items []T, limit, offset int) (Response[catalog.Page[T]], error) {
	if limit < 0 || offset < 0 {
		return Fail[catalog.Page[T]](MsgInvalidPage), nil
	}
	if limit == 0 {
		limit = catalog.DefaultLimit
	}
	limit = min(limit, MaxLimit)

	start := min(offset, len(items))
	end := min(start+limit, len(items))
	return OK(catalog.Page[T]{
		Items:  slices.Clone(items[start:end]),
		Total:  len(items),
		Limit:  limit,
		Offset: offset,
	}), nil
}

// sameText matches a filter case-insensitively. An empty filter matches
// everything.
func sameText(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || strings.EqualFold(filter, value)
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
