package searchstate_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tourguide/internal/catalog"
	"github.com/alex-user-go/tourguide/internal/searchstate"
)

func ptr[T any](v T) *T {
	return &v
}

func TestHotelUpdate_Apply(t *testing.T) {
	page3 := catalog.HotelParams{City: "casablanca", Limit: 20, Offset: 40, SortBy: "rating"}

	tests := []struct {
		name   string
		update searchstate.HotelUpdate
		want   catalog.HotelParams
	}{
		{
			name:   "filter change returns to page one",
			update: searchstate.HotelUpdate{City: ptr("rabat")},
			want:   catalog.HotelParams{City: "rabat", Limit: 20, Offset: 0, SortBy: "rating"},
		},
		{
			name:   "offset alone is honoured",
			update: searchstate.HotelUpdate{Offset: ptr(20)},
			want:   catalog.HotelParams{City: "casablanca", Limit: 20, Offset: 20, SortBy: "rating"},
		},
		{
			name:   "explicit offset wins over the reset rule",
			update: searchstate.HotelUpdate{SortBy: ptr("price"), Offset: ptr(60)},
			want:   catalog.HotelParams{City: "casablanca", Limit: 20, Offset: 60, SortBy: "price"},
		},
		{
			name:   "same value still counts as a change",
			update: searchstate.HotelUpdate{City: ptr("casablanca")},
			want:   catalog.HotelParams{City: "casablanca", Limit: 20, Offset: 0, SortBy: "rating"},
		},
		{
			name:   "limit change resets offset",
			update: searchstate.HotelUpdate{Limit: ptr(50)},
			want:   catalog.HotelParams{City: "casablanca", Limit: 50, Offset: 0, SortBy: "rating"},
		},
		{
			name:   "dates and guests",
			update: searchstate.HotelUpdate{CheckIn: ptr("2025-02-01"), CheckOut: ptr("2025-02-03"), Guests: ptr(2)},
			want:   catalog.HotelParams{City: "casablanca", CheckIn: "2025-02-01", CheckOut: "2025-02-03", Guests: 2, Limit: 20, Offset: 0, SortBy: "rating"},
		},
		{
			name:   "price and rating filters",
			update: searchstate.HotelUpdate{MinRating: ptr(4.5), MaxPrice: ptr(900.0)},
			want:   catalog.HotelParams{City: "casablanca", MinRating: 4.5, MaxPrice: 900, Limit: 20, Offset: 0, SortBy: "rating"},
		},
		{
			name:   "empty update changes nothing",
			update: searchstate.HotelUpdate{},
			want:   page3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.update.Apply(page3))
		})
	}
}

func TestRestaurantUpdate_Apply(t *testing.T) {
	page2 := catalog.RestaurantParams{City: "fes", Cuisine: "moroccan", Limit: 20, Offset: 20, SortBy: "rating"}

	tests := []struct {
		name   string
		update searchstate.RestaurantUpdate
		want   catalog.RestaurantParams
	}{
		{
			name:   "cuisine change resets offset",
			update: searchstate.RestaurantUpdate{Cuisine: ptr("seafood")},
			want:   catalog.RestaurantParams{City: "fes", Cuisine: "seafood", Limit: 20, Offset: 0, SortBy: "rating"},
		},
		{
			name:   "price range change resets offset",
			update: searchstate.RestaurantUpdate{PriceRange: ptr("$$")},
			want:   catalog.RestaurantParams{City: "fes", Cuisine: "moroccan", PriceRange: "$$", Limit: 20, Offset: 0, SortBy: "rating"},
		},
		{
			name:   "next page",
			update: searchstate.RestaurantUpdate{Offset: ptr(40)},
			want:   catalog.RestaurantParams{City: "fes", Cuisine: "moroccan", Limit: 20, Offset: 40, SortBy: "rating"},
		},
		{
			name:   "city and offset together",
			update: searchstate.RestaurantUpdate{City: ptr("rabat"), Offset: ptr(20)},
			want:   catalog.RestaurantParams{City: "rabat", Cuisine: "moroccan", Limit: 20, Offset: 20, SortBy: "rating"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.update.Apply(page2))
		})
	}
}

func TestController_UpdateAndReset(t *testing.T) {
	c := searchstate.NewHotels()
	assert.Equal(t, catalog.DefaultHotelParams(), c.Params())

	got := c.Update(searchstate.HotelUpdate{Offset: ptr(40)})
	assert.Equal(t, 40, got.Offset)

	got = c.Update(searchstate.HotelUpdate{City: ptr("rabat")})
	assert.Equal(t, "rabat", got.City)
	assert.Equal(t, 0, got.Offset)
	assert.Equal(t, got, c.Params())

	got = c.Reset()
	assert.Equal(t, catalog.DefaultHotelParams(), got)
	assert.Equal(t, catalog.DefaultHotelParams(), c.Params())
}

func TestController_Subscribe(t *testing.T) {
	c := searchstate.NewRestaurants()

	var seen []catalog.RestaurantParams
	cancel := c.Subscribe(func(p catalog.RestaurantParams) {
		seen = append(seen, p)
	})

	c.Update(searchstate.RestaurantUpdate{City: ptr("tangier")})
	c.Reset()
	cancel()
	c.Update(searchstate.RestaurantUpdate{City: ptr("agadir")})

	require.Len(t, seen, 2)
	assert.Equal(t, "tangier", seen[0].City)
	assert.Equal(t, catalog.DefaultRestaurantParams(), seen[1])
}

func TestController_ConcurrentUpdates(t *testing.T) {
	c := searchstate.NewHotels()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			c.Update(searchstate.HotelUpdate{Offset: ptr(i * 20)})
		})
	}
	wg.Wait()

	p := c.Params()
	assert.Equal(t, 0, p.Offset%20)
	assert.Equal(t, catalog.DefaultCity, p.City)
}
