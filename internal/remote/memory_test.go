package remote_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tourguide/internal/catalog"
	"github.com/alex-user-go/tourguide/internal/remote"
	"github.com/alex-user-go/tourguide/internal/validator"
)

func testCatalog() *remote.Catalog {
	return remote.NewCatalogWith(
		[]catalog.Hotel{
			{ID: "h1", Name: "Atlas", City: "rabat", Rating: 4.2, PricePerNight: 800, Stars: 4, Currency: "MAD", RoomsAvailable: 2},
			{ID: "h2", Name: "Bahia", City: "rabat", Rating: 4.8, PricePerNight: 1500, Stars: 5, Currency: "MAD", RoomsAvailable: 1},
			{ID: "h3", Name: "Corniche", City: "rabat", Rating: 3.5, PricePerNight: 400, Stars: 3, Currency: "MAD", RoomsAvailable: 0},
			{ID: "h4", Name: "Dune", City: "agadir", Rating: 4.0, PricePerNight: 900, Stars: 4, Currency: "MAD", RoomsAvailable: 5},
		},
		[]catalog.Restaurant{
			{ID: "r1", Name: "Zaytoun", City: "fes", Cuisine: "moroccan", PriceRange: "$$", Rating: 4.5, Seats: 4},
			{ID: "r2", Name: "Marina", City: "fes", Cuisine: "seafood", PriceRange: "$$$", Rating: 4.1, Seats: 10},
		},
		nil,
	)
}

func TestCatalog_SearchHotels(t *testing.T) {
	c := testCatalog()
	ctx := context.Background()

	tests := []struct {
		name   string
		params catalog.HotelParams
		want   []string
		total  int
	}{
		{name: "city by rating", params: catalog.HotelParams{City: "Rabat"}, want: []string{"h2", "h1", "h3"}, total: 3},
		{name: "by price", params: catalog.HotelParams{City: "rabat", SortBy: "price"}, want: []string{"h3", "h1", "h2"}, total: 3},
		{name: "min rating", params: catalog.HotelParams{City: "rabat", MinRating: 4}, want: []string{"h2", "h1"}, total: 2},
		{name: "max price", params: catalog.HotelParams{City: "rabat", MaxPrice: 800}, want: []string{"h1", "h3"}, total: 2},
		{name: "dates hide full hotels", params: catalog.HotelParams{City: "rabat", CheckIn: "2030-01-01", CheckOut: "2030-01-02"}, want: []string{"h2", "h1"}, total: 2},
		{name: "pagination", params: catalog.HotelParams{City: "rabat", Limit: 1, Offset: 1}, want: []string{"h1"}, total: 3},
		{name: "offset past the end", params: catalog.HotelParams{City: "rabat", Offset: 10}, want: []string{}, total: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.SearchHotels(ctx, tt.params)
			require.NoError(t, err)
			require.True(t, resp.Success, resp.Message)

			ids := make([]string, 0, len(resp.Data.Items))
			for _, h := range resp.Data.Items {
				ids = append(ids, h.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, tt.total, resp.Data.Total)
		})
	}
}

func TestCatalog_SearchRejections(t *testing.T) {
	c := testCatalog()
	ctx := context.Background()

	resp, err := c.SearchHotels(ctx, catalog.HotelParams{SortBy: "distance"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, remote.MsgUnsupportedSort, resp.Message)

	resp, err = c.SearchHotels(ctx, catalog.HotelParams{Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, remote.MsgInvalidPage, resp.Message)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = c.SearchHotels(cancelled, catalog.HotelParams{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCatalog_DefaultAndMaxLimit(t *testing.T) {
	c := remote.NewCatalog()

	resp, err := c.SearchHotels(context.Background(), catalog.HotelParams{})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultLimit, resp.Data.Limit)

	resp, err = c.SearchHotels(context.Background(), catalog.HotelParams{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, remote.MaxLimit, resp.Data.Limit)
}

func TestCatalog_BookHotel(t *testing.T) {
	c := testCatalog()
	ctx := context.Background()

	booking := catalog.Booking{HotelID: "h2", CheckIn: "2030-05-01", CheckOut: "2030-05-04", Guests: 2, GuestName: "Amina"}

	resp, err := c.BookHotel(ctx, booking)
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, 3, resp.Data.Nights)
	assert.InDelta(t, 4500.0, resp.Data.Total, 0.001)
	assert.Equal(t, "MAD", resp.Data.Currency)

	hotel, err := c.GetHotel(ctx, "h2")
	require.NoError(t, err)
	assert.Equal(t, 0, hotel.Data.RoomsAvailable)

	resp, err = c.BookHotel(ctx, booking)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, remote.MsgNoRooms, resp.Message)
}

func TestCatalog_BookHotelRejections(t *testing.T) {
	c := testCatalog()
	valid := catalog.Booking{HotelID: "h1", CheckIn: "2030-05-01", CheckOut: "2030-05-02", Guests: 1, GuestName: "Omar"}

	tests := []struct {
		name   string
		mutate func(b *catalog.Booking)
		want   string
	}{
		{name: "unknown hotel", mutate: func(b *catalog.Booking) { b.HotelID = "nope" }, want: remote.MsgHotelNotFound},
		{name: "no name", mutate: func(b *catalog.Booking) { b.GuestName = " " }, want: validator.MsgNameRequired},
		{name: "no guests", mutate: func(b *catalog.Booking) { b.Guests = 0 }, want: validator.MsgGuestsInvalid},
		{name: "bad date", mutate: func(b *catalog.Booking) { b.CheckIn = "01/05/2030" }, want: "date must be in YYYY-MM-DD format"},
		{name: "reversed dates", mutate: func(b *catalog.Booking) { b.CheckOut = "2030-04-30" }, want: "check-out must be after check-in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)

			resp, err := c.BookHotel(context.Background(), b)
			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.want, resp.Message)
		})
	}
}

func TestCatalog_ReserveTableCapacity(t *testing.T) {
	c := testCatalog()
	ctx := context.Background()

	res := catalog.Reservation{RestaurantID: "r1", Date: "2030-06-01", Time: "20:00", PartySize: 3, Name: "Youssef"}

	resp, err := c.ReserveTable(ctx, res)
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, 3, resp.Data.PartySize)

	res.PartySize = 2
	resp, err = c.ReserveTable(ctx, res)
	require.NoError(t, err)
	assert.Equal(t, remote.MsgNoSeats, resp.Message)

	res.Time = "21:30"
	resp, err = c.ReserveTable(ctx, res)
	require.NoError(t, err)
	assert.True(t, resp.Success)

	res.Time = "9pm"
	resp, err = c.ReserveTable(ctx, res)
	require.NoError(t, err)
	assert.Equal(t, validator.MsgInvalidTime, resp.Message)
}

func TestCatalog_ConcurrentBookings(t *testing.T) {
	c := testCatalog()
	booking := catalog.Booking{HotelID: "h1", CheckIn: "2030-05-01", CheckOut: "2030-05-02", Guests: 1, GuestName: "Sara"}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for range 10 {
		wg.Go(func() {
			resp, err := c.BookHotel(context.Background(), booking)
			if err == nil && resp.Success {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 2, accepted)
}

func TestCatalog_News(t *testing.T) {
	c := remote.NewCatalog()
	ctx := context.Background()

	resp, err := c.ListNews(ctx, catalog.NewsParams{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Data.Items)
	for i := 1; i < len(resp.Data.Items); i++ {
		assert.False(t, resp.Data.Items[i].PublishedAt.After(resp.Data.Items[i-1].PublishedAt))
	}

	resp, err = c.ListNews(ctx, catalog.NewsParams{Category: "stadiums"})
	require.NoError(t, err)
	for _, a := range resp.Data.Items {
		assert.Equal(t, "stadiums", a.Category)
	}

	article, err := c.GetArticle(ctx, resp.Data.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, article.Success)

	missing, err := c.GetArticle(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, remote.MsgArticleNotFound, missing.Message)
}
