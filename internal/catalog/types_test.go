package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alex-user-go/tourguide/internal/catalog"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, catalog.HotelParams{City: "casablanca", Limit: 20, Offset: 0, SortBy: "rating"}, catalog.DefaultHotelParams())
	assert.Equal(t, catalog.RestaurantParams{City: "casablanca", Limit: 20, Offset: 0, SortBy: "rating"}, catalog.DefaultRestaurantParams())
}

func TestHotelParams_Ready(t *testing.T) {
	tests := []struct {
		name   string
		params catalog.HotelParams
		want   bool
	}{
		{name: "defaults", params: catalog.DefaultHotelParams(), want: true},
		{name: "no city", params: catalog.HotelParams{City: "  "}, want: false},
		{name: "full date range", params: catalog.HotelParams{City: "rabat", CheckIn: "2025-01-01", CheckOut: "2025-01-03"}, want: true},
		{name: "check-in only", params: catalog.HotelParams{City: "rabat", CheckIn: "2025-01-01"}, want: false},
		{name: "check-out only", params: catalog.HotelParams{City: "rabat", CheckOut: "2025-01-03"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Ready())
		})
	}
}

func TestRestaurantParams_Ready(t *testing.T) {
	assert.True(t, catalog.DefaultRestaurantParams().Ready())
	assert.False(t, catalog.RestaurantParams{Cuisine: "moroccan"}.Ready())
}
