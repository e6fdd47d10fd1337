package remote

import (
	"context"

	"github.com/alex-user-go/tourguide/internal/catalog"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// HotelService is the hotels domain of the catalog.
type HotelService interface {
	SearchHotels(ctx context.Context, params catalog.HotelParams) (Response[catalog.Page[catalog.Hotel]], error)
	GetHotel(ctx context.Context, id string) (Response[catalog.Hotel], error)
	BookHotel(ctx context.Context, booking catalog.Booking) (Response[catalog.BookingConfirmation], error)
}

// RestaurantService is the restaurants domain of the catalog.
type RestaurantService interface {
	SearchRestaurants(ctx context.Context, params catalog.RestaurantParams) (Response[catalog.Page[catalog.Restaurant]], error)
	GetRestaurant(ctx context.Context, id string) (Response[catalog.Restaurant], error)
	ReserveTable(ctx context.Context, reservation catalog.Reservation) (Response[catalog.ReservationConfirmation], error)
}

// NewsService is the read-only news feed.
type NewsService interface {
	ListNews(ctx context.Context, params catalog.NewsParams) (Response[catalog.Page[catalog.Article]], error)
	GetArticle(ctx context.Context, id string) (Response[catalog.Article], error)
}

// Services bundles the three domains.
type Services interface {
	HotelService
	RestaurantService
	NewsService
}
