package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.trai.ch/zerr"

	"github.com/alex-user-go/tourguide/internal/catalog"
)

// HTTPClient talks to the catalog service over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Services = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTPClient.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SearchHotels lists hotels matching params.
func (c *HTTPClient) SearchHotels(ctx context.Context, params catalog.HotelParams) (Response[catalog.Page[catalog.Hotel]], error) {
	q := url.Values{}
	setString(q, "city", params.City)
	setString(q, "checkIn", params.CheckIn)
	setString(q, "checkOut", params.CheckOut)
	setInt(q, "guests", params.Guests)
	setFloat(q, "minRating", params.MinRating)
	setFloat(q, "maxPrice", params.MaxPrice)
	setInt(q, "limit", params.Limit)
	setInt(q, "offset", params.Offset)
	setString(q, "sortBy", params.SortBy)

	return call[catalog.Page[catalog.Hotel]](ctx, c, http.MethodGet, "/hotels", q, nil)
}

// GetHotel returns one hotel.
func (c *HTTPClient) GetHotel(ctx context.Context, id string) (Response[catalog.Hotel], error) {
	return call[catalog.Hotel](ctx, c, http.MethodGet, "/hotels/"+url.PathEscape(id), nil, nil)
}

// BookHotel submits a booking.
func (c *HTTPClient) BookHotel(ctx context.Context, booking catalog.Booking) (Response[catalog.BookingConfirmation], error) {
	path := "/hotels/" + url.PathEscape(booking.HotelID) + "/bookings"
	return call[catalog.BookingConfirmation](ctx, c, http.MethodPost, path, nil, booking)
}

// SearchRestaurants lists restaurants matching params.
func (c *HTTPClient) SearchRestaurants(ctx context.Context, params catalog.RestaurantParams) (Response[catalog.Page[catalog.Restaurant]], error) {
	q := url.Values{}
	setString(q, "city", params.City)
	setString(q, "cuisine", params.Cuisine)
	setString(q, "priceRange", params.PriceRange)
	setInt(q, "limit", params.Limit)
	setInt(q, "offset", params.Offset)
	setString(q, "sortBy", params.SortBy)

	return call[catalog.Page[catalog.Restaurant]](ctx, c, http.MethodGet, "/restaurants", q, nil)
}

// GetRestaurant returns one restaurant.
func (c *HTTPClient) GetRestaurant(ctx context.Context, id string) (Response[catalog.Restaurant], error) {
	return call[catalog.Restaurant](ctx, c, http.MethodGet, "/restaurants/"+url.PathEscape(id), nil, nil)
}

// ReserveTable submits a table reservation.
func (c *HTTPClient) ReserveTable(ctx context.Context, reservation catalog.Reservation) (Response[catalog.ReservationConfirmation], error) {
	path := "/restaurants/" + url.PathEscape(reservation.RestaurantID) + "/reservations"
	return call[catalog.ReservationConfirmation](ctx, c, http.MethodPost, path, nil, reservation)
}

// ListNews lists news articles.
func (c *HTTPClient) ListNews(ctx context.Context, params catalog.NewsParams) (Response[catalog.Page[catalog.Article]], error) {
	q := url.Values{}
	setString(q, "category", params.Category)
	setInt(q, "limit", params.Limit)
	setInt(q, "offset", params.Offset)

	return call[catalog.Page[catalog.Article]](ctx, c, http.MethodGet, "/news", q, nil)
}

// GetArticle returns one article.
func (c *HTTPClient) GetArticle(ctx context.Context, id string) (Response[catalog.Article], error) {
	return call[catalog.Article](ctx, c, http.MethodGet, "/news/"+url.PathEscape(id), nil, nil)
}

// call performs one request. Any status below 500 carrying a valid
// envelope is returned as is, so domain failures reach Unwrap intact.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, query url.Values, body any) (Response[T], error) {
	var resp Response[T]

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return resp, Transport(zerr.Wrap(err, "invalid base URL"))
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return resp, zerr.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return resp, Transport(zerr.Wrap(err, "failed to create request"))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return resp, Transport(zerr.Wrap(err, "request failed"))
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	if httpResp.StatusCode >= http.StatusInternalServerError {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return resp, Transport(zerr.With(
			zerr.New(fmt.Sprintf("catalog returned status %d", httpResp.StatusCode)),
			"body", string(snippet),
		))
	}

	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return resp, Transport(zerr.Wrap(err, "failed to parse response"))
	}
	return resp, nil
}

func setString(q url.Values, name, v string) {
	if v != "" {
		q.Set(name, v)
	}
}

func setInt(q url.Values, name string, v int) {
	if v != 0 {
		q.Set(name, strconv.Itoa(v))
	}
}

func setFloat(q url.Values, name string, v float64) {
	if v != 0 {
		q.Set(name, strconv.FormatFloat(v, 'f', -1, 64))
	}
}
