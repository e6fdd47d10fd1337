package remote

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alex-user-go/tourguide/internal/catalog"
)

// CatalogServer exposes Services over HTTP using the envelope format.
// Successful calls answer 200, rejected ones 422 and malformed requests
// 400; every body is a Response.
type CatalogServer struct {
	svc    Services
	logger *slog.Logger
}

// NewCatalogServer creates a new CatalogServer.
func NewCatalogServer(svc Services, logger *slog.Logger) *CatalogServer {
	return &CatalogServer{svc: svc, logger: logger}
}

// Routes mounts the catalog endpoints on a new router.
func (s *CatalogServer) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/hotels", s.searchHotels)
	r.Get("/hotels/{id}", s.getHotel)
	r.Post("/hotels/{id}/bookings", s.bookHotel)

	r.Get("/restaurants", s.searchRestaurants)
	r.Get("/restaurants/{id}", s.getRestaurant)
	r.Post("/restaurants/{id}/reservations", s.reserveTable)

	r.Get("/news", s.listNews)
	r.Get("/news/{id}", s.getArticle)

	return r
}

func (s *CatalogServer) searchHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := catalog.HotelParams{
		City:     q.Get("city"),
		CheckIn:  q.Get("checkIn"),
		CheckOut: q.Get("checkOut"),
		SortBy:   q.Get("sortBy"),
	}
	var err error
	if p.Guests, err = intParam(q, "guests"); err != nil {
		s.badRequest(w, "invalid guests")
		return
	}
	if p.MinRating, err = floatParam(q, "minRating"); err != nil {
		s.badRequest(w, "invalid minRating")
		return
	}
	if p.MaxPrice, err = floatParam(q, "maxPrice"); err != nil {
		s.badRequest(w, "invalid maxPrice")
		return
	}
	if p.Limit, p.Offset, err = pageParams(q); err != nil {
		s.badRequest(w, "invalid limit or offset")
		return
	}

	resp, err := s.svc.SearchHotels(r.Context(), p)
	reply(s, w, r, resp, err)
}

func (s *CatalogServer) getHotel(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.GetHotel(r.Context(), chi.URLParam(r, "id"))
	reply(s, w, r, resp, err)
}

func (s *CatalogServer) bookHotel(w http.ResponseWriter, r *http.Request) {
	var b catalog.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		s.badRequest(w, "invalid booking payload")
		return
	}
	b.HotelID = chi.URLParam(r, "id")

	resp, err := s.svc.BookHotel(r.Context(), b)
	reply(s, w, r, resp, err)
}

func (s *CatalogServer) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := catalog.RestaurantParams{
		City:       q.Get("city"),
		Cuisine:    q.Get("cuisine"),
		PriceRange: q.Get("priceRange"),
		SortBy:     q.Get("sortBy"),
	}
	var err error
	if p.Limit, p.Offset, err = pageParams(q); err != nil {
		s.badRequest(w, "invalid limit or offset")
		return
	}

	resp, err := s.svc.SearchRestaurants(r.Context(), p)
	reply(s, w, r, resp, err)
}

func (s *CatalogServer) getRestaurant(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
	reply(s, w, r, resp, err)
}

func (s *CatalogServer) reserveTable(w http.ResponseWriter, r *http.Request) {
	var res catalog.Reservation
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		s.badRequest(w, "invalid reservation payload")
		return
	}
	res.RestaurantID = chi.URLParam(r, "id")

	resp, err := s.svc.ReserveTable(r.Context(), res)
	reply(s, w, r, resp, err)
}

func (s *CatalogServer) listNews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := catalog.NewsParams{Category: q.Get("category")}
	var err error
	if p.Limit, p.Offset, err = pageParams(q); err != nil {
		s.badRequest(w, "invalid limit or offset")
		return
	}

	resp, err := s.svc.ListNews(r.Context(), p)
	reply(s, w, r, resp, err)
}

func (s *CatalogServer) getArticle(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.GetArticle(r.Context(), chi.URLParam(r, "id"))
	reply(s, w, r, resp, err)
}

func reply[T any](s *CatalogServer, w http.ResponseWriter, r *http.Request, resp Response[T], err error) {
	switch {
	case err != nil:
		if r.Context().Err() == nil {
			s.logger.Error("catalog call failed", "path", r.URL.Path, "error", err)
		}
		s.write(w, http.StatusServiceUnavailable, Fail[T](UnavailableMessage))
	case !resp.Success:
		s.write(w, http.StatusUnprocessableEntity, resp)
	default:
		s.write(w, http.StatusOK, resp)
	}
}

func (s *CatalogServer) badRequest(w http.ResponseWriter, message string) {
	s.write(w, http.StatusBadRequest, Fail[struct{}](message))
}

func (s *CatalogServer) write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func pageParams(q url.Values) (limit, offset int, err error) {
	if limit, err = intParam(q, "limit"); err != nil {
		return 0, 0, err
	}
	if offset, err = intParam(q, "offset"); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func floatParam(q url.Values, name string) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}
