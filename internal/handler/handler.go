package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/alex-user-go/tourguide/internal/catalog"
	"github.com/alex-user-go/tourguide/internal/middleware"
	"github.com/alex-user-go/tourguide/internal/mutation"
	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/query"
	"github.com/alex-user-go/tourguide/internal/querykey"
	"github.com/alex-user-go/tourguide/internal/ratelimit"
	"github.com/alex-user-go/tourguide/internal/remote"
	"github.com/alex-user-go/tourguide/internal/validator"
)

// Options tunes request handling.
type Options struct {
	// RequestTimeout bounds how long a read waits for a fetch with no
	// earlier data to fall back to.
	RequestTimeout time.Duration
	// Debounce is the settle delay of search sessions.
	Debounce time.Duration
	// SessionIdleTimeout closes search sessions nobody has used for that
	// long. Zero keeps them until they are deleted.
	SessionIdleTimeout time.Duration
}

// Handler handles HTTP requests.
type Handler struct {
	client   *query.Client
	exec     *mutation.Executor
	svc      remote.Services
	limiter  *ratelimit.Limiter
	sessions *Sessions
	metrics  *obs.Metrics
	logger   *slog.Logger
	timeout  time.Duration
	now      func() time.Time
}

// New creates a new Handler.
func New(
	client *query.Client,
	exec *mutation.Executor,
	svc remote.Services,
	limiter *ratelimit.Limiter,
	metrics *obs.Metrics,
	logger *slog.Logger,
	opts Options,
) *Handler {
	return &Handler{
		client:   client,
		exec:     exec,
		svc:      svc,
		limiter:  limiter,
		sessions: NewSessions(client, svc, opts.Debounce, opts.SessionIdleTimeout, metrics, logger),
		metrics:  metrics,
		logger:   logger,
		timeout:  opts.RequestTimeout,
		now:      time.Now,
	}
}

// Close tears down every open search session.
func (h *Handler) Close() {
	h.sessions.CloseAll()
}

// Routes builds the router of the public API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logging(h.logger, h.metrics))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", obs.HealthHandler(h.logger))
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/hotels", h.searchHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.With(h.rateLimit).Post("/hotels/{id}/bookings", h.bookHotel)

		r.Get("/restaurants", h.searchRestaurants)
		r.Get("/restaurants/{id}", h.getRestaurant)
		r.With(h.rateLimit).Post("/restaurants/{id}/reservations", h.reserveTable)

		r.Get("/news", h.listNews)
		r.Get("/news/{id}", h.getArticle)

		r.Post("/sessions", h.openSession)
		r.Get("/sessions/{id}", h.getSession)
		r.Patch("/sessions/{id}", h.updateSession)
		r.Delete("/sessions/{id}", h.closeSession)
		r.Post("/sessions/{id}/reset", h.resetSession)
		r.Get("/sessions/{id}/results", h.sessionResults)
	})

	return r
}

func (h *Handler) searchHotels(w http.ResponseWriter, r *http.Request) {
	params, errs := ParseHotelParams(r.URL.Query())
	if v := validator.ValidateSearch(params.City, params.CheckIn, params.CheckOut, h.now()); !v.Valid {
		errs = append(errs, v.Errors...)
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	serveQuery(h, w, r, catalog.DomainHotels, params, func(ctx context.Context) (catalog.Page[catalog.Hotel], error) {
		return remote.Unwrap(h.svc.SearchHotels(ctx, params))
	})
}

func (h *Handler) getHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serveQuery(h, w, r, catalog.DomainHotels, detailParams{ID: id}, func(ctx context.Context) (catalog.Hotel, error) {
		return remote.Unwrap(h.svc.GetHotel(ctx, id))
	})
}

func (h *Handler) bookHotel(w http.ResponseWriter, r *http.Request) {
	var b catalog.Booking
	if err := decodeBody(w, r, &b); err != nil {
		writeValidation(w, []string{"request body must be a JSON booking"})
		return
	}
	b.HotelID = chi.URLParam(r, "id")

	if v := validator.ValidateBooking(b.CheckIn, b.CheckOut, b.Guests, b.GuestName, b.Email, h.now()); !v.Valid {
		writeValidation(w, v.Errors)
		return
	}

	res := mutation.Run(r.Context(), h.exec, catalog.DomainHotels, func(ctx context.Context) (catalog.BookingConfirmation, error) {
		return remote.Unwrap(h.svc.BookHotel(ctx, b))
	})
	h.writeMutation(w, r, res.Err, MutationResponse[catalog.BookingConfirmation]{Data: res.Data, Invalidated: res.Invalidated})
}

func (h *Handler) searchRestaurants(w http.ResponseWriter, r *http.Request) {
	params, errs := ParseRestaurantParams(r.URL.Query())
	if !params.Ready() {
		errs = append(errs, validator.MsgCityRequired)
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	serveQuery(h, w, r, catalog.DomainRestaurants, params, func(ctx context.Context) (catalog.Page[catalog.Restaurant], error) {
		return remote.Unwrap(h.svc.SearchRestaurants(ctx, params))
	})
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serveQuery(h, w, r, catalog.DomainRestaurants, detailParams{ID: id}, func(ctx context.Context) (catalog.Restaurant, error) {
		return remote.Unwrap(h.svc.GetRestaurant(ctx, id))
	})
}

func (h *Handler) reserveTable(w http.ResponseWriter, r *http.Request) {
	var res catalog.Reservation
	if err := decodeBody(w, r, &res); err != nil {
		writeValidation(w, []string{"request body must be a JSON reservation"})
		return
	}
	res.RestaurantID = chi.URLParam(r, "id")

	if v := validator.ValidateReservation(res.Date, res.Time, res.PartySize, res.Name, res.Phone, h.now()); !v.Valid {
		writeValidation(w, v.Errors)
		return
	}

	out := mutation.Run(r.Context(), h.exec, catalog.DomainRestaurants, func(ctx context.Context) (catalog.ReservationConfirmation, error) {
		return remote.Unwrap(h.svc.ReserveTable(ctx, res))
	})
	h.writeMutation(w, r, out.Err, MutationResponse[catalog.ReservationConfirmation]{Data: out.Data, Invalidated: out.Invalidated})
}

func (h *Handler) listNews(w http.ResponseWriter, r *http.Request) {
	params, errs := ParseNewsParams(r.URL.Query())
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	serveQuery(h, w, r, catalog.DomainNews, params, func(ctx context.Context) (catalog.Page[catalog.Article], error) {
		return remote.Unwrap(h.svc.ListNews(ctx, params))
	})
}

func (h *Handler) getArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	serveQuery(h, w, r, catalog.DomainNews, detailParams{ID: id}, func(ctx context.Context) (catalog.Article, error) {
		return remote.Unwrap(h.svc.GetArticle(ctx, id))
	})
}

// detailParams keys a single-item read.
type detailParams struct {
	ID string `json:"id"`
}

// serveQuery answers a cached read. Earlier data is served at once while
// a refetch runs; a cold key waits for its fetch up to the request
// timeout.
func serveQuery[T any](h *Handler, w http.ResponseWriter, r *http.Request, domain string, params any, producer query.Producer[T]) {
	requestID := middleware.RequestID(r.Context())

	key, err := querykey.Build(domain, params)
	if err != nil {
		h.logger.Error("failed to build query key", "request_id", requestID, "domain", domain, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	res, err := resolveWithin(r.Context(), h.client, h.timeout, key, producer)
	if err != nil {
		h.logger.Warn("query wait ended",
			"request_id", requestID,
			"domain", domain,
			"key", key.Hash(),
			"error", err,
		)
		writeError(w, http.StatusGatewayTimeout, remote.UnavailableMessage)
		return
	}

	status, body := queryBody(res)
	if err := writeJSON(w, status, body); err != nil {
		h.logger.Error("failed to encode response", "request_id", requestID, "error", err)
	}
}

// resolveWithin resolves key and, when there is nothing to serve yet,
// waits up to timeout for the fetch. It fails only if the wait ends with
// no data and no settled error.
func resolveWithin[T any](ctx context.Context, c *query.Client, timeout time.Duration, key querykey.Key, producer query.Producer[T]) (query.Result[T], error) {
	res := query.Resolve(c, key, producer)
	if res.HasData {
		return res, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := res.Wait(ctx)
	if err != nil && !res.HasData && res.Err == nil {
		return res, err
	}
	return res, nil
}

func (h *Handler) writeMutation(w http.ResponseWriter, r *http.Request, err error, body any) {
	if err != nil {
		writeError(w, statusFor(err), remote.Message(err))
		return
	}
	if err := writeJSON(w, http.StatusCreated, body); err != nil {
		h.logger.Error("failed to encode response", "request_id", middleware.RequestID(r.Context()), "error", err)
	}
}

// rateLimit rejects submissions beyond the per-client budget.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ExtractIP(r)
		if h.limiter.Allow(ip) {
			next.ServeHTTP(w, r)
			return
		}

		route := chi.RouteContext(r.Context()).RoutePattern()
		h.metrics.RateLimited(route)
		h.logger.Warn("rate limit exceeded",
			"request_id", middleware.RequestID(r.Context()),
			"ip", ip,
			"route", route,
		)

		retry := int(math.Ceil(h.limiter.RetryAfter(ip).Seconds()))
		w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ExtractIP extracts the client IP from the request.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
