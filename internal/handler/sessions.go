package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.trai.ch/zerr"

	"github.com/alex-user-go/tourguide/internal/catalog"
	"github.com/alex-user-go/tourguide/internal/debounce"
	"github.com/alex-user-go/tourguide/internal/middleware"
	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/query"
	"github.com/alex-user-go/tourguide/internal/querykey"
	"github.com/alex-user-go/tourguide/internal/remote"
	"github.com/alex-user-go/tourguide/internal/searchstate"
	"github.com/alex-user-go/tourguide/internal/validator"
)

var (
	// ErrUnsupportedDomain is returned when opening a session for a domain
	// without search state.
	ErrUnsupportedDomain = zerr.New("unsupported domain")
	// ErrSessionNotFound is returned for unknown session IDs.
	ErrSessionNotFound = zerr.New("session not found")
)

// SessionView describes a session's current parameters.
type SessionView[P any] struct {
	ID      string   `json:"id"`
	Domain  string   `json:"domain"`
	Params  P        `json:"params"`
	Pending bool     `json:"pending"`
	Errors  []string `json:"errors,omitempty"`
}

// SessionResults is the body of a session results read. Params are the
// settled parameters the result belongs to.
type SessionResults[P, T any] struct {
	SessionView[P]
	Result *QueryResponse[catalog.Page[T]] `json:"result,omitempty"`
}

// session is the domain-independent face of a search session.
type session interface {
	view() any
	update(decode func(any) error) (any, error)
	reset() any
	results(ctx context.Context, timeout time.Duration) (int, any, error)
	close()
}

// searchSession couples a search-state controller with a debouncer. Each
// settled parameter set is validated and then watched, which prefetches
// it and keeps it cached while the session looks at it.
type searchSession[P comparable, U searchstate.Partial[P], T any] struct {
	id       string
	domain   string
	client   *query.Client
	metrics  *obs.Metrics
	logger   *slog.Logger
	validate func(P) []string
	fetch    func(P) query.Producer[catalog.Page[T]]

	ctrl        *searchstate.Controller[P, U]
	debouncer   *debounce.Debouncer[P]
	unsubscribe func()

	mu       sync.Mutex
	settled  P
	errs     []string
	key      querykey.Key
	observer *query.Observer[catalog.Page[T]]
	seq      uint64 // last commit started
	closed   bool
}

func newSearchSession[P comparable, U searchstate.Partial[P], T any](
	s *Sessions,
	domain string,
	ctrl *searchstate.Controller[P, U],
	validate func(P) []string,
	fetch func(P) query.Producer[catalog.Page[T]],
) *searchSession[P, U, T] {
	ss := &searchSession[P, U, T]{
		id:       uuid.NewString(),
		domain:   domain,
		client:   s.client,
		metrics:  s.metrics,
		logger:   s.logger,
		validate: validate,
		fetch:    fetch,
		ctrl:     ctrl,
	}
	ss.debouncer = debounce.New(s.debounce, ss.settle)
	ss.unsubscribe = ctrl.Subscribe(ss.debouncer.Set)
	ss.commit(ctrl.Params())
	return ss
}

// settle runs when the debounced parameters stop changing.
func (s *searchSession[P, U, T]) settle(params P) {
	s.metrics.DebounceEmitted(s.domain)

	// A newer value is already on its way.
	if params != s.ctrl.Params() {
		return
	}
	s.commit(params)
}

func (s *searchSession[P, U, T]) commit(params P) {
	s.mu.Lock()
	if s.closed || (s.observer != nil && params == s.settled) {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	errs := s.validate(params)

	var (
		key      querykey.Key
		observer *query.Observer[catalog.Page[T]]
	)
	if len(errs) == 0 {
		var err error
		key, err = querykey.Build(s.domain, params)
		if err != nil {
			s.logger.Error("failed to build session key", "session_id", s.id, "domain", s.domain, "error", err)
			errs = []string{"internal error"}
		} else {
			observer = query.Watch(s.client, key, s.fetch(params))
		}
	}

	// A commit that started later, or newer parameters, win.
	current := s.ctrl.Params()

	s.mu.Lock()
	if s.closed || seq != s.seq || params != current {
		s.mu.Unlock()
		if observer != nil {
			observer.Close()
		}
		return
	}
	previous := s.observer
	s.settled, s.errs, s.key, s.observer = params, errs, key, observer
	s.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	s.logger.Debug("session settled",
		"session_id", s.id,
		"domain", s.domain,
		"key", key.Hash(),
		"errors", len(errs),
	)
}

func (s *searchSession[P, U, T]) view() any {
	params := s.ctrl.Params()
	return SessionView[P]{
		ID:      s.id,
		Domain:  s.domain,
		Params:  params,
		Pending: s.debouncer.Pending(),
		Errors:  s.validate(params),
	}
}

func (s *searchSession[P, U, T]) update(decode func(any) error) (any, error) {
	var u U
	if err := decode(&u); err != nil {
		return nil, err
	}
	s.ctrl.Update(u)
	return s.view(), nil
}

func (s *searchSession[P, U, T]) reset() any {
	s.ctrl.Reset()
	return s.view()
}

// results serves the settled parameters' query. Invalid settled
// parameters are reported instead of fetched.
func (s *searchSession[P, U, T]) results(ctx context.Context, timeout time.Duration) (int, any, error) {
	s.mu.Lock()
	params, errs, key := s.settled, s.errs, s.key
	s.mu.Unlock()

	out := SessionResults[P, T]{
		SessionView: SessionView[P]{
			ID:      s.id,
			Domain:  s.domain,
			Params:  params,
			Pending: s.debouncer.Pending(),
			Errors:  errs,
		},
	}
	if len(errs) > 0 {
		return http.StatusBadRequest, out, nil
	}

	res, err := resolveWithin(ctx, s.client, timeout, key, s.fetch(params))
	if err != nil {
		return 0, nil, err
	}

	status, body := queryBody(res)
	out.Result = &body
	return status, out, nil
}

func (s *searchSession[P, U, T]) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	observer := s.observer
	s.observer = nil
	s.mu.Unlock()

	s.debouncer.Stop()
	s.unsubscribe()
	if observer != nil {
		observer.Close()
	}
}

// Sessions tracks the open search sessions. Sessions nobody has used
// for the idle timeout are closed, which releases their cache entries.
type Sessions struct {
	client      *query.Client
	svc         remote.Services
	debounce    time.Duration
	idleTimeout time.Duration
	metrics     *obs.Metrics
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*tracked

	done      chan struct{}
	closeOnce sync.Once
}

type tracked struct {
	session
	lastSeen time.Time
}

// NewSessions creates an empty session registry. An idleTimeout of zero
// keeps sessions until they are closed.
func NewSessions(client *query.Client, svc remote.Services, debounce, idleTimeout time.Duration, metrics *obs.Metrics, logger *slog.Logger) *Sessions {
	s := &Sessions{
		client:      client,
		svc:         svc,
		debounce:    debounce,
		idleTimeout: idleTimeout,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
		sessions:    make(map[string]*tracked),
		done:        make(chan struct{}),
	}

	if idleTimeout > 0 {
		go s.cleanup(max(idleTimeout/2, time.Second))
	}

	return s
}

// Open starts a search session for domain at its default parameters.
func (s *Sessions) Open(domain string) (string, any, error) {
	var (
		id   string
		sess session
	)
	switch domain {
	case catalog.DomainHotels:
		ss := newSearchSession(s, domain, searchstate.NewHotels(), s.validateHotels, s.searchHotels)
		id, sess = ss.id, ss
	case catalog.DomainRestaurants:
		ss := newSearchSession(s, domain, searchstate.NewRestaurants(), validateRestaurants, s.searchRestaurants)
		id, sess = ss.id, ss
	default:
		return "", nil, zerr.With(ErrUnsupportedDomain, "domain", domain)
	}

	s.mu.Lock()
	s.sessions[id] = &tracked{session: sess, lastSeen: s.now()}
	s.mu.Unlock()

	s.metrics.SessionOpened()
	s.logger.Info("session opened", "session_id", id, "domain", domain)
	return id, sess.view(), nil
}

// get returns the session id and marks it as used.
func (s *Sessions) get(id string) (session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	t.lastSeen = s.now()
	return t.session, nil
}

// Close tears down the session id.
func (s *Sessions) Close(id string) error {
	s.mu.Lock()
	t, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	t.close()
	s.metrics.SessionClosed()
	s.logger.Info("session closed", "session_id", id)
	return nil
}

// CloseAll stops idle expiry and tears down every session.
func (s *Sessions) CloseAll() {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*tracked)
	s.mu.Unlock()

	for _, t := range all {
		t.close()
		s.metrics.SessionClosed()
	}
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// expire closes sessions unused for the idle timeout and returns how
// many it closed.
func (s *Sessions) expire() int {
	now := s.now()

	s.mu.Lock()
	idle := make(map[string]*tracked)
	for id, t := range s.sessions {
		if now.Sub(t.lastSeen) >= s.idleTimeout {
			idle[id] = t
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for id, t := range idle {
		t.close()
		s.metrics.SessionClosed()
		s.logger.Info("session expired", "session_id", id, "idle_ms", now.Sub(t.lastSeen).Milliseconds())
	}
	return len(idle)
}

// cleanup periodically expires idle sessions.
func (s *Sessions) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expire()
		case <-s.done:
			return
		}
	}
}

func (s *Sessions) searchHotels(p catalog.HotelParams) query.Producer[catalog.Page[catalog.Hotel]] {
	return func(ctx context.Context) (catalog.Page[catalog.Hotel], error) {
		return remote.Unwrap(s.svc.SearchHotels(ctx, p))
	}
}

func (s *Sessions) searchRestaurants(p catalog.RestaurantParams) query.Producer[catalog.Page[catalog.Restaurant]] {
	return func(ctx context.Context) (catalog.Page[catalog.Restaurant], error) {
		return remote.Unwrap(s.svc.SearchRestaurants(ctx, p))
	}
}

func (s *Sessions) validateHotels(p catalog.HotelParams) []string {
	errs := validator.ValidateSearch(p.City, p.CheckIn, p.CheckOut, s.now()).Errors
	if p.Guests < 0 {
		errs = append(errs, "guests must be an integer of at least 0")
	}
	if p.MinRating < 0 || p.MaxPrice < 0 {
		errs = append(errs, "filters must be non-negative numbers")
	}
	return append(errs, pageErrors(p.Limit, p.Offset)...)
}

func validateRestaurants(p catalog.RestaurantParams) []string {
	var errs []string
	if !p.Ready() {
		errs = append(errs, validator.MsgCityRequired)
	}
	return append(errs, pageErrors(p.Limit, p.Offset)...)
}

func pageErrors(limit, offset int) []string {
	var errs []string
	if limit < 1 || limit > remote.MaxLimit {
		errs = append(errs, "limit must be between 1 and "+strconv.Itoa(remote.MaxLimit))
	}
	if offset < 0 {
		errs = append(errs, "offset must be an integer of at least 0")
	}
	return errs
}

type openSessionRequest struct {
	Domain string `json:"domain"`
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeValidation(w, []string{"request body must be a JSON object with a domain"})
		return
	}

	_, view, err := h.sessions.Open(req.Domain)
	if err != nil {
		writeValidation(w, []string{ErrUnsupportedDomain.Error() + ": " + req.Domain})
		return
	}
	h.respond(w, r, http.StatusCreated, view)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK, sess.view())
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := sess.update(func(dst any) error {
		return decodeBody(w, r, dst)
	})
	if err != nil {
		writeValidation(w, []string{"request body must be a JSON update"})
		return
	}
	h.respond(w, r, http.StatusOK, view)
}

func (h *Handler) resetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK, sess.reset())
}

func (h *Handler) sessionResults(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	status, body, err := sess.results(r.Context(), h.timeout)
	if err != nil {
		h.logger.Warn("session results wait ended",
			"request_id", middleware.RequestID(r.Context()),
			"session_id", chi.URLParam(r, "id"),
			"error", err,
		)
		writeError(w, http.StatusGatewayTimeout, remote.UnavailableMessage)
		return
	}
	h.respond(w, r, status, body)
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (session, bool) {
	sess, err := h.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := writeJSON(w, status, body); err != nil {
		h.logger.Error("failed to encode response", "request_id", middleware.RequestID(r.Context()), "error", err)
	}
}
