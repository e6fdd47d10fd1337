// Package cache holds one entry per query key with the timestamps that
// govern freshness and retention.
package cache

import (
	"sync"
	"time"

	"go.trai.ch/zerr"

	"github.com/alex-user-go/tourguide/internal/obs"
	"github.com/alex-user-go/tourguide/internal/querykey"
)

var (
	// ErrInFlight is returned by Put while a producer call owns the key.
	ErrInFlight = zerr.New("cache entry has a fetch in flight")

	// ErrLoadingEntry is returned by Put for entries in the loading state.
	ErrLoadingEntry = zerr.New("cannot put an entry in the loading state")
)

// Status is the lifecycle state of an entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a point-in-time snapshot of one cached query.
type Entry struct {
	Key         querykey.Key
	Data        any
	HasData     bool
	Status      Status
	Err         error
	FetchedAt   time.Time
	StaleAfter  time.Duration
	RetainUntil time.Time
	Invalidated bool
	Observers   int
	// Version increases with every change to the entry.
	Version uint64
}

// Stale reports whether a read at now should trigger a refetch.
func (e Entry) Stale(now time.Time) bool {
	if !e.HasData || e.Invalidated {
		return true
	}
	return now.Sub(e.FetchedAt) >= e.StaleAfter
}

// Policy carries the per-read timing options.
type Policy struct {
	StaleAfter time.Duration
	Retention  time.Duration
}

// Ticket is the outcome of Begin.
type Ticket struct {
	// Entry is the state right after Begin.
	Entry Entry
	// Gen is the generation of the flight to attach to when Fetch is set.
	Gen uint64
	// Fetch is set when the caller must join or run a flight.
	Fetch bool
	// Started is set when this Begin opened the flight.
	Started bool
}

type record struct {
	entry     Entry
	settled   Status
	retention time.Duration
	gen       uint64
	fetching  bool
	claimed   bool
	observers int
	version   uint64
	subs      map[uint64]func(Entry)
}

func (r *record) snapshot() Entry {
	e := r.entry
	e.Status = r.settled
	if r.fetching {
		e.Status = StatusLoading
	}
	e.Observers = r.observers
	e.Version = r.version
	return e
}

type notification struct {
	entry Entry
	subs  []func(Entry)
}

// Store is an in-memory query cache with lazy and periodic garbage
// collection. It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	records    map[string]*record
	gcInterval time.Duration
	lastGC     time.Time
	nextSubID  uint64
	now        func() time.Time
	metrics    *obs.Metrics
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a Store that sweeps unobserved expired entries every
// gcInterval.
func New(gcInterval time.Duration, metrics *obs.Metrics) *Store {
	s := &Store{
		records:    make(map[string]*record),
		gcInterval: gcInterval,
		now:        time.Now,
		metrics:    metrics,
		done:       make(chan struct{}),
	}
	s.lastGC = s.now()

	// Start background cleanup
	go s.cleanup(gcInterval)

	return s
}

// Close stops the background cleanup goroutine.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// Get returns a snapshot of the entry for key.
func (s *Store) Get(key querykey.Key) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maybeGC()

	rec, ok := s.records[key.ID()]
	if !ok {
		return Entry{}, false
	}
	return rec.snapshot(), true
}

// Put replaces the entry for key. It fails while a producer owns the key.
func (s *Store) Put(key querykey.Key, entry Entry) error {
	if entry.Status == StatusLoading {
		return ErrLoadingEntry
	}

	s.mu.Lock()
	rec := s.record(key)
	if rec.fetching {
		s.mu.Unlock()
		return zerr.With(ErrInFlight, "key", key.ID())
	}

	entry.Key = key
	entry.Observers = 0
	rec.entry = entry
	rec.settled = entry.Status
	n := s.notification(rec)
	s.mu.Unlock()

	n.deliver()
	return nil
}

// Invalidate marks every entry matching pred as stale. A running flight
// for such an entry is superseded by a new unclaimed generation, so the
// key stays loading until a producer runs for it. Cached data stays
// visible until a refetch replaces it.
func (s *Store) Invalidate(pred func(querykey.Key) bool) int {
	s.mu.Lock()
	var notes []notification
	for _, rec := range s.records {
		if !pred(rec.entry.Key) {
			continue
		}
		rec.entry.Invalidated = true
		if rec.fetching {
			rec.gen++
			rec.claimed = false
		}
		notes = append(notes, s.notification(rec))
	}
	s.mu.Unlock()

	for _, n := range notes {
		n.deliver()
	}
	return len(notes)
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = make(map[string]*record)
	s.mu.Unlock()
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Begin decides whether a read of key needs a fetch. A running flight is
// always joined; otherwise a new flight is opened when force is set or the
// entry is stale.
func (s *Store) Begin(key querykey.Key, policy Policy, force bool) Ticket {
	s.mu.Lock()
	s.maybeGC()

	rec := s.record(key)
	rec.entry.StaleAfter = policy.StaleAfter
	rec.retention = policy.Retention
	if retainUntil := s.now().Add(policy.Retention); rec.entry.RetainUntil.Before(retainUntil) {
		rec.entry.RetainUntil = retainUntil
	}

	if rec.fetching {
		t := Ticket{Entry: rec.snapshot(), Gen: rec.gen, Fetch: true}
		s.mu.Unlock()
		return t
	}

	if !force && !rec.entry.Stale(s.now()) {
		t := Ticket{Entry: rec.snapshot()}
		s.mu.Unlock()
		return t
	}

	rec.gen++
	rec.fetching = true
	rec.claimed = false
	n := s.notification(rec)
	t := Ticket{Entry: rec.snapshot(), Gen: rec.gen, Fetch: true, Started: true}
	s.mu.Unlock()

	n.deliver()
	return t
}

// Flight returns the generation of the running flight for key, if any.
func (s *Store) Flight(key querykey.Key) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key.ID()]
	if !ok || !rec.fetching {
		return 0, false
	}
	return rec.gen, true
}

// Claim grants the right to call the producer for generation gen. It
// returns false when the flight was superseded or already claimed.
func (s *Store) Claim(key querykey.Key, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key.ID()]
	if !ok || rec.gen != gen || !rec.fetching || rec.claimed {
		return false
	}
	rec.claimed = true
	return true
}

// Settle applies a producer outcome for generation gen. Outcomes from a
// superseded generation are discarded and Settle returns false. A failure
// keeps previously fetched data.
func (s *Store) Settle(key querykey.Key, gen uint64, data any, err error) bool {
	s.mu.Lock()
	rec, ok := s.records[key.ID()]
	if !ok || rec.gen != gen || !rec.fetching {
		s.mu.Unlock()
		return false
	}

	now := s.now()
	rec.fetching = false
	rec.claimed = false
	if retainUntil := now.Add(rec.retention); rec.entry.RetainUntil.Before(retainUntil) {
		rec.entry.RetainUntil = retainUntil
	}

	if err != nil {
		rec.settled = StatusError
		rec.entry.Err = err
	} else {
		rec.settled = StatusSuccess
		rec.entry.Data = data
		rec.entry.HasData = true
		rec.entry.Err = nil
		rec.entry.FetchedAt = now
		rec.entry.Invalidated = false
	}
	n := s.notification(rec)
	s.mu.Unlock()

	n.deliver()
	return true
}

// Observe registers an active observer of key. Observed entries are never
// collected. The returned release func is idempotent.
func (s *Store) Observe(key querykey.Key) func() {
	s.mu.Lock()
	s.record(key).observers++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if rec, ok := s.records[key.ID()]; ok && rec.observers > 0 {
				rec.observers--
			}
		})
	}
}

// Subscribe calls fn with a snapshot after every change to key. fn runs
// outside the store lock.
func (s *Store) Subscribe(key querykey.Key, fn func(Entry)) func() {
	s.mu.Lock()
	rec := s.record(key)
	s.nextSubID++
	id := s.nextSubID
	rec.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if rec, ok := s.records[key.ID()]; ok {
			delete(rec.subs, id)
		}
	}
}

// GC evicts entries past their retention that have no observers and no
// running flight.
func (s *Store) GC() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweep()
}

func (s *Store) record(key querykey.Key) *record {
	rec, ok := s.records[key.ID()]
	if !ok {
		rec = &record{
			entry: Entry{Key: key},
			subs:  make(map[uint64]func(Entry)),
		}
		s.records[key.ID()] = rec
	}
	return rec
}

// notification bumps the entry version and collects its subscribers.
// Callers hold s.mu.
func (s *Store) notification(rec *record) notification {
	rec.version++
	if len(rec.subs) == 0 {
		return notification{}
	}
	subs := make([]func(Entry), 0, len(rec.subs))
	for _, fn := range rec.subs {
		subs = append(subs, fn)
	}
	return notification{entry: rec.snapshot(), subs: subs}
}

func (n notification) deliver() {
	for _, fn := range n.subs {
		fn(n.entry)
	}
}

// maybeGC sweeps when gcInterval has passed since the last sweep.
// Callers hold s.mu.
func (s *Store) maybeGC() {
	if s.gcInterval <= 0 || s.now().Sub(s.lastGC) < s.gcInterval {
		return
	}
	s.sweep()
}

func (s *Store) sweep() int {
	now := s.now()
	s.lastGC = now

	evicted := 0
	for id, rec := range s.records {
		if rec.fetching || rec.observers > 0 || len(rec.subs) > 0 {
			continue
		}
		if now.After(rec.entry.RetainUntil) {
			delete(s.records, id)
			evicted++
		}
	}
	s.metrics.CacheEvicted(evicted)
	return evicted
}

// cleanup periodically removes expired entries.
func (s *Store) cleanup(interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.GC()
		case <-s.done:
			return
		}
	}
}
