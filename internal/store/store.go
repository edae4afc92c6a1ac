// Package store owns the collection of webinar configurations, the active
// selection and their persistence.
//
// Every mutation is applied to a copy of the collection, written to the kv
// provider as one JSON blob, and only then swapped in. A failed write leaves
// memory untouched and is returned as *PersistError.
//
// Two processes sharing one storage key are not coordinated: whichever
// persists last overwrites the whole collection.
package store

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/models"
	"github.com/aura-webinar/landing/pkg/kv"
)

// DefaultKey is the storage key the collection is persisted under.
const DefaultKey = "plaxonic_webinars"

// Store is the single owner of the webinar collection.
type Store struct {
	mu       sync.Mutex
	provider kv.Provider
	key      string
	logger   *zap.Logger
	nav      Navigator
	now      func() time.Time
	newID    func() string
	webinars []models.WebinarConfig
	activeID string
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNavigator sets the receiver of fragment updates.
func WithNavigator(nav Navigator) Option {
	return func(s *Store) {
		if nav != nil {
			s.nav = nav
		}
	}
}

// WithClock sets the time source used for registration timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the generator for registration and form field ids.
func WithIDGenerator(next func() string) Option {
	return func(s *Store) {
		if next != nil {
			s.newID = next
		}
	}
}

// New creates an empty store. Call Load before use.
func New(provider kv.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		key:      DefaultKey,
		logger:   zap.NewNop(),
		nav:      NopNavigator{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetNavigator replaces the navigator after construction.
func (s *Store) SetNavigator(nav Navigator) {
	if nav == nil {
		nav = NopNavigator{}
	}
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()
}

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// Load reads the persisted collection. Absent, unreadable or malformed state
// is replaced by the seed, which is written back best-effort. Load never fails.
func (s *Store) Load(ctx context.Context) {
	list, ok := s.read(ctx)
	if !ok {
		list = models.Seed()
		if err := s.persist(ctx, list); err != nil {
			s.logger.Warn("persist seed failed", zap.Error(err))
		}
	}

	s.mu.Lock()
	s.webinars = list
	s.activeID = list[0].ID
	s.mu.Unlock()

	s.logger.Info("webinar store loaded",
		zap.String("key", s.key),
		zap.Int("configurations", len(list)),
		zap.Bool("seeded", !ok),
	)
}

func (s *Store) read(ctx context.Context) ([]models.WebinarConfig, bool) {
	raw, found, err := s.provider.Read(ctx, s.key)
	if err != nil {
		s.logger.Warn("read persisted state failed, using seed", zap.String("key", s.key), zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	var list []models.WebinarConfig
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("persisted state malformed, using seed", zap.String("key", s.key), zap.Error(err))
		return nil, false
	}
	if err := validateCollection(list); err != nil {
		s.logger.Warn("persisted state invalid, using seed", zap.String("key", s.key), zap.Error(err))
		return nil, false
	}
	return list, true
}

func (s *Store) persist(ctx context.Context, list []models.WebinarConfig) error {
	b, err := json.Marshal(list)
	if err != nil {
		return &PersistError{Key: s.key, Err: err}
	}
	if err := s.provider.Write(ctx, s.key, string(b)); err != nil {
		s.logger.Error("persist failed", zap.String("key", s.key), zap.Error(err))
		return &PersistError{Key: s.key, Err: err}
	}
	return nil
}

// commit persists next and swaps it in. Caller holds s.mu.
func (s *Store) commit(ctx context.Context, next []models.WebinarConfig, activeID string) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.webinars = next
	s.activeID = activeID
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.webinars {
		if s.webinars[i].ID == id {
			return i
		}
	}
	return -1
}

// List returns a copy of the ordered collection.
func (s *Store) List() []models.WebinarConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WebinarConfig, len(s.webinars))
	for i, w := range s.webinars {
		out[i] = w.Clone()
	}
	return out
}

// Get returns a copy of the configuration with the given id.
func (s *Store) Get(id string) (models.WebinarConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.WebinarConfig{}, false
	}
	return s.webinars[i].Clone(), true
}

// ActiveID returns the id of the active configuration.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Active returns the active configuration, or the first one if the active id is missing.
func (s *Store) Active() models.WebinarConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.webinars) == 0 {
		return models.WebinarConfig{}
	}
	if i := s.indexOf(s.activeID); i >= 0 {
		return s.webinars[i].Clone()
	}
	return s.webinars[0].Clone()
}

// Select makes id active and mirrors it into the navigation fragment.
// Unknown ids are ignored. Reports whether id is now active.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		s.logger.Debug("select ignored unknown id", zap.String("id", id))
		return false
	}
	s.activeID = id
	s.nav.Navigate(Fragment(id))
	s.mu.Unlock()
	return true
}

// HandleFragment applies an externally changed fragment. The referenced id
// becomes active when it exists; anything else is ignored.
func (s *Store) HandleFragment(fragment string) bool {
	id, ok := ParseFragment(fragment)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return false
	}
	s.activeID = id
	return true
}

// Replace overwrites the configuration id in place with cfg.
func (s *Store) Replace(ctx context.Context, id string, cfg models.WebinarConfig) error {
	return s.replace(ctx, id, cfg, false)
}

// ReplaceContent is Replace for page edits: when cfg carries no attendees the
// captured ones and their count are kept, read under the same lock as the write.
func (s *Store) ReplaceContent(ctx context.Context, id string, cfg models.WebinarConfig) error {
	return s.replace(ctx, id, cfg, cfg.Attendees == nil)
}

func (s *Store) replace(ctx context.Context, id string, cfg models.WebinarConfig, keepAttendees bool) error {
	if cfg.ID != id {
		return &ValidationError{Field: "id", Reason: "does not match " + strconv.Quote(id)}
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	cfg = cfg.Clone()
	if keepAttendees {
		current := s.webinars[i].Clone()
		cfg.Attendees = current.Attendees
		cfg.Registrations = len(current.Attendees)
	}
	next := append([]models.WebinarConfig(nil), s.webinars...)
	next[i] = cfg
	if err := s.commit(ctx, next, s.activeID); err != nil {
		return err
	}
	s.logger.Info("webinar configuration replaced", zap.String("id", id))
	return nil
}

// Create appends a copy of template under a new id, without its attendees, and makes it active.
func (s *Store) Create(ctx context.Context, template models.WebinarConfig) (string, error) {
	s.mu.Lock()
	id := nextID(s.webinars)
	cfg := template.Clone()
	cfg.ID = id
	cfg.Attendees = []models.Registration{}
	cfg.Registrations = 0
	if err := validateConfig(cfg); err != nil {
		s.mu.Unlock()
		return "", err
	}

	next := append(append([]models.WebinarConfig(nil), s.webinars...), cfg)
	if err := s.commit(ctx, next, id); err != nil {
		s.mu.Unlock()
		return "", err
	}
	s.nav.Navigate(Fragment(id))
	s.mu.Unlock()

	s.logger.Info("webinar configuration created", zap.String("id", id))
	return id, nil
}

// Delete removes a configuration. The last remaining configuration is protected.
// When the active configuration is removed the first remaining one becomes active.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if len(s.webinars) <= 1 {
		s.mu.Unlock()
		return &ProtectedStateError{Reason: MsgLastConfiguration}
	}
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	next := make([]models.WebinarConfig, 0, len(s.webinars)-1)
	next = append(next, s.webinars[:i]...)
	next = append(next, s.webinars[i+1:]...)

	activeID := s.activeID
	reselected := activeID == id
	if reselected {
		activeID = next[0].ID
	}
	if err := s.commit(ctx, next, activeID); err != nil {
		s.mu.Unlock()
		return err
	}
	if reselected {
		s.nav.Navigate(Fragment(activeID))
	}
	s.mu.Unlock()

	s.logger.Info("webinar configuration deleted", zap.String("id", id))
	return nil
}

// nextID returns one more than the highest numeric id, counting upward past
// ids already in use. Non-numeric ids count as 0. When the highest id is
// math.MaxInt the search restarts at 1.
func nextID(list []models.WebinarConfig) string {
	used := make(map[string]struct{}, len(list))
	maxID := 0
	for _, w := range list {
		used[w.ID] = struct{}{}
		if n, err := strconv.Atoi(w.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	n := 1
	if maxID < math.MaxInt {
		n = maxID + 1
	}
	for {
		id := strconv.Itoa(n)
		if _, taken := used[id]; !taken {
			return id
		}
		n++
	}
}
