package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/models"
)

// Placeholders for the named registration fields left empty. Whitespace is kept as submitted.
const (
	DefaultFullName = "Attendee"
	DefaultTitle    = "Executive"
)

// NewRegistration builds a registration from submitted form values. The id and
// timestamp are generated here; formData is kept verbatim, empty strings included.
func (s *Store) NewRegistration(formData map[string]string) models.Registration {
	data := make(map[string]string, len(formData))
	for k, v := range formData {
		data[k] = v
	}
	return models.Registration{
		ID:        s.newID(),
		FullName:  orDefault(data["fullName"], DefaultFullName),
		Title:     orDefault(data["title"], DefaultTitle),
		Email:     data["email"],
		Phone:     data["phone"],
		FormData:  data,
		Timestamp: s.now().UTC(),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Register appends reg to the attendees of configID and syncs the count.
// An unknown configID is dropped silently: recorded is false and nothing is written.
// Calls are not idempotent; resubmitting creates another entry.
func (s *Store) Register(ctx context.Context, configID string, reg models.Registration) (recorded bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(configID)
	if i < 0 {
		s.logger.Debug("registration dropped for unknown configuration", zap.String("config_id", configID))
		return false, nil
	}

	cfg := s.webinars[i].Clone()
	cfg.Attendees = append(cfg.Attendees, reg.Clone())
	cfg.Registrations = len(cfg.Attendees)

	next := append([]models.WebinarConfig(nil), s.webinars...)
	next[i] = cfg
	if err := s.commit(ctx, next, s.activeID); err != nil {
		return false, err
	}
	s.logger.Info("registration recorded",
		zap.String("config_id", configID),
		zap.String("registration_id", reg.ID),
		zap.Int("attendees", cfg.Registrations),
	)
	return true, nil
}
