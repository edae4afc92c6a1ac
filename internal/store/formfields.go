package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/models"
)

// Defaults for a field added without details.
const (
	DefaultFieldLabel       = "New Field"
	DefaultFieldPlaceholder = "Enter details..."
)

// FieldPatch holds the form field attributes to change; nil members are left as they are.
type FieldPatch struct {
	Label       *string `json:"label"`
	Type        *string `json:"type"`
	Placeholder *string `json:"placeholder"`
	Required    *bool   `json:"required"`
}

func (p FieldPatch) apply(f models.FormField) models.FormField {
	if p.Label != nil {
		f.Label = *p.Label
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Placeholder != nil {
		f.Placeholder = *p.Placeholder
	}
	if p.Required != nil {
		f.Required = *p.Required
	}
	return f
}

// editFields runs edit on a copy of configID's form, validates and persists the result.
func (s *Store) editFields(ctx context.Context, configID string, edit func([]models.FormField) ([]models.FormField, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(configID)
	if i < 0 {
		return ErrNotFound
	}
	cfg := s.webinars[i].Clone()
	fields, err := edit(cfg.FormFields)
	if err != nil {
		return err
	}
	cfg.FormFields = fields
	if err := validateConfig(cfg); err != nil {
		return err
	}
	next := append([]models.WebinarConfig(nil), s.webinars...)
	next[i] = cfg
	return s.commit(ctx, next, s.activeID)
}

// AddFormField appends a field to configID's form. Empty attributes get the
// dashboard defaults and an empty id is generated.
func (s *Store) AddFormField(ctx context.Context, configID string, field models.FormField) (models.FormField, error) {
	if field.ID == "" {
		field.ID = s.newID()
	}
	if field.Label == "" {
		field.Label = DefaultFieldLabel
	}
	if field.Type == "" {
		field.Type = models.FieldText
	}
	if field.Placeholder == "" {
		field.Placeholder = DefaultFieldPlaceholder
	}
	err := s.editFields(ctx, configID, func(fields []models.FormField) ([]models.FormField, error) {
		return append(fields, field), nil
	})
	if err != nil {
		return models.FormField{}, err
	}
	s.logger.Info("form field added", zap.String("config_id", configID), zap.String("field_id", field.ID))
	return field, nil
}

// UpdateFormField applies patch to one field of configID's form.
func (s *Store) UpdateFormField(ctx context.Context, configID, fieldID string, patch FieldPatch) (models.FormField, error) {
	var updated models.FormField
	err := s.editFields(ctx, configID, func(fields []models.FormField) ([]models.FormField, error) {
		for i, f := range fields {
			if f.ID == fieldID {
				fields[i] = patch.apply(f)
				updated = fields[i]
				return fields, nil
			}
		}
		return nil, ErrFieldNotFound
	})
	if err != nil {
		return models.FormField{}, err
	}
	return updated, nil
}

// RemoveFormField deletes one field. The last field of a form is protected.
func (s *Store) RemoveFormField(ctx context.Context, configID, fieldID string) error {
	err := s.editFields(ctx, configID, func(fields []models.FormField) ([]models.FormField, error) {
		if len(fields) <= 1 {
			return nil, &ProtectedStateError{Reason: MsgLastFormField}
		}
		for i, f := range fields {
			if f.ID == fieldID {
				return append(fields[:i:i], fields[i+1:]...), nil
			}
		}
		return nil, ErrFieldNotFound
	})
	if err != nil {
		return err
	}
	s.logger.Info("form field removed", zap.String("config_id", configID), zap.String("field_id", fieldID))
	return nil
}
