package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-webinar/landing/internal/models"
	"github.com/aura-webinar/landing/pkg/kv"
)

func fieldIDs(cfg models.WebinarConfig) []string {
	out := make([]string, len(cfg.FormFields))
	for i, f := range cfg.FormFields {
		out[i] = f.ID
	}
	return out
}

func TestAddFormField_Defaults(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, kv.NewMemory())

	f, err := s.AddFormField(ctx, "1", models.FormField{})
	require.NoError(t, err)
	assert.Equal(t, "gen-a", f.ID)
	assert.Equal(t, DefaultFieldLabel, f.Label)
	assert.Equal(t, models.FieldText, f.Type)
	assert.Equal(t, DefaultFieldPlaceholder, f.Placeholder)
	assert.False(t, f.Required)

	cfg, _ := s.Get("1")
	assert.Equal(t, []string{"fullName", "title", "email", "phone", "gen-a"}, fieldIDs(cfg))
}

func TestAddFormField_Rejects(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, kv.NewMemory())

	var verr *ValidationError
	_, err := s.AddFormField(ctx, "1", models.FormField{ID: "email", Type: models.FieldEmail})
	assert.ErrorAs(t, err, &verr, "duplicate id")

	_, err = s.AddFormField(ctx, "1", models.FormField{ID: "dob", Type: "date"})
	assert.ErrorAs(t, err, &verr, "unknown kind")

	_, err = s.AddFormField(ctx, "9", models.FormField{})
	assert.ErrorIs(t, err, ErrNotFound)

	cfg, _ := s.Get("1")
	assert.Len(t, cfg.FormFields, 4)
}

func TestUpdateFormField(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, kv.NewMemory())

	label := "Mobile"
	required := false
	f, err := s.UpdateFormField(ctx, "1", "phone", FieldPatch{Label: &label, Required: &required})
	require.NoError(t, err)
	assert.Equal(t, "Mobile", f.Label)
	assert.Equal(t, models.FieldTel, f.Type)
	assert.False(t, f.Required)

	cfg, _ := s.Get("1")
	assert.Equal(t, f, cfg.FormFields[3])

	_, err = s.UpdateFormField(ctx, "1", "missing", FieldPatch{Label: &label})
	assert.ErrorIs(t, err, ErrFieldNotFound)

	bad := "checkbox"
	_, err = s.UpdateFormField(ctx, "1", "phone", FieldPatch{Type: &bad})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRemoveFormField_NeverEmpties(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, kv.NewMemory())

	for _, id := range []string{"title", "phone", "fullName"} {
		require.NoError(t, s.RemoveFormField(ctx, "1", id))
	}
	cfg, _ := s.Get("1")
	assert.Equal(t, []string{"email"}, fieldIDs(cfg))

	err := s.RemoveFormField(ctx, "1", "email")
	var perr *ProtectedStateError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, MsgLastFormField, perr.Reason)

	cfg, _ = s.Get("1")
	assert.Equal(t, []string{"email"}, fieldIDs(cfg))
}

func TestRemoveFormField_Unknown(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, kv.NewMemory())
	assert.ErrorIs(t, s.RemoveFormField(ctx, "1", "nope"), ErrFieldNotFound)
	assert.ErrorIs(t, s.RemoveFormField(ctx, "5", "email"), ErrNotFound)
}
