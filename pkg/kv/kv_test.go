package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providers(t *testing.T) map[string]Provider {
	t.Helper()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	return map[string]Provider{
		"memory": NewMemory(),
		"file":   f,
	}
}

func TestProvider_ReadWrite(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := p.Read(ctx, "plaxonic_webinars")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, p.Write(ctx, "plaxonic_webinars", `[{"id":"1"}]`))
			v, ok, err := p.Read(ctx, "plaxonic_webinars")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"1"}]`, v)

			require.NoError(t, p.Write(ctx, "plaxonic_webinars", `[]`))
			v, _, err = p.Read(ctx, "plaxonic_webinars")
			require.NoError(t, err)
			assert.Equal(t, `[]`, v)
		})
	}
}

func TestProvider_EmptyKey(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := p.Read(ctx, "")
			assert.ErrorIs(t, err, ErrEmptyKey)
			assert.ErrorIs(t, p.Write(ctx, "", "x"), ErrEmptyKey)
		})
	}
}

func TestMemory_FailureInjection(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Set("k", "v")
	assert.Equal(t, 0, m.Writes())

	boom := errors.New("quota exceeded")
	m.FailWrites(boom)
	assert.ErrorIs(t, m.Write(ctx, "k", "w"), boom)
	v, _, _ := m.Read(ctx, "k")
	assert.Equal(t, "v", v)

	m.FailWrites(nil)
	require.NoError(t, m.Write(ctx, "k", "w"))
	assert.Equal(t, 1, m.Writes())

	m.FailReads(boom)
	_, _, err := m.Read(ctx, "k")
	assert.ErrorIs(t, err, boom)
}

func TestFile_EscapesKeyAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Write(context.Background(), "a/b", "x"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a%2Fb.json", entries[0].Name())

	b, err := os.ReadFile(filepath.Join(dir, "a%2Fb.json"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))
}
