package kv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeObjects) GetObjectBytes(_ context.Context, bucket, key string) (io.ReadCloser, bool, error) {
	b, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, false, nil
	}
	return io.NopCloser(bytes.NewReader(b)), true, nil
}

func (f *fakeObjects) PutObjectBytes(_ context.Context, bucket, key, contentType string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[bucket+"/"+key] = append([]byte(nil), body...)
	return nil
}

func TestS3_ReadWrite(t *testing.T) {
	ctx := context.Background()
	objs := &fakeObjects{objects: map[string][]byte{}}
	p := NewS3(objs, "state", "/landing/")

	_, ok, err := p.Read(ctx, "plaxonic_webinars")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Write(ctx, "plaxonic_webinars", `[]`))
	assert.Contains(t, objs.objects, "state/landing/plaxonic_webinars.json")

	v, ok, err := p.Read(ctx, "plaxonic_webinars")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestS3_WriteError(t *testing.T) {
	boom := errors.New("access denied")
	p := NewS3(&fakeObjects{objects: map[string][]byte{}, putErr: boom}, "state", "")
	assert.ErrorIs(t, p.Write(context.Background(), "k", "v"), boom)
}
