// Package kv defines the durable key/value provider the webinar store persists into,
// plus the backends it can run on.
package kv

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned when a provider is called with an empty key.
var ErrEmptyKey = errors.New("kv: empty key")

// Provider is a durable string key/value store. Read reports ok=false when the key is absent.
type Provider interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
}
