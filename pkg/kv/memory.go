package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Provider. Data does not survive a restart.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]string
	writeErr error
	readErr  error
	writes   int
}

// NewMemory returns an empty in-memory provider.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Read returns the stored value for key.
func (m *Memory) Read(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.readErr != nil {
		return "", false, m.readErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Write stores value under key.
func (m *Memory) Write(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = value
	m.writes++
	return nil
}

// Set stores value without counting it as a write. Used to preload state.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
}

// FailWrites makes every subsequent Write return err (nil restores normal behaviour).
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.writeErr = err
	m.mu.Unlock()
}

// FailReads makes every subsequent Read return err (nil restores normal behaviour).
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()
}

// Writes returns the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
