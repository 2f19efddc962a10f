package database

import (
	"errors"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"
)

// ErrNotReady is returned while the database connection has not been established.
var ErrNotReady = errors.New("database is not ready")

// Provider gives request handlers access to the database.
type Provider interface {
	DB() (*gorm.DB, error)
}

// Handle is a Provider whose connection is published once, after startup has
// connected. Before that DB returns ErrNotReady.
type Handle struct {
	db    atomic.Pointer[gorm.DB]
	ready chan struct{}
	once  sync.Once
}

// NewHandle creates an empty handle.
func NewHandle() *Handle {
	return &Handle{ready: make(chan struct{})}
}

// Set publishes the connection. Only the first call has an effect.
func (h *Handle) Set(db *gorm.DB) {
	h.once.Do(func() {
		h.db.Store(db)
		close(h.ready)
	})
}

// DB returns the connection or ErrNotReady.
func (h *Handle) DB() (*gorm.DB, error) {
	if db := h.db.Load(); db != nil {
		return db, nil
	}
	return nil, ErrNotReady
}

// Ready is closed once the connection is published.
func (h *Handle) Ready() <-chan struct{} {
	return h.ready
}

// Close closes the published connection, if any.
func (h *Handle) Close() error {
	if db := h.db.Load(); db != nil {
		return Close(db)
	}
	return nil
}

// Static wraps an already open connection as a Provider.
func Static(db *gorm.DB) Provider {
	return staticProvider{db: db}
}

type staticProvider struct {
	db *gorm.DB
}

func (p staticProvider) DB() (*gorm.DB, error) {
	return p.db, nil
}
