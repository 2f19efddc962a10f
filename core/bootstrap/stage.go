package bootstrap

import (
	"context"
	"sync"
)

// Stage is a startup step that completes once, successfully or not.
type Stage struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newStage() *Stage {
	return &Stage{done: make(chan struct{})}
}

func (s *Stage) finish(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

// Done is closed when the stage completes.
func (s *Stage) Done() <-chan struct{} {
	return s.done
}

// Err returns the stage result. It is nil until Done is closed.
func (s *Stage) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the stage completes or ctx is cancelled.
func (s *Stage) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Startup exposes the independently awaitable startup stages.
type Startup struct {
	// Serving completes when the listener is bound.
	Serving *Stage
	// Database completes when the connection is established and migrated.
	Database *Stage
}
