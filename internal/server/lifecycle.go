// Package server owns the process lifecycle: connect the store, bind the
// listener, serve, and tear both down again.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

type State int32

const (
	StateStopped State = iota
	StateConnecting
	StateListening
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateListening:
		return "listening"
	default:
		return "stopped"
	}
}

var ErrAlreadyStarted = errors.New("lifecycle already started")

// Store is the connection the lifecycle opens before listening and closes
// before shutting the listener down.
type Store interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
}

// Lifecycle drives stopped → connecting → listening → stopped.
// Start and Stop are serialized; concurrent Starts get ErrAlreadyStarted.
type Lifecycle struct {
	store   Store
	handler http.Handler

	opMu  sync.Mutex
	state atomic.Int32

	srv      *http.Server
	listener net.Listener
	serveErr chan error
}

func New(store Store, handler http.Handler) *Lifecycle {
	return &Lifecycle{
		store:   store,
		handler: handler,
	}
}

func (l *Lifecycle) State() State {
	return State(l.state.Load())
}

// Addr is the bound listener address, nil unless listening.
func (l *Lifecycle) Addr() net.Addr {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	if l.listener == nil {
		return nil
	}
	return l.listener.Addr()
}

// Errors delivers the error that made Serve return unexpectedly. It is
// nil until the lifecycle has been started.
func (l *Lifecycle) Errors() <-chan error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	return l.serveErr
}

// Start connects the store and then binds addr. If binding fails the store
// is closed again so nothing is left half open.
func (l *Lifecycle) Start(ctx context.Context, addr string) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	if !l.state.CompareAndSwap(int32(StateStopped), int32(StateConnecting)) {
		return ErrAlreadyStarted
	}

	if err := l.store.Connect(ctx); err != nil {
		l.state.Store(int32(StateStopped))
		return fmt.Errorf("connect store: %w", err)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if closeErr := l.store.Close(context.WithoutCancel(ctx)); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close store after listen error")
		}
		l.state.Store(int32(StateStopped))
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:        l.handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	serveErr := make(chan error, 1)

	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			serveErr <- err
		}
		close(serveErr)
	}()

	l.srv = srv
	l.listener = ln
	l.serveErr = serveErr
	l.state.Store(int32(StateListening))

	log.Info().Str("addr", ln.Addr().String()).Msg("Server listening")
	return nil
}

// Stop closes the store, then gracefully shuts the HTTP server down within
// ctx. It returns once both are done. Stopping a stopped lifecycle is a no-op.
func (l *Lifecycle) Stop(ctx context.Context) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	if l.State() == StateStopped {
		return nil
	}

	log.Info().Msg("Closing server")

	storeErr := l.store.Close(ctx)
	if storeErr != nil {
		storeErr = fmt.Errorf("close store: %w", storeErr)
	}

	shutdownErr := l.srv.Shutdown(ctx)
	if shutdownErr != nil {
		// Deadline hit with requests still in flight: drop them.
		_ = l.srv.Close()
		shutdownErr = fmt.Errorf("shutdown http server: %w", shutdownErr)
	}

	l.srv = nil
	l.listener = nil
	l.state.Store(int32(StateStopped))

	return errors.Join(storeErr, shutdownErr)
}
