// Package resource provides the generic async-load primitive shared by the
// dashboards: a loader, an activation gate, and a {data, loading, error}
// snapshot. Every (re)activation, dependency change, or manual refresh starts
// a new cycle identified by a generation counter; only the most recently
// started cycle may commit its result, so a slow early request can never
// clobber a faster later one.
package resource

import (
	"context"
	"errors"
	"sync"
)

// ErrInactive is returned by Refresh when the fetcher's activation condition
// does not currently hold.
var ErrInactive = errors.New("resource: fetcher is not active")

// State is one observable snapshot of a fetcher. After a failed cycle Err is
// set while Data keeps the last successful value (HasData stays true): the
// last-good value stays displayable behind an error banner until the next
// successful cycle replaces it.
type State[T any] struct {
	Data    T
	HasData bool
	Loading bool
	Err     error
}

// Options configures a fetcher.
type Options struct {
	// Deps are the dependency values whose change (shallow equality)
	// triggers a new cycle. Values must be comparable.
	Deps []any
	// Disabled starts the fetcher gated off. The zero value means enabled,
	// matching how nearly every call site wants it.
	Disabled bool
	// RequireAuth additionally gates activation on AuthFunc.
	RequireAuth bool
	// AuthFunc reports whether a credential is currently held. Required
	// when RequireAuth is set.
	AuthFunc func() bool
}

// Fetcher runs a loader whenever its activation condition or dependencies
// change. Safe for concurrent use.
type Fetcher[T any] struct {
	loader func(context.Context) (T, error)

	mu          sync.Mutex
	enabled     bool
	requireAuth bool
	authed      func() bool
	deps        []any
	depsDirty   bool
	active      bool
	gen         uint64
	data        T
	hasData     bool
	loading     bool
	err         error

	wg sync.WaitGroup
}

// New creates an idle fetcher. Nothing runs until the first Sync, SetDeps,
// SetEnabled, or Refresh call.
func New[T any](loader func(context.Context) (T, error), opts Options) *Fetcher[T] {
	f := &Fetcher[T]{
		loader:      loader,
		enabled:     !opts.Disabled,
		requireAuth: opts.RequireAuth,
		authed:      opts.AuthFunc,
		deps:        append([]any(nil), opts.Deps...),
	}
	return f
}

// Sync re-evaluates the activation condition: a deactivated fetcher clears
// its state, a newly activated one starts a cycle. Call it after anything
// that may have changed the auth gate (login, logout).
func (f *Fetcher[T]) Sync(ctx context.Context) {
	f.reconcile(ctx)
}

// SetEnabled flips the explicit activation gate.
func (f *Fetcher[T]) SetEnabled(ctx context.Context, enabled bool) {
	f.mu.Lock()
	f.enabled = enabled
	f.mu.Unlock()
	f.reconcile(ctx)
}

// SetDeps replaces the dependency values. A shallow inequality marks the
// fetcher dirty, and a new cycle starts if it is active.
func (f *Fetcher[T]) SetDeps(ctx context.Context, deps ...any) {
	f.mu.Lock()
	if !depsEqual(f.deps, deps) {
		f.deps = append([]any(nil), deps...)
		f.depsDirty = true
	}
	f.mu.Unlock()
	f.reconcile(ctx)
}

// Refresh replays the load cycle on demand, bypassing dependency change
// detection, and returns the loader's result so callers can chain UI
// feedback. The result is also committed to the snapshot unless a newer
// cycle started in the meantime.
func (f *Fetcher[T]) Refresh(ctx context.Context) (T, error) {
	var zero T
	f.mu.Lock()
	if !f.isActiveLocked() {
		f.mu.Unlock()
		return zero, ErrInactive
	}
	f.active = true
	gen := f.beginLocked()
	loader := f.loader
	f.mu.Unlock()

	defer f.wg.Done()
	value, err := loader(ctx)
	f.commit(gen, value, err)
	if err != nil {
		return zero, err
	}
	return value, nil
}

// Snapshot returns the current state.
func (f *Fetcher[T]) Snapshot() State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State[T]{
		Data:    f.data,
		HasData: f.hasData,
		Loading: f.loading,
		Err:     f.err,
	}
}

// Wait blocks until every cycle started so far has settled. Superseded
// cycles settle by being discarded.
func (f *Fetcher[T]) Wait() {
	f.wg.Wait()
}

func (f *Fetcher[T]) isActiveLocked() bool {
	if !f.enabled {
		return false
	}
	if f.requireAuth && (f.authed == nil || !f.authed()) {
		return false
	}
	return true
}

func (f *Fetcher[T]) reconcile(ctx context.Context) {
	f.mu.Lock()
	if !f.isActiveLocked() {
		// Deactivation supersedes any in-flight cycle and clears state so
		// stale authenticated data cannot leak into an unauthenticated view.
		f.gen++
		var zero T
		f.data = zero
		f.hasData = false
		f.err = nil
		f.loading = false
		f.active = false
		f.mu.Unlock()
		return
	}

	becameActive := !f.active
	f.active = true
	if !becameActive && !f.depsDirty {
		f.mu.Unlock()
		return
	}
	f.depsDirty = false
	gen := f.beginLocked()
	loader := f.loader
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		value, err := loader(ctx)
		f.commit(gen, value, err)
	}()
}

// beginLocked starts a new cycle under the held lock: bumps the generation,
// flips loading on, clears the previous error.
func (f *Fetcher[T]) beginLocked() uint64 {
	f.gen++
	f.loading = true
	f.err = nil
	f.wg.Add(1)
	return f.gen
}

// commit applies a settled cycle's result unless it was superseded.
func (f *Fetcher[T]) commit(gen uint64, value T, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	f.loading = false
	if err != nil {
		f.err = err
		return
	}
	f.data = value
	f.hasData = true
	f.err = nil
}

// depsEqual is shallow comparison by interface equality.
func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
