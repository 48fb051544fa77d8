/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"errors"
	"reflect"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/clx/apis"
	"dirpx.dev/clx/class"
	"dirpx.dev/clx/utils/ident"
)

var (
	// ErrNilClass is returned when a nil class is provided.
	ErrNilClass = errors.New("clx(registry): nil class provided")
	// ErrUnsealedClass is returned when an unsealed class is registered.
	// Classes must complete the registration phase before publication.
	ErrUnsealedClass = errors.New("clx(registry): class is not sealed")
	// ErrConflictingRegistration indicates an attempt to register a
	// different class under an already taken identifier while
	// redefinition is disabled.
	ErrConflictingRegistration = errors.New("clx(registry): conflicting class registration")
	// ErrNilType is returned when a nil reflect.Type is provided to BindType.
	ErrNilType = errors.New("clx(registry): nil reflect.Type provided")
	// ErrUnknownClass is returned when BindType references an identifier
	// with no published class.
	ErrUnknownClass = errors.New("clx(registry): unknown class identifier")
)

// Option configures a registry at construction time.
type Option func(*registry)

// WithLogger sets the logger used for registration-phase events.
// The read path never logs. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *registry) {
		if log != nil {
			r.log = log
		}
	}
}

// New constructs a Registry behaving according to cfg.
// Only AllowRedefine is used here.
func New(cfg apis.Config, opts ...Option) apis.Registry {
	r := &registry{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// registry is the process-wide class table. Reads go through sync.Map for
// lock-free lookups; writes are serialized by a mutex to keep the three
// indexes and the counter consistent.
type registry struct {
	// cfg is the configuration the registry was built with.
	cfg apis.Config
	// log receives registration-phase events.
	log *zap.Logger
	// mu guards write-side consistency and the counter.
	mu sync.Mutex
	// byID maps ident.ID to *class.Class.
	byID sync.Map
	// byName maps the display name (string) to *class.Class.
	byName sync.Map
	// byType maps reflect.Type to *class.Class for bound Go types.
	byType sync.Map
	// count tracks the number of registered classes.
	count int
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register publishes a sealed class under its identifier and display name.
// Re-registering the same class is idempotent. Registering a different
// class under a taken identifier fails unless AllowRedefine is set, in
// which case the previous class is replaced (and left to its own owner to
// release).
func (r *registry) Register(c *class.Class) error {
	if c == nil {
		return ErrNilClass
	}
	if !c.Sealed() {
		return ErrUnsealedClass
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.byID.Load(c.ID()); ok {
		if old.(*class.Class) == c {
			return nil // idempotent re-registration
		}
		if !r.cfg.AllowRedefine {
			return ErrConflictingRegistration
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	replaced := false
	if old, ok := r.byID.Load(c.ID()); ok {
		prev := old.(*class.Class)
		if prev == c {
			return nil
		}
		if !r.cfg.AllowRedefine {
			return ErrConflictingRegistration
		}
		r.byName.Delete(prev.Name())
		replaced = true
	}

	r.byID.Store(c.ID(), c)
	r.byName.Store(c.Name(), c)
	if !replaced {
		r.count++
	}

	if replaced {
		r.log.Warn("class redefined",
			zap.String("class", c.Name()),
			zap.Uint64("id", uint64(c.ID())),
		)
	} else {
		r.log.Debug("class registered",
			zap.String("class", c.Name()),
			zap.Uint64("id", uint64(c.ID())),
			zap.Int("bases", c.BaseCount()),
			zap.Int("properties", c.PropertyCount()),
			zap.Int("functions", c.FunctionCount()),
		)
	}
	return nil
}

// ByID returns the class registered under id.
func (r *registry) ByID(id ident.ID) (*class.Class, bool) {
	if v, ok := r.byID.Load(id); ok {
		return v.(*class.Class), true
	}
	return nil, false
}

// ByName returns the class registered under the display name.
func (r *registry) ByName(name string) (*class.Class, bool) {
	if name == "" {
		return nil, false
	}
	if v, ok := r.byName.Load(name); ok {
		return v.(*class.Class), true
	}
	return nil, false
}

// BindType associates a Go type with a published class for reflection-free
// ByType lookups.
func (r *registry) BindType(t reflect.Type, id ident.ID) error {
	if t == nil {
		return ErrNilType
	}
	c, ok := r.ByID(id)
	if !ok {
		return ErrUnknownClass
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType.Store(t, c)

	r.log.Debug("type bound",
		zap.String("class", c.Name()),
		zap.String("type", t.String()),
	)
	return nil
}

// ByType returns the class bound to t.
func (r *registry) ByType(t reflect.Type) (*class.Class, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := r.byType.Load(t); ok {
		return v.(*class.Class), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.byID.Range(func(_, value any) bool {
		c := value.(*class.Class)
		entries = append(entries, apis.Entry{
			ID:    c.ID(),
			Name:  c.Name(),
			Class: c,
		})
		return true
	})
	return entries
}

// Count returns the number of registered classes.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset unregisters every class and releases the handles each class owns.
// Release failures do not abort the teardown; they are aggregated and
// returned after every class has been processed.
func (r *registry) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	r.byID.Range(func(_, value any) bool {
		err = multierr.Append(err, value.(*class.Class).Release())
		return true
	})
	r.byID = sync.Map{}
	r.byName = sync.Map{}
	r.byType = sync.Map{}
	released := r.count
	r.count = 0

	r.log.Info("registry reset", zap.Int("released", released))
	return err
}
