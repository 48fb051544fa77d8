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

package builder

import (
	"errors"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/clx/apis"
	"dirpx.dev/clx/class"
	"dirpx.dev/clx/config"
	"dirpx.dev/clx/utils/ident"
)

var (
	// ErrNilRegistry is returned when a class is declared against a nil registry.
	ErrNilRegistry = errors.New("clx(builder): nil registry provided")
	// ErrNoDestructor is returned by strict publishing when a class
	// registers constructors without binding a destructor.
	ErrNoDestructor = errors.New("clx(builder): constructors registered without a destructor")
)

// DeclareOption configures a class declaration.
type DeclareOption func(*ClassBuilder)

// WithID overrides the identifier derived from the class name.
func WithID(id ident.ID) DeclareOption {
	return func(cb *ClassBuilder) {
		cb.id = id
	}
}

// WithConfig overrides the configuration used for publish-time validation.
func WithConfig(cfg apis.Config) DeclareOption {
	return func(cb *ClassBuilder) {
		cb.cfg = cfg
	}
}

// WithLogger sets the logger used for declaration events.
// Defaults to a no-op logger.
func WithLogger(log *zap.Logger) DeclareOption {
	return func(cb *ClassBuilder) {
		if log != nil {
			cb.log = log
		}
	}
}

// Declare starts the registration of a new class under the given display
// name. The identifier defaults to the hash of the name. Population methods
// record the first error encountered and Publish reports it; this keeps
// call sites fluent:
//
//	cls, err := builder.Declare(reg, "geom.Vec2").
//		Property(member.NewSimple("x", getX, setX)).
//		Property(member.NewSimple("y", getY, setY)).
//		Constructor(ctor).
//		Destructor(dtor).
//		Publish()
//
// A ClassBuilder is single-use and not safe for concurrent use; the
// registration phase is serialized by the caller.
func Declare(reg apis.Registry, name string, opts ...DeclareOption) *ClassBuilder {
	cb := &ClassBuilder{
		reg:  reg,
		name: name,
		id:   ident.Hash(name),
		cfg:  config.DefaultConfig(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cb)
	}
	cb.cls = class.New(cb.id, name)
	if reg == nil {
		cb.err = ErrNilRegistry
	} else if err := ident.Validate(name); err != nil {
		cb.err = err
	}
	return cb
}

// ClassBuilder populates a class record during the registration phase and
// publishes it to a registry.
type ClassBuilder struct {
	reg   apis.Registry
	cfg   apis.Config
	log   *zap.Logger
	name  string
	id    ident.ID
	cls   *class.Class
	bind  []reflect.Type
	ctors int
	dtor  bool
	err   error
}

// Base links a direct base class at the given byte offset.
func (cb *ClassBuilder) Base(base *class.Class, offset int) *ClassBuilder {
	if cb.err == nil {
		cb.err = cb.cls.AddBase(base, offset)
	}
	return cb
}

// Property adds a property member.
func (cb *ClassBuilder) Property(p class.Property) *ClassBuilder {
	if cb.err == nil {
		if cb.cfg.StrictPublish && p != nil {
			if err := ident.Validate(p.Name()); err != nil {
				cb.err = err
				return cb
			}
		}
		cb.err = cb.cls.AddProperty(p)
	}
	return cb
}

// Function adds a function member.
func (cb *ClassBuilder) Function(f class.Function) *ClassBuilder {
	if cb.err == nil {
		if cb.cfg.StrictPublish && f != nil {
			if err := ident.Validate(f.Name()); err != nil {
				cb.err = err
				return cb
			}
		}
		cb.err = cb.cls.AddFunction(f)
	}
	return cb
}

// Constructor adds an owned constructor. Registration order is the
// first-match resolution order.
func (cb *ClassBuilder) Constructor(c class.Constructor) *ClassBuilder {
	if cb.err == nil {
		if cb.err = cb.cls.AddConstructor(c); cb.err == nil {
			cb.ctors++
		}
	}
	return cb
}

// Destructor binds the destructor invoked by Destroy.
func (cb *ClassBuilder) Destructor(d class.Destructor) *ClassBuilder {
	if cb.err == nil {
		if cb.err = cb.cls.SetDestructor(d); cb.err == nil {
			cb.dtor = true
		}
	}
	return cb
}

// Type binds a Go type to the class at publish time, enabling
// reflection-free resolution of instances.
func (cb *ClassBuilder) Type(t reflect.Type) *ClassBuilder {
	if cb.err == nil && t != nil {
		cb.bind = append(cb.bind, t)
	}
	return cb
}

// Publish seals the class, validates it according to the configuration, and
// registers it (plus any Go-type bindings). It returns the published class
// or the first error recorded during population.
func (cb *ClassBuilder) Publish() (*class.Class, error) {
	if cb.err != nil {
		return nil, cb.err
	}
	if cb.cfg.StrictPublish && cb.ctors > 0 && !cb.dtor {
		return nil, ErrNoDestructor
	}
	if err := cb.cls.Seal(); err != nil {
		return nil, err
	}
	if err := cb.reg.Register(cb.cls); err != nil {
		return nil, err
	}
	for _, t := range cb.bind {
		if err := cb.reg.BindType(t, cb.id); err != nil {
			return nil, err
		}
	}

	cb.log.Debug("class published",
		zap.String("class", cb.name),
		zap.Uint64("id", uint64(cb.id)),
		zap.Int("bases", cb.cls.BaseCount()),
		zap.Int("properties", cb.cls.PropertyCount()),
		zap.Int("functions", cb.cls.FunctionCount()),
		zap.Int("constructors", cb.cls.ConstructorCount()),
	)
	return cb.cls, nil
}
