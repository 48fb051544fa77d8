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

package member

import (
	"reflect"
	"unsafe"

	"dirpx.dev/clx/class"
)

// Factory allocates a new instance from an argument list that has already
// been matched against the constructor signature.
type Factory func(class.Args) unsafe.Pointer

// Ctor is the stock constructor: it matches on arity plus per-argument
// convertibility to the declared parameter types, and delegates allocation
// to a factory function. The first-match policy among several constructors
// belongs to class.Construct, not here.
type Ctor struct {
	params  []reflect.Type
	factory Factory
	release func() error
}

// Ensure Ctor satisfies the constructor contract.
var _ class.Constructor = (*Ctor)(nil)

// NewConstructor creates a constructor expecting exactly the given
// parameter types, in order.
func NewConstructor(params []reflect.Type, factory Factory) *Ctor {
	return &Ctor{params: params, factory: factory}
}

// OnRelease registers a hook invoked when the owning class is torn down.
// It returns the receiver for chaining.
func (c *Ctor) OnRelease(f func() error) *Ctor {
	c.release = f
	return c
}

// Matches reports whether args satisfy the signature: same arity, and each
// argument's dynamic type convertible to the corresponding parameter type.
// An untyped nil argument matches only nilable parameter kinds.
func (c *Ctor) Matches(args class.Args) bool {
	if len(args) != len(c.params) {
		return false
	}
	for i, arg := range args {
		param := c.params[i]
		if arg == nil {
			switch param.Kind() {
			case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map,
				reflect.Chan, reflect.Func, reflect.UnsafePointer:
				continue
			default:
				return false
			}
		}
		if !reflect.TypeOf(arg).ConvertibleTo(param) {
			return false
		}
	}
	return true
}

// Create allocates a new instance from args via the factory.
func (c *Ctor) Create(args class.Args) unsafe.Pointer {
	if c.factory == nil {
		return nil
	}
	return c.factory(args)
}

// Release runs the teardown hook, if any. Implements class.Releaser.
func (c *Ctor) Release() error {
	if c.release == nil {
		return nil
	}
	return c.release()
}
