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

// Package member provides the stock implementations of the class member
// contracts: scalar and array properties, functions, and an
// arity/convertibility-matching constructor. The class core is agnostic to
// these types; it sees them only through the contracts in package class.
package member

import (
	"dirpx.dev/clx/class"
	cxmember "dirpx.dev/clx/cxapi/member"
	"dirpx.dev/clx/utils/ident"
)

// IDOf derives the stable member identifier for a display name. Equal
// names always yield equal identifiers, which is what keeps the sorted
// member tables stable across processes.
func IDOf(name string) ident.ID { return ident.Hash(name) }

// Getter reads the property value out of an opaque instance.
type Getter func(class.Object) any

// Setter writes a property value into an opaque instance.
type Setter func(class.Object, any)

// Simple is a scalar property backed by accessor functions.
type Simple struct {
	name string
	id   ident.ID
	get  Getter
	set  Setter
}

// Ensure Simple satisfies the property contract.
var _ class.Property = (*Simple)(nil)

// NewSimple creates a scalar property. A nil set makes the property
// effectively read-only; Set then is a no-op.
func NewSimple(name string, get Getter, set Setter) *Simple {
	return &Simple{name: name, id: IDOf(name), get: get, set: set}
}

// ID returns the stable identifier derived from the property name.
func (p *Simple) ID() ident.ID { return p.id }

// Name returns the display name of the property.
func (p *Simple) Name() string { return p.name }

// Kind reports the Simple member kind.
func (p *Simple) Kind() cxmember.Kind { return cxmember.Simple }

// Get reads the property value from obj.
func (p *Simple) Get(obj class.Object) any {
	if p.get == nil {
		return nil
	}
	return p.get(obj)
}

// Set writes v into obj. No-op for read-only properties.
func (p *Simple) Set(obj class.Object, v any) {
	if p.set != nil {
		p.set(obj, v)
	}
}

// Accept dispatches to the simple-property visitor callback.
func (p *Simple) Accept(v class.ClassVisitor) { v.VisitSimple(p) }

// Array is an indexed property. It reports a fixed size, or a dynamic one
// computed per instance through the size function.
type Array struct {
	name    string
	id      ident.ID
	dynamic bool
	size    int
	sizeOf  func(class.Object) int
}

// Ensure Array satisfies the array-property contract.
var _ class.ArrayProperty = (*Array)(nil)

// NewArray creates a fixed-size array property.
func NewArray(name string, size int) *Array {
	return &Array{name: name, id: IDOf(name), size: size}
}

// NewDynamicArray creates an array property whose size is computed per
// instance. sizeOf may be nil, in which case Size reports 0.
func NewDynamicArray(name string, sizeOf func(class.Object) int) *Array {
	return &Array{name: name, id: IDOf(name), dynamic: true, sizeOf: sizeOf}
}

// ID returns the stable identifier derived from the property name.
func (p *Array) ID() ident.ID { return p.id }

// Name returns the display name of the property.
func (p *Array) Name() string { return p.name }

// Kind reports the Array member kind.
func (p *Array) Kind() cxmember.Kind { return cxmember.Array }

// Dynamic reports whether the array can grow or shrink.
func (p *Array) Dynamic() bool { return p.dynamic }

// Size returns the declared size for fixed arrays and 0 for dynamic ones
// when no instance is at hand; see SizeOf.
func (p *Array) Size() int { return p.size }

// SizeOf returns the element count for a concrete instance.
func (p *Array) SizeOf(obj class.Object) int {
	if !p.dynamic {
		return p.size
	}
	if p.sizeOf == nil {
		return 0
	}
	return p.sizeOf(obj)
}

// Accept dispatches to the array-property visitor callback.
func (p *Array) Accept(v class.ClassVisitor) { v.VisitArray(p) }
