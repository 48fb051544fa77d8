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

package class

import (
	"unsafe"

	cxmember "dirpx.dev/clx/cxapi/member"
	"dirpx.dev/clx/utils/ident"
)

// Member is the capability contract shared by every registered member.
// The class core holds and indexes members exclusively through this
// contract; concrete implementations live outside the core.
type Member interface {
	// ID returns the stable identifier the member is indexed under.
	// It must never change once the owning class is sealed.
	ID() ident.ID
	// Name returns the display name of the member.
	Name() string
	// Kind reports which concrete variant of the closed member set this is.
	Kind() cxmember.Kind
}

// Property is a readable/writable member slot of a class.
type Property interface {
	Member
	// Accept performs double dispatch: the property calls back the visitor
	// method matching its concrete kind.
	Accept(ClassVisitor)
}

// ArrayProperty is a property exposing an indexed sequence of values.
type ArrayProperty interface {
	Property
	// Dynamic reports whether the array can grow or shrink.
	Dynamic() bool
	// Size returns the current number of elements.
	Size() int
}

// Function is a callable member of a class.
type Function interface {
	Member
	// Arity returns the number of arguments the function expects.
	Arity() int
	// Accept performs double dispatch: the function calls back the visitor
	// method for functions.
	Accept(ClassVisitor)
}

// ClassVisitor receives every member of a class exactly once during Visit.
// One callback exists per concrete member kind; properties are delivered
// before functions.
type ClassVisitor interface {
	// VisitSimple is called for each scalar property.
	VisitSimple(Property)
	// VisitArray is called for each array property.
	VisitArray(ArrayProperty)
	// VisitFunction is called for each function.
	VisitFunction(Function)
}

// Constructor creates opaque instances of the class it is registered on.
// A class exclusively owns its constructors.
type Constructor interface {
	// Matches reports whether args satisfy this constructor's signature
	// (arity and per-argument convertibility).
	Matches(args Args) bool
	// Create instantiates the class from args and returns the raw address
	// of the new instance. It is only called after Matches returned true.
	Create(args Args) unsafe.Pointer
}

// Releaser is an optional contract for owned handles (constructors,
// properties, functions) that hold releasable resources. Handles that do
// not implement it are simply dropped at class teardown.
type Releaser interface {
	// Release frees resources held by the handle. Called exactly once.
	Release() error
}

// Destructor releases an opaque instance previously produced by one of the
// owning class's constructors.
type Destructor func(Object)
