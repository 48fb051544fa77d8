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

// Package class implements the metadata core of the clx reflection layer:
// the container that stores a registered type's members in lookup-optimized
// form, resolves them by identifier or position, computes pointer
// adjustments across the inheritance graph, and drives polymorphic
// construction and destruction of opaque instances.
//
// A Class is populated during a single-threaded registration phase and then
// sealed. Once sealed it is immutable: every lookup, cast, visit, construct
// and destroy operation is safe for unlimited concurrent callers without
// locks.
package class

import (
	"sort"
	"sync"
	"unsafe"

	"go.uber.org/multierr"

	"dirpx.dev/clx/utils/ident"
)

// BaseLink ties a class to one of its direct bases. Offset is the signed
// byte delta to add to a pointer typed as the owning class to reinterpret
// it as the base. The Base reference is non-owning: base classes live in
// the process-wide registry with their own lifecycle.
type BaseLink struct {
	// Base is the direct base class.
	Base *Class
	// Offset is the byte delta from the owning class to Base.
	Offset int
}

// funcEntry pairs a function with the identifier it is sorted under.
type funcEntry struct {
	id ident.ID
	fn Function
}

// propEntry pairs a property with the identifier it is sorted under.
type propEntry struct {
	id   ident.ID
	prop Property
}

// Class is the metadata record of one registered type.
//
// The two member tables are kept sorted by identifier at all times
// (insertion is sorted, and no mutation happens after Seal), enabling
// binary-search lookup. Properties additionally keep a registration-order
// view; both views index the same underlying handle set.
type Class struct {
	id   ident.ID
	name string

	bases []BaseLink
	ctors []Constructor
	dtor  Destructor

	// funcs is sorted ascending by id.
	funcs []funcEntry
	// propsByID is sorted ascending by id; propsByIndex preserves
	// registration order. Permutations of the same handle set.
	propsByID    []propEntry
	propsByIndex []Property

	sealed bool

	releaseOnce sync.Once
	releaseErr  error
}

// New creates an empty class record for the given identity. The record is
// mutable until Seal is called; population is the registration builder's
// job and must be serialized externally.
func New(id ident.ID, name string) *Class {
	return &Class{id: id, name: name}
}

// ID returns the stable numeric identifier of the class.
func (c *Class) ID() ident.ID { return c.id }

// Name returns the display name of the class.
func (c *Class) Name() string { return c.name }

// Equal reports whether c and other describe the same registered type.
// Identifier equality is the sole criterion.
func (c *Class) Equal(other *Class) bool {
	return other != nil && c.id == other.id
}

// Sealed reports whether the registration phase has completed.
func (c *Class) Sealed() bool { return c.sealed }

// ---------------------------------------------------------------------------
// Registration phase. Not safe for concurrent use; the external builder
// must serialize population and call Seal before publishing the class.

// AddBase appends a direct base link. Order is registration order and is
// significant only as the tie-break for diamond topologies.
func (c *Class) AddBase(base *Class, offset int) error {
	if c.sealed {
		return ErrSealed
	}
	if base == nil {
		return ErrNilBase
	}
	c.bases = append(c.bases, BaseLink{Base: base, Offset: offset})
	return nil
}

// AddConstructor appends an owned constructor. Registration order decides
// first-match resolution in Construct.
func (c *Class) AddConstructor(ctor Constructor) error {
	if c.sealed {
		return ErrSealed
	}
	if ctor == nil {
		return ErrNilConstructor
	}
	c.ctors = append(c.ctors, ctor)
	return nil
}

// SetDestructor binds the destructor invoked by Destroy.
func (c *Class) SetDestructor(d Destructor) error {
	if c.sealed {
		return ErrSealed
	}
	if d == nil {
		return ErrNilDestructor
	}
	c.dtor = d
	return nil
}

// AddFunction inserts a function into the id-sorted table.
func (c *Class) AddFunction(fn Function) error {
	if c.sealed {
		return ErrSealed
	}
	if fn == nil {
		return ErrNilMember
	}
	id := fn.ID()
	i := sort.Search(len(c.funcs), func(i int) bool { return c.funcs[i].id >= id })
	if i < len(c.funcs) && c.funcs[i].id == id {
		return ErrDuplicateMember
	}
	c.funcs = append(c.funcs, funcEntry{})
	copy(c.funcs[i+1:], c.funcs[i:])
	c.funcs[i] = funcEntry{id: id, fn: fn}
	return nil
}

// AddProperty inserts a property into both views: sorted-by-id and
// registration order.
func (c *Class) AddProperty(prop Property) error {
	if c.sealed {
		return ErrSealed
	}
	if prop == nil {
		return ErrNilMember
	}
	id := prop.ID()
	i := sort.Search(len(c.propsByID), func(i int) bool { return c.propsByID[i].id >= id })
	if i < len(c.propsByID) && c.propsByID[i].id == id {
		return ErrDuplicateMember
	}
	c.propsByID = append(c.propsByID, propEntry{})
	copy(c.propsByID[i+1:], c.propsByID[i:])
	c.propsByID[i] = propEntry{id: id, prop: prop}
	c.propsByIndex = append(c.propsByIndex, prop)
	return nil
}

// Seal ends the registration phase. It re-verifies the table invariants
// (strictly ascending identifiers, both property views over the same
// handle set) and marks the class immutable. Sealing a sealed class is a
// no-op.
func (c *Class) Seal() error {
	if c.sealed {
		return nil
	}
	for i := 1; i < len(c.funcs); i++ {
		if c.funcs[i-1].id >= c.funcs[i].id {
			return ErrDuplicateMember
		}
	}
	for i := 1; i < len(c.propsByID); i++ {
		if c.propsByID[i-1].id >= c.propsByID[i].id {
			return ErrDuplicateMember
		}
	}
	if len(c.propsByID) != len(c.propsByIndex) {
		return ErrDuplicateMember
	}
	c.sealed = true
	return nil
}

// ---------------------------------------------------------------------------
// Base-class table.

// BaseCount returns the number of direct bases.
func (c *Class) BaseCount() int { return len(c.bases) }

// Base returns the direct base at index. Indirect bases are reached by
// recursing through a direct base's own table.
func (c *Class) Base(index int) (*Class, error) {
	if index < 0 || index >= len(c.bases) {
		return nil, &OutOfRangeError{Index: index, Size: len(c.bases)}
	}
	return c.bases[index].Base, nil
}

// ---------------------------------------------------------------------------
// Function table.

// FunctionCount returns the number of registered functions.
func (c *Class) FunctionCount() int { return len(c.funcs) }

// searchFunc binary-searches the sorted function table for id and reports
// the insertion point plus whether an exact match is there.
func (c *Class) searchFunc(id ident.ID) (int, bool) {
	i := sort.Search(len(c.funcs), func(i int) bool { return c.funcs[i].id >= id })
	return i, i < len(c.funcs) && c.funcs[i].id == id
}

// HasFunction reports whether a function with the exact id is registered.
func (c *Class) HasFunction(id ident.ID) bool {
	_, ok := c.searchFunc(id)
	return ok
}

// FunctionByIndex returns the function at the given position of the
// id-sorted table. The index is over sorted order, not registration order.
func (c *Class) FunctionByIndex(index int) (Function, error) {
	if index < 0 || index >= len(c.funcs) {
		return nil, &OutOfRangeError{Index: index, Size: len(c.funcs)}
	}
	return c.funcs[index].fn, nil
}

// FunctionByID returns the function registered under id. Absence is a
// caller-facing contract violation; use TryFunctionByID when absence is a
// normal outcome.
func (c *Class) FunctionByID(id ident.ID) (Function, error) {
	if i, ok := c.searchFunc(id); ok {
		return c.funcs[i].fn, nil
	}
	return nil, &FunctionNotFoundError{ID: id, Class: c.name}
}

// TryFunctionByID is the non-failing counterpart of FunctionByID.
func (c *Class) TryFunctionByID(id ident.ID) (Function, bool) {
	if i, ok := c.searchFunc(id); ok {
		return c.funcs[i].fn, true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Property table. Mirrors the function table, with a second view: index
// access iterates registration order, id access binary-searches the sorted
// view.

// PropertyCount returns the number of registered properties.
func (c *Class) PropertyCount() int { return len(c.propsByID) }

// searchProp binary-searches the sorted property view for id.
func (c *Class) searchProp(id ident.ID) (int, bool) {
	i := sort.Search(len(c.propsByID), func(i int) bool { return c.propsByID[i].id >= id })
	return i, i < len(c.propsByID) && c.propsByID[i].id == id
}

// HasProperty reports whether a property with the exact id is registered.
func (c *Class) HasProperty(id ident.ID) bool {
	_, ok := c.searchProp(id)
	return ok
}

// PropertyByIndex returns the property at the given position of the
// registration-order view.
func (c *Class) PropertyByIndex(index int) (Property, error) {
	if index < 0 || index >= len(c.propsByIndex) {
		return nil, &OutOfRangeError{Index: index, Size: len(c.propsByIndex)}
	}
	return c.propsByIndex[index], nil
}

// PropertyByID returns the property registered under id. Absence is a
// caller-facing contract violation; use TryPropertyByID when absence is a
// normal outcome.
func (c *Class) PropertyByID(id ident.ID) (Property, error) {
	if i, ok := c.searchProp(id); ok {
		return c.propsByID[i].prop, nil
	}
	return nil, &PropertyNotFoundError{ID: id, Class: c.name}
}

// TryPropertyByID is the non-failing counterpart of PropertyByID.
func (c *Class) TryPropertyByID(id ident.ID) (Property, bool) {
	if i, ok := c.searchProp(id); ok {
		return c.propsByID[i].prop, true
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Construction and destruction.

// ConstructorCount returns the number of registered constructors.
func (c *Class) ConstructorCount() int { return len(c.ctors) }

// Construct scans constructors in registration order and invokes the first
// whose signature matches args. Registration order decides among multiple
// matches, not argument-type specificity. No match yields Nothing; failure
// to construct is a normal, queryable outcome, not an error.
func (c *Class) Construct(args Args) Object {
	for _, ctor := range c.ctors {
		if ctor.Matches(args) {
			addr := ctor.Create(args)
			if addr == nil {
				return Nothing
			}
			return NewObject(addr, c)
		}
	}
	return Nothing
}

// Destroy invokes the bound destructor on obj. The instance is assumed to
// belong to this class; that is the caller's responsibility.
func (c *Class) Destroy(obj Object) {
	if c.dtor != nil {
		c.dtor(obj)
	}
}

// ---------------------------------------------------------------------------
// Visitation.

// Visit delivers every property first, in registration (index) order, then
// every function, in sorted-by-id order, each exactly once via Accept
// double dispatch. Callers may rely on the properties-before-functions
// ordering.
func (c *Class) Visit(v ClassVisitor) {
	for _, p := range c.propsByIndex {
		p.Accept(v)
	}
	for i := range c.funcs {
		c.funcs[i].fn.Accept(v)
	}
}

// ---------------------------------------------------------------------------
// Cross-hierarchy offsets and casts.

// OffsetTo returns the byte offset to add to a pointer typed as c to
// reinterpret it as target, walking direct bases recursively. The first
// direct base (in table order) whose subtree contains target wins; diamond
// topologies therefore resolve deterministically by registration order.
// The second return is false when target is neither c nor any of its
// (possibly indirect) bases.
func (c *Class) OffsetTo(target *Class) (int, bool) {
	if target == nil {
		return 0, false
	}
	if c == target || c.id == target.id {
		return 0, true
	}
	for i := range c.bases {
		link := &c.bases[i]
		if off, ok := link.Base.OffsetTo(target); ok {
			return link.Offset + off, true
		}
	}
	return 0, false
}

// ApplyOffset is the cast primitive. A nil pointer passes through
// unchanged, whatever the relationship. Otherwise the upcast direction is
// tried first (target as a base of c, offset added), then the downcast
// direction (c as a base of target, target's offset subtracted). Two
// unrelated classes are a hard error, not a nil result.
func (c *Class) ApplyOffset(ptr unsafe.Pointer, target *Class) (unsafe.Pointer, error) {
	if ptr == nil {
		return nil, nil
	}
	if target == nil {
		return nil, &UnrelatedClassesError{From: c.name}
	}
	if off, ok := c.OffsetTo(target); ok {
		return unsafe.Add(ptr, off), nil
	}
	if off, ok := target.OffsetTo(c); ok {
		return unsafe.Add(ptr, -off), nil
	}
	return nil, &UnrelatedClassesError{From: c.name, To: target.name}
}

// ---------------------------------------------------------------------------
// Teardown.

// Release tears down the handles the class exclusively owns: constructors,
// properties and functions implementing Releaser are released exactly once,
// on every exit path, with individual failures aggregated. Base links are
// left untouched; the referenced classes belong to the registry.
func (c *Class) Release() error {
	c.releaseOnce.Do(func() {
		var err error
		for _, ctor := range c.ctors {
			if r, ok := ctor.(Releaser); ok {
				err = multierr.Append(err, r.Release())
			}
		}
		for _, e := range c.propsByID {
			if r, ok := e.prop.(Releaser); ok {
				err = multierr.Append(err, r.Release())
			}
		}
		for _, e := range c.funcs {
			if r, ok := e.fn.(Releaser); ok {
				err = multierr.Append(err, r.Release())
			}
		}
		c.ctors = nil
		c.dtor = nil
		c.funcs = nil
		c.propsByID = nil
		c.propsByIndex = nil
		c.releaseErr = err
	})
	return c.releaseErr
}
