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

// Package clx provides a global, process-wide runtime class-metadata
// service.
//
// clx lets calling code discover, at runtime, the members of a type that
// was registered ahead of time — properties, functions, constructors,
// base-class relationships — and operate on instances of that type
// (construct, destroy, cast across the inheritance hierarchy, enumerate
// members) without compile-time knowledge of the concrete type.
//
// # Design
//
// The heart of clx is class.Class: the metadata record of one registered
// type. It stores members in lookup-optimized form (identifier-sorted
// tables for binary search, plus a registration-order view for
// properties), resolves members by stable identifier or positional index,
// computes safe pointer adjustments when casting between a class and any
// of its possibly indirect, possibly repeated bases, and drives
// polymorphic construction/destruction of opaque instances.
//
// Around the core, the package holds a read-mostly global snapshot (state)
// with four things:
//
//   - Config: registration and resolution knobs (redefinition policy,
//     publish-time validation strictness, type-unwrapping depth).
//
//   - Registry: the process-wide table of published classes, indexed by
//     identifier, display name, and (optionally) bound Go type.
//
//   - Resolver: a read-only object that answers "which class describes
//     this Go value or type?". The resolver tries multiple strategies, in
//     priority order:
//     1. If the value implements common.Named, use its ClassName().
//     2. If the value's Go type was bound via Registry.BindType, use that.
//     3. Otherwise, derive a stable "pkg.Type" name from the Go type and
//     look that up.
//     Resolver is expected to be concurrency-safe for reads.
//
//   - Builder: a pluggable factory that knows how to construct Registry
//     and Resolver instances for a given Config (and optional extension
//     data). The Builder is also allowed to reuse/migrate state from
//     previous Registry/Resolver instances.
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in.
//
// This means clx lookups are lock-free on the hot path:
//
//	cls, ok := clx.Lookup("geom.Vec2")
//	cls, ok = clx.Of(someValue)
//
// and concurrent callers always see a consistent snapshot.
//
// # Registration and lookup
//
// A class goes through two phases. During the single-threaded registration
// phase an external builder populates it:
//
//	vec2, err := clx.Declare("geom.Vec2").
//		Base(shape, 0).
//		Property(member.NewSimple("x", getX, setX)).
//		Property(member.NewSimple("y", getY, setY)).
//		Function(member.NewFunc("length", 0, length)).
//		Constructor(member.NewConstructor(params, factory)).
//		Destructor(dtor).
//		Publish()
//
// Publish seals the class. From then on it is immutable: every lookup,
// cast, visit, construct and destroy operation on it is safe for unlimited
// concurrent readers without locks.
//
// Casting uses the class inheritance graph. For a pointer typed as one
// class, ApplyOffset computes the byte adjustment that reinterprets it as
// a base (or derived) class, walking direct bases recursively; ties among
// multiple valid paths (diamond inheritance) break deterministically by
// base registration order. Unrelated classes are a hard error; nil
// pointers pass through untouched.
//
// # Concurrency model
//
// Reads (Lookup, LookupID, Of, OfType, Registry, Resolver) are wait-free:
// they load the current *state atomically and never take locks. The
// Registry and Resolver returned by that state must themselves be
// concurrency-safe for reads.
//
// Writes (SetConfig, SetBuilder, SetExt, SetRegistry, SetResolver, etc.)
// take a short build mutex, assemble a brand-new state struct, and then
// publish it via an atomic pointer swap. This gives the calling binary
// a predictable "last write wins" behavior without forcing per-lookup
// locking.
//
// The registration phase of an individual class (Declare ... Publish) is
// the only non-thread-safe window, and it is the declaring code's job to
// serialize it.
//
// # Pinning
//
// clx supports the concept of "pinning" a layer:
//
//   - When you call SetRegistry(reg), that exact Registry becomes the
//     process-wide registry and is considered pinned. Further calls to
//     SetConfig() will not attempt to rebuild a new Registry until you
//     explicitly UnpinRegistry().
//
//   - When you call SetResolver(res), that Resolver is pinned and will
//     not be rebuilt automatically until UnpinResolver().
//
// Pinning is there for advanced scenarios where you want full control over
// one layer while still letting other layers evolve — for example, a test
// harness that locks a synthetic registry of a handful of classes while
// the rest of the system keeps its configuration.
//
// # Scope
//
// clx is intentionally small. It does not define how instances are laid
// out in storage, does not serialize anything, and is not an ORM. It only
// solves one job:
//
//	"Given a registered type, expose its members, relationships, and
//	 lifecycle operations to code that has no compile-time knowledge
//	 of it."
//
// Everything else (value containers, error presentation, higher-level
// registration conveniences) belongs to the packages around the core or to
// the embedding binary.
package clx
