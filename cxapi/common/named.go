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

package common

// Named is the self-identification contract for values whose metadata is
// registered under a well-known class name.
//
// # Overview
//
// Named gives a Go value a fast, reflection-free path from "some instance"
// to "the class metadata describing it". When a value implements Named, the
// resolver consults ClassName() before any registry or reflection lookup,
// so the reported name wins over every other resolution strategy.
//
// The returned name is the same display name the class was declared under;
// resolution hashes it to the class identifier and looks the class up in
// the process-wide registry.
//
// # Contract
//
//   - ClassName MUST be deterministic for a given type over the process
//     lifetime (no spontaneous changes).
//   - ClassName MUST be safe for concurrent calls from multiple goroutines.
//   - ClassName MUST NOT perform blocking operations or I/O; it is called
//     on resolution hot paths and SHOULD return a constant or a
//     precomputed field.
//   - The returned name SHOULD correspond to a class that is actually
//     published; an unknown name simply makes resolution fall through to
//     the remaining strategies.
//
// # Usage
//
// A typical domain type binds itself to its declared class:
//
//	type Vec2 struct{ X, Y float64 }
//
//	func (Vec2) ClassName() string { return "geom.Vec2" }
//
// after which clx.Of(Vec2{}) yields the "geom.Vec2" class metadata without
// touching reflection.
type Named interface {
	// ClassName returns the display name of the class describing this value.
	ClassName() string
}
