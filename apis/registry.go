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

package apis

import (
	"reflect"

	"dirpx.dev/clx/class"
	"dirpx.dev/clx/utils/ident"
)

// Registry is the process-wide table of published class metadata.
// Read operations must be safe for unlimited concurrent callers; writes
// (Register, BindType, Reset) belong to the registration phase and are
// serialized by implementations.
type Registry interface {
	// Register publishes a sealed class. Implementations should be
	// idempotent for the same class; conflicting re-registrations fail
	// unless the configuration allows redefinition.
	Register(c *class.Class) error
	// ByID returns the class registered under the given identifier.
	ByID(id ident.ID) (*class.Class, bool)
	// ByName returns the class registered under the given display name.
	ByName(name string) (*class.Class, bool)
	// BindType associates a Go type with an already registered class,
	// enabling reflection-free ByType lookups.
	BindType(t reflect.Type, id ident.ID) error
	// ByType returns the class bound to the given Go type.
	ByType(t reflect.Type) (*class.Class, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered classes.
	Count() int
	// Reset unregisters every class, releasing the handles each class owns.
	// Individual release failures are aggregated into the returned error.
	Reset() error
}

// Entry is a single published class in a Registry snapshot.
type Entry struct {
	// ID is the class identifier.
	ID ident.ID
	// Name is the class display name.
	Name string
	// Class is the metadata record.
	Class *class.Class
}
