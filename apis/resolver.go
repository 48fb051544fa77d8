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
)

// Resolver answers "which published class describes this Go value or type?".
// Typical chain: NamedStrategy -> TypeStrategy -> ReflectStrategy.
type Resolver interface {
	// Resolve returns the class metadata for v, or false if no strategy
	// could associate v with a published class.
	Resolve(v any, cfg Config) (*class.Class, bool)

	// ResolveType returns the class metadata for t, or false if no strategy
	// could associate t with a published class.
	ResolveType(t reflect.Type, cfg Config) (*class.Class, bool)
}
