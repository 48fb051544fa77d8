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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"

	"dirpx.dev/clx/apis"
	"dirpx.dev/clx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after
	// unwrapping containers) does not contain a named type (e.g.,
	// anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("reflect: type has no derivable name")
)

// DeriveName computes the candidate class name for a Go type: the nearest
// named type reachable by unwrapping containers, formatted as "pkg.Type"
// (generic instantiation parameters stripped). Builtin types, which have no
// package path, derive as their bare name.
//
// Unwrapping policy, applied up to cfg.MaxUnwrap times:
//   - ptr/slice/array/chan -> element type
//   - map[K]V              -> V if V leads to a named type, else K
//   - anything else        -> named: done; unnamed: ErrReflectTypeNotNamed
//
// If MaxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func DeriveName(t reflect.Type, cfg apis.Config) (string, error) {
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}
	base, err := nearestNamed(t, depth)
	if err != nil {
		return "", err
	}
	name := base.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if p := base.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}
	return name, nil
}

// nearestNamed unwraps t until a named type is found or the depth budget
// is exhausted.
func nearestNamed(t reflect.Type, depth int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if t.Name() != "" {
		return t, nil
	}
	if depth == 0 {
		return nil, ErrReflectTypeNotNamed
	}

	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
		return nearestNamed(t.Elem(), depth-1)
	case reflect.Map:
		// Prefer the value side; fall back to the key side.
		if base, err := nearestNamed(t.Elem(), depth-1); err == nil {
			return base, nil
		}
		return nearestNamed(t.Key(), depth-1)
	default:
		return nil, ErrReflectTypeNotNamed
	}
}
