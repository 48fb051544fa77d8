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

package strategy

import (
	"reflect"
	"sync"

	"dirpx.dev/clx/apis"
	"dirpx.dev/clx/class"
	uref "dirpx.dev/clx/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives a "pkg.Type"
// name from the Go type via utils/reflect.DeriveName (memoized) and looks
// that name up in the registry.
func NewReflectStrategy(reg apis.Registry) apis.Strategy {
	return &reflectStrategy{reg: reg}
}

// reflectStrategy is the universal fallback. It only succeeds for classes
// that were declared under the derived "pkg.Type" convention.
type reflectStrategy struct {
	reg apis.Registry
}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects the config knob that affects
// name derivation.
type cacheKey struct {
	t         reflect.Type
	maxUnwrap int16
}

// derivedNameCache caches derived names by (type, config knobs).
var derivedNameCache sync.Map // key: cacheKey, val: string

// TryResolve derives the candidate class name for v's type and looks it up.
func (s *reflectStrategy) TryResolve(v any, cfg apis.Config) (*class.Class, bool) {
	if v == nil {
		return nil, false
	}
	return s.byType(reflect.TypeOf(v), cfg)
}

// TryResolveType derives the candidate class name for t and looks it up.
func (s *reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (*class.Class, bool) {
	if t == nil {
		return nil, false
	}
	return s.byType(t, cfg)
}

// byType resolves the class for t with memoized name derivation.
func (s *reflectStrategy) byType(t reflect.Type, cfg apis.Config) (*class.Class, bool) {
	if s.reg == nil {
		return nil, false
	}

	key := cacheKey{t: t, maxUnwrap: int16(cfg.MaxUnwrap)}
	if v, ok := derivedNameCache.Load(key); ok {
		return s.reg.ByName(v.(string))
	}

	name, err := uref.DeriveName(t, cfg)
	if err != nil {
		name = ""
	}
	derivedNameCache.Store(key, name)
	return s.reg.ByName(name)
}
