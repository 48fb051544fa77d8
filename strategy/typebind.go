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

	"dirpx.dev/clx/apis"
	"dirpx.dev/clx/class"
)

// NewTypeStrategy creates an apis.Strategy that consults the registry's
// Go-type bindings (reflection-free lookup).
func NewTypeStrategy(reg apis.Registry) apis.Strategy {
	return &typeStrategy{reg: reg}
}

// typeStrategy resolves through explicit reflect.Type -> class bindings
// created with Registry.BindType.
type typeStrategy struct {
	reg apis.Registry
}

// Ensure typeStrategy implements apis.Strategy.
var _ apis.Strategy = (*typeStrategy)(nil)

// TryResolve looks up v's dynamic type among the registry's bindings.
func (s *typeStrategy) TryResolve(v any, _ apis.Config) (*class.Class, bool) {
	if v == nil || s.reg == nil {
		return nil, false
	}
	return s.reg.ByType(reflect.TypeOf(v))
}

// TryResolveType looks up t among the registry's bindings.
func (s *typeStrategy) TryResolveType(t reflect.Type, _ apis.Config) (*class.Class, bool) {
	if t == nil || s.reg == nil {
		return nil, false
	}
	return s.reg.ByType(t)
}
