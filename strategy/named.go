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
	"dirpx.dev/clx/cxapi/common"
)

// NewNamedStrategy creates an apis.Strategy that uses common.Named.
func NewNamedStrategy(reg apis.Registry) apis.Strategy {
	return &namedStrategy{reg: reg}
}

// namedStrategy is the fast path: if v implements common.Named, look its
// self-reported class name up directly and stop the chain on a hit.
type namedStrategy struct {
	reg apis.Registry
}

// Ensure namedStrategy implements apis.Strategy.
var _ apis.Strategy = (*namedStrategy)(nil)

// TryResolve checks whether v self-reports a class name known to the registry.
func (s *namedStrategy) TryResolve(v any, _ apis.Config) (*class.Class, bool) {
	if v == nil || s.reg == nil {
		return nil, false
	}
	if n, ok := v.(common.Named); ok {
		return s.reg.ByName(n.ClassName())
	}
	return nil, false
}

// TryResolveType always falls through: Named requires an instance.
func (s *namedStrategy) TryResolveType(_ reflect.Type, _ apis.Config) (*class.Class, bool) {
	// No instance -> cannot use Named.
	return nil, false
}
