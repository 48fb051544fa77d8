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

package member

import (
	"dirpx.dev/clx/class"
	cxmember "dirpx.dev/clx/cxapi/member"
	"dirpx.dev/clx/utils/ident"
)

// Callable invokes the underlying operation on an opaque instance.
type Callable func(class.Object, class.Args) any

// Func is a callable member with a fixed arity.
type Func struct {
	name  string
	id    ident.ID
	arity int
	call  Callable
}

// Ensure Func satisfies the function contract.
var _ class.Function = (*Func)(nil)

// NewFunc creates a function member.
func NewFunc(name string, arity int, call Callable) *Func {
	return &Func{name: name, id: IDOf(name), arity: arity, call: call}
}

// ID returns the stable identifier derived from the function name.
func (f *Func) ID() ident.ID { return f.id }

// Name returns the display name of the function.
func (f *Func) Name() string { return f.name }

// Kind reports the Function member kind.
func (f *Func) Kind() cxmember.Kind { return cxmember.Function }

// Arity returns the number of arguments the function expects.
func (f *Func) Arity() int { return f.arity }

// Call invokes the function on obj with args.
func (f *Func) Call(obj class.Object, args class.Args) any {
	if f.call == nil {
		return nil
	}
	return f.call(obj, args)
}

// Accept dispatches to the function visitor callback.
func (f *Func) Accept(v class.ClassVisitor) { v.VisitFunction(f) }
