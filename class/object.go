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

package class

import "unsafe"

// Args is the untyped argument list passed across the reflection boundary
// to constructor matching and member calls. The core never interprets the
// values; matching is delegated to each constructor.
type Args []any

// Len returns the number of arguments.
func (a Args) Len() int { return len(a) }

// Object is an opaque instance handle: a raw address paired with the class
// metadata it belongs to. The core treats the address as opaque except for
// the byte adjustments performed by ApplyOffset.
//
// The zero Object is "nothing": the designated absent-instance value
// returned by Construct when no constructor matches.
type Object struct {
	addr unsafe.Pointer
	cls  *Class
}

// Nothing is the designated absent-instance sentinel.
var Nothing = Object{}

// NewObject wraps a raw instance address together with its class.
func NewObject(addr unsafe.Pointer, cls *Class) Object {
	return Object{addr: addr, cls: cls}
}

// Addr returns the raw address of the instance, or nil for Nothing.
func (o Object) Addr() unsafe.Pointer { return o.addr }

// Class returns the metadata of the class the instance belongs to,
// or nil for Nothing.
func (o Object) Class() *Class { return o.cls }

// IsValid reports whether the handle refers to an actual instance.
// Construction failure yields an invalid Object, not an error.
func (o Object) IsValid() bool { return o.addr != nil && o.cls != nil }

// As returns the instance address reinterpreted as target, walking the
// inheritance graph of the object's class in either direction. It is the
// typed convenience wrapper over Class.ApplyOffset.
func (o Object) As(target *Class) (Object, error) {
	if !o.IsValid() {
		return Nothing, nil
	}
	addr, err := o.cls.ApplyOffset(o.addr, target)
	if err != nil {
		return Nothing, err
	}
	return Object{addr: addr, cls: target}, nil
}
