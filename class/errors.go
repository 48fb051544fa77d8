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

import (
	"errors"
	"fmt"

	"dirpx.dev/clx/utils/ident"
)

var (
	// ErrSealed is returned when a registration-phase mutation is attempted
	// on a class that has already been sealed.
	ErrSealed = errors.New("clx(class): class is sealed")
	// ErrNilBase is returned when a nil base class is added.
	ErrNilBase = errors.New("clx(class): nil base class provided")
	// ErrNilConstructor is returned when a nil constructor is added.
	ErrNilConstructor = errors.New("clx(class): nil constructor provided")
	// ErrNilDestructor is returned when a nil destructor is bound.
	ErrNilDestructor = errors.New("clx(class): nil destructor provided")
	// ErrNilMember is returned when a nil property or function is added.
	ErrNilMember = errors.New("clx(class): nil member provided")
	// ErrDuplicateMember indicates an attempt to register two members
	// of the same table under the same identifier.
	ErrDuplicateMember = errors.New("clx(class): duplicate member identifier")
)

// OutOfRangeError reports a positional accessor called with an index
// outside [0, Size).
type OutOfRangeError struct {
	// Index is the offending index.
	Index int
	// Size is the size of the indexed collection.
	Size int
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("clx(class): index %d out of range for size %d", e.Index, e.Size)
}

// FunctionNotFoundError reports a failed exact-match function lookup on an
// API that contracts to always return a result.
type FunctionNotFoundError struct {
	// ID is the identifier that was looked up.
	ID ident.ID
	// Class is the display name of the class that was searched.
	Class string
}

// Error implements the error interface.
func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("clx(class): function %s not found in class %q", e.ID, e.Class)
}

// PropertyNotFoundError reports a failed exact-match property lookup on an
// API that contracts to always return a result.
type PropertyNotFoundError struct {
	// ID is the identifier that was looked up.
	ID ident.ID
	// Class is the display name of the class that was searched.
	Class string
}

// Error implements the error interface.
func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("clx(class): property %s not found in class %q", e.ID, e.Class)
}

// UnrelatedClassesError reports a cast between two classes that share no
// base/derived relationship in either direction.
type UnrelatedClassesError struct {
	// From is the display name of the class the cast started from.
	From string
	// To is the display name of the cast target.
	To string
}

// Error implements the error interface.
func (e *UnrelatedClassesError) Error() string {
	return fmt.Sprintf("clx(class): class %q is not related to class %q", e.To, e.From)
}
