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

// Config carries read-only registration and resolution knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when deriving a class name from a Go type. Acts as a safety guard
	// against pathological nesting.
	MaxUnwrap int

	// AllowRedefine controls whether registering a class under an already
	// taken identifier replaces the previous class. If false, such
	// registrations fail.
	AllowRedefine bool

	// StrictPublish controls builder-side validation at publish time:
	// member names must pass identifier validation, and a class with
	// constructors must have a destructor bound.
	StrictPublish bool
}
