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
	"fmt"
	"strings"
)

// Kind identifies the concrete variant of a registered class member.
//
// # Overview
//
// Kind is a small enumerated type describing which concrete member shape a
// Property or Function handle represents. The member surface of a class is a
// closed set of variants; visitors and diagnostic tooling dispatch on Kind
// (or on the Accept double-dispatch, which resolves to the same variant set)
// rather than on open-ended type switches.
//
// Kind is intentionally minimal: it selects a broad shape of behavior, not
// implementation details such as element types, accessor mechanics, or call
// conventions. Those are configured on the concrete member values.
//
// # Values
//
// The following kinds are defined:
//
//   - Simple   — a scalar property with get/set accessors.
//   - Array    — an indexed property, fixed-size or dynamically sized.
//   - Function — a callable member with a fixed arity.
//
// # Contract
//
//   - Member implementations MUST report a stable Kind for the lifetime of
//     the handle (no spontaneous changes after the owning class is sealed).
//   - Kind values MUST be safe to use concurrently across goroutines (they
//     are plain integers).
//   - Adding new kinds is allowed, but existing values MUST NOT change their
//     semantics in breaking ways; visitors written against the current set
//     MUST keep working for the kinds they know.
type Kind int

const (
	// Simple identifies a scalar property member.
	//
	// A Simple member exposes a single value through get/set accessors.
	// It is delivered to visitors through the simple-property callback.
	Simple Kind = iota

	// Array identifies an indexed property member.
	//
	// An Array member exposes a sequence of values. It MAY be dynamically
	// sized; fixed-size arrays report their size at registration time.
	// It is delivered to visitors through the array-property callback.
	Array

	// Function identifies a callable member.
	//
	// A Function member exposes an invocable operation with a fixed arity.
	// It is delivered to visitors through the function callback, after all
	// properties have been delivered.
	Function

	// Invalid is the zero-adjacent sentinel for unknown or unparsed kinds.
	// It is never reported by a published member handle.
	Invalid Kind = -1
)

// String renders the canonical token for the Kind.
//
// The mapping from known Kind values to strings is stable; changing the
// spelling or casing is a breaking change for systems that persist or parse
// these tokens.
func (k Kind) String() string {
	switch k {
	case Simple:
		return "Simple"
	case Array:
		return "Array"
	case Function:
		return "Function"
	default:
		return fmt.Sprintf("Invalid(%d)", k)
	}
}

// Parse converts a textual token into the corresponding Kind.
//
// Accepted (case-insensitive, whitespace-trimmed) inputs are the tokens
// produced by Kind.String for known values: "Simple", "Array", "Function".
// Any other input yields Invalid and a non-nil error; callers MUST NOT rely
// on the returned Kind in the error case. Parse never panics.
func Parse(s string) (Kind, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Invalid, fmt.Errorf("member: empty kind")
	}

	switch strings.ToUpper(trimmed) {
	case "SIMPLE":
		return Simple, nil
	case "ARRAY":
		return Array, nil
	case "FUNCTION":
		return Function, nil
	default:
		return Invalid, fmt.Errorf("member: unknown kind %q", s)
	}
}

// MustParse is like Parse but panics on invalid input. It is intended for
// hard-coded tokens in Go code and tests; callers MUST NOT use it on
// untrusted input.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// IsValid reports whether k is one of the defined member kinds.
func (k Kind) IsValid() bool {
	switch k {
	case Simple, Array, Function:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error rather than being serialized in their "Invalid(...)" display form.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("member: cannot marshal unknown kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the same
// tokens as Parse; on failure the receiver is left unchanged.
func (k *Kind) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = value
	return nil
}
