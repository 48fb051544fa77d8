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

package ident

import (
	"errors"
	"strconv"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

var (
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("clx(ident): empty name provided")
	// ErrInvalidName is returned when a name contains characters outside
	// the accepted identifier alphabet.
	ErrInvalidName = errors.New("clx(ident): invalid name provided")
)

// ID is a stable 64-bit identifier derived from a display name.
// Equality of two IDs is the sole identity criterion for classes and
// members; IDs are never reused for the lifetime of a process.
type ID uint64

// String renders the ID as an unsigned decimal, mainly for diagnostics.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Hash derives the stable ID for name. The same name always maps to the
// same ID within and across processes (xxhash of the raw bytes), which is
// what lets member tables be sorted once and binary-searched forever.
func Hash(name string) ID {
	return ID(xxhash.Sum64String(name))
}

// Validate reports whether name is acceptable as a class or member name:
// non-empty, no spaces or control characters. Anything printable is fine;
// naming policy beyond that belongs to the registration layer.
func Validate(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidName
		}
	}
	return nil
}
