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

package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dirpx.dev/clx/class"
	"dirpx.dev/clx/config"
	"dirpx.dev/clx/member"
	"dirpx.dev/clx/registry"
	"dirpx.dev/clx/utils/ident"
)

// Vec2 is a plain named type used for Go-type bindings.
type Vec2 struct{ X, Y float64 }

// sealed creates a sealed class for registration tests.
func sealed(t *testing.T, name string) *class.Class {
	t.Helper()
	c := class.New(ident.Hash(name), name)
	require.NoError(t, c.Seal())
	return c
}

func TestRegister_IdempotentAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), registry.WithLogger(zap.NewNop()))

	c := sealed(t, "geom.Vec2")
	require.NoError(t, reg.Register(c))
	// Idempotent re-registration of the same class.
	require.NoError(t, reg.Register(c))

	got, ok := reg.ByID(c.ID())
	require.True(t, ok)
	require.Same(t, c, got)

	got, ok = reg.ByName("geom.Vec2")
	require.True(t, ok)
	require.Same(t, c, got)

	require.Equal(t, 1, reg.Count())
}

func TestRegister_Guards(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	require.ErrorIs(t, reg.Register(nil), registry.ErrNilClass)

	unsealed := class.New(ident.Hash("geom.Open"), "geom.Open")
	require.ErrorIs(t, reg.Register(unsealed), registry.ErrUnsealedClass)
}

func TestRegister_ConflictAndRedefine(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	first := sealed(t, "geom.Vec3")
	require.NoError(t, reg.Register(first))

	// A different class under the same identifier conflicts by default.
	second := class.New(first.ID(), "geom.Vec3")
	require.NoError(t, second.Seal())
	require.ErrorIs(t, reg.Register(second), registry.ErrConflictingRegistration)

	// With AllowRedefine the newcomer replaces the previous class.
	regRedef := registry.New(config.NewConfig(config.WithAllowRedefine(true)))
	require.NoError(t, regRedef.Register(first))
	require.NoError(t, regRedef.Register(second))
	got, ok := regRedef.ByID(first.ID())
	require.True(t, ok)
	require.Same(t, second, got)
	require.Equal(t, 1, regRedef.Count(), "redefinition must not grow the count")
}

func TestBindType_AndByType(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	c := sealed(t, "geom.Vec2")
	require.NoError(t, reg.Register(c))

	vt := reflect.TypeOf(Vec2{})

	require.ErrorIs(t, reg.BindType(nil, c.ID()), registry.ErrNilType)
	require.ErrorIs(t, reg.BindType(vt, ident.Hash("geom.Unknown")), registry.ErrUnknownClass)

	require.NoError(t, reg.BindType(vt, c.ID()))
	got, ok := reg.ByType(vt)
	require.True(t, ok)
	require.Same(t, c, got)

	_, ok = reg.ByType(reflect.TypeOf(0))
	require.False(t, ok)
	_, ok = reg.ByType(nil)
	require.False(t, ok)
}

func TestEntriesAndReset_ReleasesClasses(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	releaseErr := errors.New("constructor leak")
	released := 0

	c1 := class.New(ident.Hash("geom.R1"), "geom.R1")
	require.NoError(t, c1.AddConstructor(
		member.NewConstructor(nil, nil).OnRelease(func() error {
			released++
			return releaseErr
		}),
	))
	require.NoError(t, c1.SetDestructor(func(class.Object) {}))
	require.NoError(t, c1.Seal())

	c2 := sealed(t, "geom.R2")

	require.NoError(t, reg.Register(c1))
	require.NoError(t, reg.Register(c2))

	entries := reg.Entries()
	require.Len(t, entries, 2)
	names := map[string]bool{}
	for _, e := range entries {
		require.NotNil(t, e.Class)
		require.Equal(t, e.Class.ID(), e.ID)
		names[e.Name] = true
	}
	require.True(t, names["geom.R1"] && names["geom.R2"])

	err := reg.Reset()
	require.ErrorIs(t, err, releaseErr, "release failures surface from Reset")
	require.Equal(t, 1, released)
	require.Equal(t, 0, reg.Count())

	_, ok := reg.ByName("geom.R1")
	require.False(t, ok)
	_, ok = reg.ByID(c2.ID())
	require.False(t, ok)
}

func TestLookupNilAndUnknown(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_, ok := reg.ByName("")
	require.False(t, ok)
	_, ok = reg.ByName("geom.Missing")
	require.False(t, ok)
	_, ok = reg.ByID(ident.Hash("geom.Missing"))
	require.False(t, ok)
}
