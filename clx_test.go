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

package clx

import (
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"dirpx.dev/clx/apis"
	"dirpx.dev/clx/builder"
	"dirpx.dev/clx/class"
	"dirpx.dev/clx/config"
	"dirpx.dev/clx/member"
	"dirpx.dev/clx/utils/ident"
)

// ---------------------- Helpers ----------------------

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	buf := [20]byte{}
	pos := len(buf)
	n := i
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// Reset to a clean snapshot using our test builder.
// This fully replaces builder, config, ext and rebuilds registry/resolver.
// Pins are reset (preg=false, pres=false) because we pass nil reg/res.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config, ext any) {
	tb.Helper()
	SetAll(&cfg, ext, nil, nil, b)
}

// ---------------------- Test doubles (mocks) ----------------------

type mockRegistry struct {
	id   string
	mu   sync.Mutex
	data map[ident.ID]*class.Class
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id, data: make(map[ident.ID]*class.Class)}
}

func (m *mockRegistry) Register(c *class.Class) error {
	m.mu.Lock()
	m.data[c.ID()] = c
	m.mu.Unlock()
	return nil
}

func (m *mockRegistry) ByID(id ident.ID) (*class.Class, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.data[id]
	return c, ok
}

func (m *mockRegistry) ByName(name string) (*class.Class, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.data {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

func (m *mockRegistry) BindType(reflect.Type, ident.ID) error { return nil }

func (m *mockRegistry) ByType(reflect.Type) (*class.Class, bool) { return nil, false }

func (m *mockRegistry) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []apis.Entry
	for id, c := range m.data {
		out = append(out, apis.Entry{ID: id, Name: c.Name(), Class: c})
	}
	return out
}

func (m *mockRegistry) Count() int { m.mu.Lock(); defer m.mu.Unlock(); return len(m.data) }

func (m *mockRegistry) Reset() error {
	m.mu.Lock()
	m.data = make(map[ident.ID]*class.Class)
	m.mu.Unlock()
	return nil
}

type mockResolver struct {
	id       string
	cls      *class.Class
	mu       sync.Mutex
	resolveC int
	lastCfg  apis.Config
}

func (r *mockResolver) Resolve(_ any, cfg apis.Config) (*class.Class, bool) {
	r.mu.Lock()
	r.resolveC++
	r.lastCfg = cfg
	r.mu.Unlock()
	return r.cls, r.cls != nil
}

func (r *mockResolver) ResolveType(_ reflect.Type, cfg apis.Config) (*class.Class, bool) {
	return r.Resolve(nil, cfg)
}

type mockBuilder struct {
	mu             sync.Mutex
	lastCfg        apis.Config
	lastExt        any
	lastPrevRegID  string
	lastPrevResID  string
	regCounter     int
	resCounter     int
	returnFixedReg apis.Registry // optional override
	returnFixedRes apis.Resolver // optional override
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	if prev != nil {
		if mr, ok := prev.(*mockRegistry); ok {
			b.lastPrevRegID = mr.id
		}
	}
	if b.returnFixedReg != nil {
		return b.returnFixedReg
	}
	b.regCounter++
	return newMockRegistry("reg#" + itoa(b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.Registry, prev apis.Resolver, ext any) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	if prev != nil {
		if mr, ok := prev.(*mockResolver); ok {
			b.lastPrevResID = mr.id
		}
	}
	if b.returnFixedRes != nil {
		return b.returnFixedRes
	}
	b.resCounter++
	return &mockResolver{id: "res#" + itoa(b.resCounter)}
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8, StrictPublish: true}, nil)

	// snapshot 1
	s1Reg := Registry()
	s1Res := Resolver()

	// change cfg -> both should rebuild (not pinned)
	SetConfig(apis.Config{MaxUnwrap: 4, AllowRedefine: true})

	s2Reg := Registry()
	s2Res := Resolver()

	if s1Reg == s2Reg {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if s1Res == s2Res {
		t.Fatalf("resolver was not rebuilt on SetConfig (unpinned)")
	}

	b.mu.Lock()
	gotCfg := b.lastCfg
	b.mu.Unlock()
	if gotCfg.MaxUnwrap != 4 || !gotCfg.AllowRedefine || gotCfg.StrictPublish {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry must pin the registry")
	}

	beforeRes := Resolver()
	SetConfig(apis.Config{MaxUnwrap: 6})

	afterReg := Registry()
	afterRes := Resolver()

	if afterReg != customReg {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if afterRes == beforeRes {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	// Pin resolver
	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	if !IsResolverPinned() {
		t.Fatalf("SetResolver must pin the resolver")
	}

	// Grab current registry pointer (should be from builder b)
	regBefore := Registry()

	// Change cfg -> expect: registry rebuilt (not pinned), resolver unchanged (pinned)
	SetConfig(apis.Config{MaxUnwrap: 6})

	regAfter := Registry()
	resAfter := Resolver()

	if resAfter != customRes {
		t.Fatalf("pinned resolver was rebuilt unexpectedly")
	}
	if regAfter == regBefore {
		t.Fatalf("registry was not rebuilt on SetConfig when resolver is pinned")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	// Start with builder A
	a := &mockBuilder{}
	resetWithBuilder(t, a, apis.Config{MaxUnwrap: 8}, nil)

	// Pin resolver, leave registry unpinned
	SetResolver(&mockResolver{id: "pinned"})
	regBefore := Registry()
	resBefore := Resolver()

	// Swap to builder B (no rebuild yet per current semantics)
	b := &mockBuilder{}
	SetBuilder(b)

	// Trigger rebuild by changing config -> expect: registry rebuilt
	// (unpinned), resolver unchanged (pinned)
	SetConfig(apis.Config{MaxUnwrap: 6})

	regAfter := Registry()
	resAfter := Resolver()

	if regAfter == regBefore {
		t.Fatalf("registry did not rebuild after SetBuilder + SetConfig (unpinned)")
	}
	if resAfter != resBefore {
		t.Fatalf("pinned resolver was rebuilt after SetBuilder + SetConfig")
	}
}

func TestSetExt_Rebuilds_Unpinned_and_PassesValue(t *testing.T) {
	// Ensure snapshot uses our mock builder
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	// Change ext -> should rebuild unpinned layers via current builder (b)
	// and pass ext
	type extCfg struct{ X int }
	SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	ec, ok := got.(extCfg)
	if !ok || ec.X != 42 {
		t.Fatalf("builder did not receive ext properly: %#v", got)
	}
	if e, ok := ExtAs[extCfg](); !ok || e.X != 42 {
		t.Fatalf("ExtAs did not return the stored extension: %#v %v", e, ok)
	}

	// Pin both and ensure no rebuild on SetExt
	SetRegistry(Registry())
	SetResolver(Resolver())
	rCntBefore, sCntBefore := func() (int, int) {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.regCounter, b.resCounter
	}()
	SetExt(extCfg{X: 7})
	rCntAfter, sCntAfter := func() (int, int) {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.regCounter, b.resCounter
	}()
	if rCntAfter != rCntBefore || sCntAfter != sCntBefore {
		t.Fatalf("SetExt should not rebuild when both layers are pinned")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	SetRegistry(Registry())
	SetResolver(Resolver())

	reg1 := Registry()
	res1 := Resolver()
	SetConfig(apis.Config{MaxUnwrap: 4})
	if Registry() != reg1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinRegistry()
	UnpinResolver()
	if IsRegistryPinned() || IsResolverPinned() {
		t.Fatalf("unpin did not clear the pin flags")
	}
	SetConfig(apis.Config{MaxUnwrap: 6})
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
	if Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

func TestSetAll_MigratesThroughBuilder(t *testing.T) {
	b := &mockBuilder{}
	cfg := apis.Config{MaxUnwrap: 8}
	prevReg := newMockRegistry("previous")
	SetAll(&cfg, nil, prevReg, nil, b)

	// A follow-up SetAll with nil reg must hand the previous registry to
	// the builder for migration.
	SetAll(nil, nil, nil, nil, nil)

	b.mu.Lock()
	prevID := b.lastPrevRegID
	b.mu.Unlock()
	if prevID != "previous" {
		t.Fatalf("builder did not receive the previous registry, got %q", prevID)
	}
	if IsRegistryPinned() {
		t.Fatalf("SetAll with nil reg must leave the registry unpinned")
	}
}

func TestDeclare_Lookup_Of_EndToEnd(t *testing.T) {
	// Real stack for the end-to-end path.
	cfg := config.DefaultConfig()
	resetWithBuilder(t, builder.New(), cfg, nil)

	type circle struct{ R float64 }

	cls, err := Declare("clx.Circle").
		Property(member.NewSimple("r", nil, nil)).
		Type(reflect.TypeOf(circle{})).
		Publish()
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got, ok := Lookup("clx.Circle"); !ok || got != cls {
		t.Fatalf("Lookup did not return the published class")
	}
	if got, ok := LookupID(cls.ID()); !ok || got != cls {
		t.Fatalf("LookupID did not return the published class")
	}
	if got, ok := Of(circle{R: 1}); !ok || got != cls {
		t.Fatalf("Of did not resolve through the type binding")
	}
	if got, ok := OfType(reflect.TypeOf(circle{})); !ok || got != cls {
		t.Fatalf("OfType did not resolve through the type binding")
	}
}

func TestOf_Concurrent_With_SetConfig(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	type token struct{}
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_, _ = Of(token{})
				_, _ = OfType(reflect.TypeOf(token{}))
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(apis.Config{
				MaxUnwrap:     4 + (i % 5),
				AllowRedefine: i%2 == 0,
			})
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
