package scratch

import (
	"reflect"
	"testing"
)

func TestAddCoalescing(t *testing.T) {
	s := New()
	s.Add("k", "a")
	if s.Get("k") != "a" {
		t.Fatalf("first add should set scalar, got %v", s.Get("k"))
	}
	s.Add("k", "b")
	got, ok := s.Get("k").([]any)
	if !ok || !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Fatalf("second add should coalesce to array, got %#v", s.Get("k"))
	}
	s.Add("k", "c")
	got, ok = s.Get("k").([]any)
	if !ok || !reflect.DeepEqual(got, []any{"a", "b", "c"}) {
		t.Fatalf("third add should append, got %#v", s.Get("k"))
	}
}

func TestAddOnNilSlot(t *testing.T) {
	s := New()
	s.Add("k", "only")
	if s.Get("k") != "only" {
		t.Fatalf("add on absent slot should set directly, got %v", s.Get("k"))
	}
}

func TestSetInMapPromotesSlot(t *testing.T) {
	s := New()
	s.SetInMap("m", "a", 1)
	s.SetInMap("m", "b", 2)
	m, ok := s.Get("m").(map[string]any)
	if !ok {
		t.Fatalf("expected map slot, got %#v", s.Get("m"))
	}
	if m["a"] != 1 || m["b"] != 2 {
		t.Fatalf("unexpected map contents: %#v", m)
	}
	s.DeleteInMap("m", "a")
	if _, present := m["a"]; present {
		t.Fatal("expected key a removed")
	}
}

func TestDelete(t *testing.T) {
	s := New()
	s.Set("k", 1)
	s.Delete("k")
	if s.Get("k") != nil {
		t.Fatalf("expected nil after delete, got %v", s.Get("k"))
	}
}

func TestRegistryIdentity(t *testing.T) {
	r := NewRegistry()
	type id struct{ n int }
	a := &id{1}
	b := &id{2}
	r.For(a).Set("x", 1)
	r.For(b).Set("x", 2)
	if r.For(a).Get("x") != 1 {
		t.Fatal("store for a should be stable across calls")
	}
	if r.For(b).Get("x") != 2 {
		t.Fatal("store for b should be stable across calls")
	}
}
