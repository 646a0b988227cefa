package classify

import "testing"

func TestRegistryFirstPresentWins(t *testing.T) {
	reg := NewRegistry(func(int) string { return "fallback" })
	reg.Register(func(int) Answer[string] { return None[string]() })
	reg.Register(func(n int) Answer[string] {
		if n > 10 {
			return Some("big")
		}
		return None[string]()
	})
	reg.Register(func(int) Answer[string] { return Some("never reached") })

	if got := reg.Resolve(20); got != "big" {
		t.Fatalf("expected 'big', got %q", got)
	}
	if got := reg.Resolve(1); got != "never reached" {
		t.Fatalf("expected the third callback's answer, got %q", got)
	}
}

func TestRegistryFallsBackWhenNoneAnswer(t *testing.T) {
	reg := NewRegistry(func(int) string { return "fallback" })
	if got := reg.Resolve(5); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if _, ok := reg.ResolveOptional(5); ok {
		t.Fatalf("expected ResolveOptional to report no answer")
	}
}

func TestBuiltinWalkableSurface(t *testing.T) {
	t.Run("solid is walkable", func(t *testing.T) {
		if BuiltinWalkableSurface(solidBlock()) != Walkable {
			t.Fatalf("expected solid block to be walkable")
		}
	})
	t.Run("lava is not passable", func(t *testing.T) {
		if BuiltinWalkableSurface(lavaBlock()) != NotPassable {
			t.Fatalf("expected lava to be not passable")
		}
	})
	t.Run("air is dropable", func(t *testing.T) {
		if BuiltinWalkableSurface(airBlockForTest()) != Dropable {
			t.Fatalf("expected air to be dropable")
		}
	})
}
