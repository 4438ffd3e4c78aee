package cache

import (
	"strconv"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100, nil)
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if d := New[string, int](0, nil); d.Capacity() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, d.Capacity())
	}
}

func TestLRUGetSet(t *testing.T) {
	c := New[string, int](10, nil)
	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok || val != 42 {
		t.Errorf("Get(key1) = %d, %v; want 42, true", val, ok)
	}
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected nonexistent key to not exist")
	}

	c.Set("key1", 7)
	if val, _ := c.Get("key1"); val != 7 {
		t.Errorf("expected overwrite to 7, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("overwrite must not add entries, len=%d", c.Len())
	}
}

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := New[string, int](3, func(k string, _ int) { evicted = append(evicted, k) })

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("a") // a is now most recent, b is oldest
	c.Set("d", 4)

	if _, ok := c.Peek("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Peek(k); !ok {
			t.Errorf("expected %s to survive", k)
		}
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("onEvict calls = %v, want [b]", evicted)
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRUKeysOrder(t *testing.T) {
	c := New[int, string](5, nil)
	for i := range 4 {
		c.Set(i, strconv.Itoa(i))
	}
	c.Get(1)

	want := []int{1, 3, 2, 0}
	got := c.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestLRUGetOrCreate(t *testing.T) {
	c := New[string, int](10, nil)
	calls := 0
	create := func() int {
		calls++
		return 99
	}

	if v := c.GetOrCreate("k", create); v != 99 {
		t.Errorf("expected 99, got %d", v)
	}
	if v := c.GetOrCreate("k", create); v != 99 {
		t.Errorf("expected 99, got %d", v)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestLRUDeleteAndClear(t *testing.T) {
	evicted := 0
	c := New[string, int](10, func(string, int) { evicted++ })
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if !c.Delete("a") {
		t.Error("expected Delete(a) to report true")
	}
	if c.Delete("a") {
		t.Error("expected second Delete(a) to report false")
	}
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	if evicted != 3 {
		t.Errorf("onEvict called %d times, want 3", evicted)
	}
	c.Set("d", 4)
	if v, ok := c.Get("d"); !ok || v != 4 {
		t.Error("cache must stay usable after Clear")
	}
}

func TestLRUStats(t *testing.T) {
	c := New[string, int](10, nil)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Hits=%d Misses=%d, want 2 and 1", s.Hits, s.Misses)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("HitRate = %f, want ~0.667", s.HitRate)
	}
	if s.Len != 1 || s.Capacity != 10 {
		t.Errorf("Len=%d Capacity=%d, want 1 and 10", s.Len, s.Capacity)
	}
}
