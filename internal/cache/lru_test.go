package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Fatal("Get(b) found a missing key")
	}
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("overwrite: got %d", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for i := range 3 {
		c.Set(i, i)
	}
	c.Get(0) // 1 is now the oldest
	c.Set(3, 3)

	if _, ok := c.Get(1); ok {
		t.Error("key 1 survived eviction")
	}
	for _, k := range []int{0, 2, 3} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("key %d was evicted", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 || s.Len != 3 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	if c.Stats().Capacity != DefaultCapacity {
		t.Fatalf("capacity = %d", c.Stats().Capacity)
	}
	calls := 0
	mk := func() int { calls++; return 7 }
	c.GetOrCreate("k", mk)
	if v := c.GetOrCreate("k", mk); v != 7 || calls != 1 {
		t.Errorf("GetOrCreate = %d after %d calls", v, calls)
	}
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("hits/misses = %d/%d", s.Hits, s.Misses)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int](8)
	c.Set("a", 1)
	c.Set("b", 2)
	if !c.Delete("a") || c.Delete("a") {
		t.Error("Delete did not report presence correctly")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	c.Set("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Error("cache unusable after Clear")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[string, int](32)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g*7 + i) % 50)
				c.GetOrCreate(k, func() int { return i })
				c.Get(k)
			}
		}()
	}
	wg.Wait()
	if c.Len() > 32 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}
