package cache

import (
	"errors"
	"testing"
	"time"
)

func TestStore_GetMissAndSet(t *testing.T) {
	s := New(time.Minute)

	if _, ok := s.Get("teams"); ok {
		t.Fatal("expected miss on empty store")
	}

	s.Set("teams", []string{"Arsenal"})
	v, ok := s.Get("teams")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	teams := v.([]string)
	if len(teams) != 1 || teams[0] != "Arsenal" {
		t.Fatalf("unexpected cached value %v", teams)
	}
}

func TestStore_ExpiredEntryIsEvicted(t *testing.T) {
	s := New(time.Minute)
	current := time.Unix(1700000000, 0)
	s.now = func() time.Time { return current }

	s.Set("positions", "GK")
	current = current.Add(2 * time.Minute)

	if _, ok := s.Get("positions"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_GetOrLoadCachesValue(t *testing.T) {
	s := New(time.Minute)
	calls := 0

	for i := 0; i < 3; i++ {
		v, err := s.GetOrLoad("nations", func() (any, error) {
			calls++
			return "loaded", nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "loaded" {
			t.Fatalf("unexpected value %v", v)
		}
	}

	if calls != 1 {
		t.Fatalf("expected one load, got %d", calls)
	}
}

func TestStore_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	s := New(time.Minute)
	boom := errors.New("backend down")
	calls := 0

	if _, err := s.GetOrLoad("teams", func() (any, error) {
		calls++
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}

	if v, err := s.GetOrLoad("teams", func() (any, error) {
		calls++
		return "ok", nil
	}); err != nil || v != "ok" {
		t.Fatalf("expected retry to succeed, got %v %v", v, err)
	}

	if calls != 2 {
		t.Fatalf("expected 2 loads, got %d", calls)
	}
}

func TestStore_Flush(t *testing.T) {
	s := New(time.Minute)
	s.Set("a", 1)
	s.Set("b", 2)
	s.Flush()

	if _, ok := s.Get("a"); ok {
		t.Fatal("expected flush to clear entries")
	}
}
