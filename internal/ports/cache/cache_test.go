package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mapCache struct {
	data   map[string][]byte
	getErr error
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestRemember_MissThenHit(t *testing.T) {
	c := &mapCache{data: map[string][]byte{}}
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"labrador", "poodle"}, nil
	}
	var results []string
	obs := func(r string) { results = append(results, r) }

	for i := 0; i < 2; i++ {
		got, err := Remember(context.Background(), c, "breeds", time.Minute, obs, load)
		if err != nil {
			t.Fatalf("Remember error: %v", err)
		}
		if len(got) != 2 || got[1] != "poodle" {
			t.Fatalf("unexpected value %#v", got)
		}
	}

	if calls != 1 {
		t.Fatalf("expected 1 load, got %d", calls)
	}
	if len(results) != 2 || results[0] != "miss" || results[1] != "hit" {
		t.Fatalf("unexpected observations %#v", results)
	}
}

func TestRemember_CacheErrorFallsBackToLoad(t *testing.T) {
	c := &mapCache{data: map[string][]byte{}, getErr: errors.New("redis down")}
	got, err := Remember(context.Background(), c, "k", time.Minute, nil, func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Fatalf("expected fallback value 7, got %d %v", got, err)
	}
}

func TestRemember_NilCache(t *testing.T) {
	got, err := Remember(context.Background(), nil, "k", time.Minute, nil, func(context.Context) (int, error) { return 3, nil })
	if err != nil || got != 3 {
		t.Fatalf("unexpected %d %v", got, err)
	}
	Invalidate(context.Background(), nil, "k")
}

func TestInvalidate(t *testing.T) {
	c := &mapCache{data: map[string][]byte{"a": []byte("1"), "b": []byte("2")}}
	Invalidate(context.Background(), c, "a")
	if _, ok := c.data["a"]; ok {
		t.Fatalf("expected key a removed")
	}
	if _, ok := c.data["b"]; !ok {
		t.Fatalf("expected key b kept")
	}
}
