package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/stringdex/internal/db"
)

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrKeyNotFound", err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v1" {
		t.Errorf("Get(k) = %q, want v1", got)
	}

	// Overwrite.
	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(ctx, "k")
	if string(got) != "v2" {
		t.Errorf("Get(k) after overwrite = %q, want v2", got)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	if err := s.Set(ctx, "k", []byte("abc")); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get(ctx, "k")
	got[0] = 'X'

	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestSetNX(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	created, err := s.SetNX(ctx, "k", []byte("first"))
	if err != nil || !created {
		t.Fatalf("first SetNX = (%v, %v), want (true, nil)", created, err)
	}

	created, err = s.SetNX(ctx, "k", []byte("second"))
	if err != nil || created {
		t.Fatalf("second SetNX = (%v, %v), want (false, nil)", created, err)
	}

	got, _ := s.Get(ctx, "k")
	if string(got) != "first" {
		t.Errorf("value = %q, first writer must win", got)
	}
}

func TestSetNX_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const writers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := s.SetNX(ctx, "contested", []byte("v"))
			if err != nil {
				t.Errorf("SetNX: %v", err)
				return
			}
			if created {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("winners = %d, want exactly 1", winners)
	}
}

func TestDel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	existed, err := s.Del(ctx, "missing")
	if err != nil || existed {
		t.Fatalf("Del(missing) = (%v, %v), want (false, nil)", existed, err)
	}

	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	existed, err = s.Del(ctx, "k")
	if err != nil || !existed {
		t.Fatalf("Del(k) = (%v, %v), want (true, nil)", existed, err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("Get after Del error = %v, want ErrKeyNotFound", err)
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	ok, err := s.Exists(ctx, "k")
	if err != nil || ok {
		t.Fatalf("Exists(missing) = (%v, %v)", ok, err)
	}
	if err := s.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	ok, err = s.Exists(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Exists(k) = (%v, %v)", ok, err)
	}
}

func TestGetMulti(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	if err := s.Set(ctx, "a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "c", []byte("3")); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetMulti(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if string(got[0]) != "1" || got[1] != nil || string(got[2]) != "3" {
		t.Errorf("GetMulti = [%q, %v, %q]", got[0], got[1], got[2])
	}
}

func TestScan_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for _, k := range []string{"rec:c", "rec:a", "other:x", "rec:b"} {
		if err := s.Set(ctx, k, []byte("v")); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := s.Scan(ctx, "rec:*")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"rec:c", "rec:a", "rec:b"}
	if len(keys) != len(want) {
		t.Fatalf("Scan = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Scan = %v, want %v", keys, want)
		}
	}
}

func TestScan_DeletedKeysExcluded(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	if err := s.Set(ctx, "rec:a", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "rec:b", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Del(ctx, "rec:a"); err != nil {
		t.Fatal(err)
	}

	keys, err := s.Scan(ctx, "rec:*")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "rec:b" {
		t.Errorf("Scan = %v, want [rec:b]", keys)
	}
}

func TestScan_ExactKey(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	if err := s.Set(ctx, "rec:a", []byte("v")); err != nil {
		t.Fatal(err)
	}

	keys, err := s.Scan(ctx, "rec:a")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != "rec:a" {
		t.Errorf("Scan = %v, want [rec:a]", keys)
	}
}

func TestWaitForReady(t *testing.T) {
	s := NewStore()
	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Errorf("WaitForReady: %v", err)
	}
}
