package record

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	rec, err := New("hello world", 1700000000000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if rec.ID() != Hash("hello world") {
		t.Errorf("ID() = %q, want content hash", rec.ID())
	}
	if rec.Value() != "hello world" {
		t.Errorf("Value() = %q", rec.Value())
	}
	if rec.CreatedAt() != 1700000000000 {
		t.Errorf("CreatedAt() = %d", rec.CreatedAt())
	}
	if rec.Properties().Length() != 11 {
		t.Errorf("Properties().Length() = %d, want 11", rec.Properties().Length())
	}
}

func TestNew_EmptyValueAllowed(t *testing.T) {
	rec, err := New("", 1)
	if err != nil {
		t.Fatalf("New(\"\") error = %v", err)
	}
	if !rec.Properties().IsPalindrome() {
		t.Error("empty string should be a palindrome")
	}
	if rec.Properties().WordCount() != 0 {
		t.Errorf("WordCount() = %d, want 0", rec.Properties().WordCount())
	}
}

func TestNew_TooLarge(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxValueSize+1), 1)
	if err == nil {
		t.Fatal("expected error for oversized value")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("error = %q, want mention of size limit", err)
	}
}

func TestNew_MaxSizeBoundary(t *testing.T) {
	if _, err := New(strings.Repeat("a", MaxValueSize), 1); err != nil {
		t.Fatalf("value at exactly MaxValueSize should be accepted, got %v", err)
	}
}

func TestNew_SameValueSameID(t *testing.T) {
	first, err := New("dedupe me", 100)
	if err != nil {
		t.Fatal(err)
	}
	second, err := New("dedupe me", 200)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID() != second.ID() {
		t.Error("identical values must produce identical IDs")
	}
}

func TestReconstruct(t *testing.T) {
	props := ReconstructProperties(5, false, 4, 1, Hash("hello"), map[string]int{"h": 1, "e": 1, "l": 2, "o": 1})
	rec := Reconstruct("some-id", "hello", props, 42)

	if rec.ID() != "some-id" {
		t.Errorf("ID() = %q", rec.ID())
	}
	if rec.Value() != "hello" {
		t.Errorf("Value() = %q", rec.Value())
	}
	if rec.CreatedAt() != 42 {
		t.Errorf("CreatedAt() = %d", rec.CreatedAt())
	}
	if rec.Properties().UniqueCharacters() != 4 {
		t.Errorf("UniqueCharacters() = %d", rec.Properties().UniqueCharacters())
	}
}
