package predicate

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/stringdex/internal/domain/record"
)

func mustRecord(t *testing.T, value string) record.StringRecord {
	t.Helper()
	rec, err := record.New(value, 1)
	if err != nil {
		t.Fatalf("record.New(%q): %v", value, err)
	}
	return rec
}

func mustNumeric(t *testing.T, prop Property, cmp Comparator, operand int) Predicate {
	t.Helper()
	p, err := NewNumeric(prop, cmp, operand)
	if err != nil {
		t.Fatalf("NewNumeric(%s, %s, %d): %v", prop, cmp, operand, err)
	}
	return p
}

func TestNewNumeric_Validation(t *testing.T) {
	tests := []struct {
		name    string
		prop    Property
		cmp     Comparator
		operand int
		wantErr string
	}{
		{"bool property rejected", IsPalindrome, Equals, 1, "not numeric"},
		{"contains property rejected", ContainsCharacter, Equals, 1, "not numeric"},
		{"contains comparator rejected", Length, Contains, 1, "not valid"},
		{"negative operand rejected", Length, GreaterThan, -1, "non-negative"},
		{"zero operand accepted", Length, Equals, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNumeric(tt.prop, tt.cmp, tt.operand)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewContains_Validation(t *testing.T) {
	if _, err := NewContains("ab"); err == nil {
		t.Error("two characters must be rejected")
	}
	if _, err := NewContains(""); err == nil {
		t.Error("empty operand must be rejected")
	}
	if _, err := NewContains("é"); err != nil {
		t.Errorf("single multi-byte rune must be accepted, got %v", err)
	}
}

func TestMatches_Comparators(t *testing.T) {
	rec := mustRecord(t, "hello") // length 5

	tests := []struct {
		cmp     Comparator
		operand int
		want    bool
	}{
		{Equals, 5, true},
		{Equals, 4, false},
		{GreaterThan, 4, true},
		{GreaterThan, 5, false},
		{LessThan, 6, true},
		{LessThan, 5, false},
		{GreaterOrEqual, 5, true},
		{GreaterOrEqual, 6, false},
		{LessOrEqual, 5, true},
		{LessOrEqual, 4, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.cmp), func(t *testing.T) {
			p := mustNumeric(t, Length, tt.cmp, tt.operand)
			if got := p.Matches(rec); got != tt.want {
				t.Errorf("length %s %d on \"hello\" = %v, want %v", tt.cmp, tt.operand, got, tt.want)
			}
		})
	}
}

func TestMatches_Properties(t *testing.T) {
	rec := mustRecord(t, "level up now") // 12 runes, 3 words, 9 unique, not palindrome

	if !mustNumeric(t, WordCount, Equals, 3).Matches(rec) {
		t.Error("word_count = 3 should match")
	}
	if !mustNumeric(t, UniqueCharacters, Equals, 9).Matches(rec) {
		t.Error("unique_characters = 9 should match")
	}
	if NewBool(true).Matches(rec) {
		t.Error("is_palindrome = true should not match")
	}
	if !NewBool(false).Matches(rec) {
		t.Error("is_palindrome = false should match")
	}
}

func TestMatches_Contains(t *testing.T) {
	rec := mustRecord(t, "hello")

	p, err := NewContains("e")
	if err != nil {
		t.Fatal(err)
	}
	if !p.Matches(rec) {
		t.Error(`value contains "e" should match "hello"`)
	}

	p, err = NewContains("z")
	if err != nil {
		t.Fatal(err)
	}
	if p.Matches(rec) {
		t.Error(`value contains "z" should not match "hello"`)
	}

	// Case-sensitive.
	p, err = NewContains("H")
	if err != nil {
		t.Fatal(err)
	}
	if p.Matches(rec) {
		t.Error(`value contains "H" should not match "hello"`)
	}
}

func TestFilter_ConjunctionAndOrder(t *testing.T) {
	records := []record.StringRecord{
		mustRecord(t, "racecar"),      // palindrome, length 7
		mustRecord(t, "abc"),          // not palindrome, length 3
		mustRecord(t, "noon"),         // palindrome, length 4
		mustRecord(t, "a"),            // palindrome, length 1
		mustRecord(t, "deified anna"), // not palindrome, 2 words
	}

	preds := []Predicate{
		NewBool(true),
		mustNumeric(t, Length, GreaterOrEqual, 4),
	}

	got := Filter(records, preds)
	if len(got) != 2 {
		t.Fatalf("Filter returned %d records, want 2", len(got))
	}
	// Input order preserved.
	if got[0].Value() != "racecar" || got[1].Value() != "noon" {
		t.Errorf("Filter order = [%q, %q], want [racecar, noon]", got[0].Value(), got[1].Value())
	}
}

func TestFilter_EmptyPredicatesMatchEverything(t *testing.T) {
	records := []record.StringRecord{mustRecord(t, "a"), mustRecord(t, "b")}
	got := Filter(records, nil)
	if len(got) != 2 {
		t.Errorf("Filter with no predicates returned %d records, want 2", len(got))
	}
}

func TestFilter_NoMatches(t *testing.T) {
	records := []record.StringRecord{mustRecord(t, "abc")}
	got := Filter(records, []Predicate{mustNumeric(t, Length, GreaterThan, 100)})
	if len(got) != 0 {
		t.Errorf("Filter returned %d records, want 0", len(got))
	}
}

func TestString_Rendering(t *testing.T) {
	tests := []struct {
		pred Predicate
		want string
	}{
		{mustNumeric(t, Length, GreaterOrEqual, 3), "length >= 3"},
		{mustNumeric(t, WordCount, Equals, 2), "word_count = 2"},
		{NewBool(true), "is_palindrome = true"},
	}

	for _, tt := range tests {
		if got := tt.pred.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}

	p, err := NewContains("x")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != `value contains "x"` {
		t.Errorf("String() = %q", got)
	}
}
