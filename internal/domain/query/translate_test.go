package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/stringdex/internal/domain"
	"github.com/kailas-cloud/stringdex/internal/domain/predicate"
)

// wantPred is a flattened predicate expectation for table tests.
type wantPred struct {
	prop predicate.Property
	cmp  predicate.Comparator
	num  int
	b    bool
	text string
}

func assertPredicates(t *testing.T, got []predicate.Predicate, want []wantPred) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d predicates %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		p := got[i]
		if p.Property() != w.prop || p.Comparator() != w.cmp ||
			p.Number() != w.num || p.Bool() != w.b || p.Text() != w.text {
			t.Errorf("preds[%d] = %s, want {%s %s %d %t %q}", i, p, w.prop, w.cmp, w.num, w.b, w.text)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   []wantPred
	}{
		{
			"implied length via longer than",
			"strings longer than 10 characters",
			[]wantPred{{prop: predicate.Length, cmp: predicate.GreaterThan, num: 10}},
		},
		{
			"palindrome plus inclusive length",
			"palindromes that are at least 3 characters long",
			[]wantPred{
				{prop: predicate.IsPalindrome, cmp: predicate.Equals, b: true},
				{prop: predicate.Length, cmp: predicate.GreaterOrEqual, num: 3},
			},
		},
		{
			"conjunction with negation",
			"strings with more than 2 words and not a palindrome",
			[]wantPred{
				{prop: predicate.WordCount, cmp: predicate.GreaterThan, num: 2},
				{prop: predicate.IsPalindrome, cmp: predicate.Equals, b: false},
			},
		},
		{
			"shorter than implies length",
			"shorter than 4 characters",
			[]wantPred{{prop: predicate.Length, cmp: predicate.LessThan, num: 4}},
		},
		{
			"exact word count",
			"strings with exactly 2 words",
			[]wantPred{{prop: predicate.WordCount, cmp: predicate.Equals, num: 2}},
		},
		{
			"single word shorthand",
			"single word strings",
			[]wantPred{{prop: predicate.WordCount, cmp: predicate.Equals, num: 1}},
		},
		{
			"unique characters",
			"strings with at least 5 unique characters",
			[]wantPred{{prop: predicate.UniqueCharacters, cmp: predicate.GreaterOrEqual, num: 5}},
		},
		{
			"long comparator phrase wins over its prefix",
			"length less than or equal to 8",
			[]wantPred{{prop: predicate.Length, cmp: predicate.LessOrEqual, num: 8}},
		},
		{
			"contains character",
			"strings containing the letter z",
			[]wantPred{{prop: predicate.ContainsCharacter, cmp: predicate.Contains, text: "z"}},
		},
		{
			"at most",
			"at most 12 characters",
			[]wantPred{{prop: predicate.Length, cmp: predicate.LessOrEqual, num: 12}},
		},
		{
			"case and punctuation insensitive",
			"Palindromes, at least 3 characters long!",
			[]wantPred{
				{prop: predicate.IsPalindrome, cmp: predicate.Equals, b: true},
				{prop: predicate.Length, cmp: predicate.GreaterOrEqual, num: 3},
			},
		},
		{
			"number before property name",
			"strings that have fewer than 3 words",
			[]wantPred{{prop: predicate.WordCount, cmp: predicate.LessThan, num: 3}},
		},
		{
			"three clauses",
			"palindromic and longer than 2 characters and with the letter a",
			[]wantPred{
				{prop: predicate.IsPalindrome, cmp: predicate.Equals, b: true},
				{prop: predicate.Length, cmp: predicate.GreaterThan, num: 2},
				{prop: predicate.ContainsCharacter, cmp: predicate.Contains, text: "a"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.phrase)
			if err != nil {
				t.Fatalf("Translate(%q) error = %v", tt.phrase, err)
			}
			assertPredicates(t, got, tt.want)
		})
	}
}

func TestTranslate_FailsClosed(t *testing.T) {
	phrases := []string{
		"show me something cool",
		"",
		"   ",
		"palindromes or long strings",       // disjunction is out of grammar
		"longer than characters",            // comparator without a number
		"10 characters",                     // number without a comparator
		"palindromes with length",           // dangling property
		"strings longer than 3 and",         // empty trailing clause
		"longer than 3 and shorter than",    // incomplete second clause
		"strings sorted by length ascending", // unknown verb
		"containing the letter",             // contains without operand
		"containing the letter xyz",         // multi-character operand
		"longer than 3 5 characters",        // two numbers in one clause
		"longer than shorter than 3",        // two comparators in one clause
	}

	for _, phrase := range phrases {
		t.Run(phrase, func(t *testing.T) {
			preds, err := Translate(phrase)
			if err == nil {
				t.Fatalf("Translate(%q) = %v, want error", phrase, preds)
			}
			if !errors.Is(err, domain.ErrUnrecognizedQuery) {
				t.Errorf("error = %v, want ErrUnrecognizedQuery", err)
			}
		})
	}
}

func TestTranslate_RemainderReported(t *testing.T) {
	_, err := Translate("show me something cool")
	var uErr *domain.UnrecognizedQueryError
	if !errors.As(err, &uErr) {
		t.Fatalf("error type = %T, want *domain.UnrecognizedQueryError", err)
	}
	if uErr.Remainder != "something cool" {
		t.Errorf("Remainder = %q, want \"something cool\"", uErr.Remainder)
	}
}

func TestTranslate_PhraseTooLong(t *testing.T) {
	_, err := Translate(strings.Repeat("a", MaxPhraseLen+1))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestTranslate_MatchesStructuredEquivalent(t *testing.T) {
	fromPhrase, err := Translate("palindromes that are at least 3 characters long")
	if err != nil {
		t.Fatal(err)
	}
	fromParams, err := FromParams(map[string]string{"is_palindrome": "true", "min_length": "3"})
	if err != nil {
		t.Fatal(err)
	}

	if len(fromPhrase) != len(fromParams) {
		t.Fatalf("predicate counts differ: %d vs %d", len(fromPhrase), len(fromParams))
	}
	// Same predicate set, possibly different order between the two surfaces.
	for _, p := range fromPhrase {
		found := false
		for _, q := range fromParams {
			if p == q {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("predicate %s from the phrase has no structured counterpart", p)
		}
	}
}
