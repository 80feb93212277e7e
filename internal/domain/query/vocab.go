package query

import "github.com/kailas-cloud/stringdex/internal/domain/predicate"

// entryKind discriminates vocabulary entry behavior in the scanner.
type entryKind int

const (
	kindProperty entryKind = iota // names a numeric property
	kindBool                      // complete is_palindrome predicate
	kindCompare                   // comparator, optionally with an implied property
	kindContains                  // contains-character, consumes the next token as operand
	kindDirect                    // complete numeric predicate (e.g. "single word")
	kindAnd                       // clause separator
	kindOr                        // unsupported disjunction, always fails
)

// entry is one vocabulary item. Matching is greedy longest-match over
// tokens; ties between equal-length phrases go to the earlier entry.
type entry struct {
	phrase   string
	kind     entryKind
	property predicate.Property   // kindProperty, kindDirect
	cmp      predicate.Comparator // kindCompare, kindDirect
	implied  predicate.Property   // kindCompare: property implied by the phrase itself
	boolVal  bool                 // kindBool
	number   int                  // kindDirect
}

// vocabulary is the complete recognized grammar, in priority order.
// Anything a phrase contains beyond these entries, noise words, and
// integer literals makes translation fail closed.
var vocabulary = []entry{
	// Boolean property phrases. Negated forms are longer and win the
	// longest-match race against the bare forms.
	{phrase: "not a palindrome", kind: kindBool, boolVal: false},
	{phrase: "not palindromic", kind: kindBool, boolVal: false},
	{phrase: "non palindromic", kind: kindBool, boolVal: false},
	{phrase: "non palindrome", kind: kindBool, boolVal: false},
	{phrase: "palindromic", kind: kindBool, boolVal: true},
	{phrase: "palindromes", kind: kindBool, boolVal: true},
	{phrase: "palindrome", kind: kindBool, boolVal: true},

	// Comparator phrases. The inclusive forms ("at least"/"at most") map
	// to gte/lte, the bare comparative forms to the strict comparators.
	{phrase: "greater than or equal to", kind: kindCompare, cmp: predicate.GreaterOrEqual},
	{phrase: "less than or equal to", kind: kindCompare, cmp: predicate.LessOrEqual},
	{phrase: "longer than", kind: kindCompare, cmp: predicate.GreaterThan, implied: predicate.Length},
	{phrase: "shorter than", kind: kindCompare, cmp: predicate.LessThan, implied: predicate.Length},
	{phrase: "greater than", kind: kindCompare, cmp: predicate.GreaterThan},
	{phrase: "more than", kind: kindCompare, cmp: predicate.GreaterThan},
	{phrase: "less than", kind: kindCompare, cmp: predicate.LessThan},
	{phrase: "fewer than", kind: kindCompare, cmp: predicate.LessThan},
	{phrase: "at least", kind: kindCompare, cmp: predicate.GreaterOrEqual},
	{phrase: "at most", kind: kindCompare, cmp: predicate.LessOrEqual},
	{phrase: "equal to", kind: kindCompare, cmp: predicate.Equals},
	{phrase: "exactly", kind: kindCompare, cmp: predicate.Equals},

	// Numeric property phrases.
	{phrase: "unique characters", kind: kindProperty, property: predicate.UniqueCharacters},
	{phrase: "unique character", kind: kindProperty, property: predicate.UniqueCharacters},
	{phrase: "distinct characters", kind: kindProperty, property: predicate.UniqueCharacters},
	{phrase: "distinct character", kind: kindProperty, property: predicate.UniqueCharacters},
	{phrase: "characters long", kind: kindProperty, property: predicate.Length},
	{phrase: "character long", kind: kindProperty, property: predicate.Length},
	{phrase: "characters", kind: kindProperty, property: predicate.Length},
	{phrase: "length", kind: kindProperty, property: predicate.Length},
	{phrase: "words", kind: kindProperty, property: predicate.WordCount},
	{phrase: "word", kind: kindProperty, property: predicate.WordCount},

	// Complete forms carried over from the documented query examples.
	{phrase: "single word", kind: kindDirect, property: predicate.WordCount, cmp: predicate.Equals, number: 1},
	{phrase: "one word", kind: kindDirect, property: predicate.WordCount, cmp: predicate.Equals, number: 1},

	// Contains-character phrases; the operand is the following token.
	{phrase: "containing the letter", kind: kindContains},
	{phrase: "contains the letter", kind: kindContains},
	{phrase: "contain the letter", kind: kindContains},
	{phrase: "with the letter", kind: kindContains},

	// Connectors. Conjunction only; disjunction is out of grammar.
	{phrase: "and", kind: kindAnd},
	{phrase: "or", kind: kindOr},
}

// noiseWords are filler tokens the grammar tolerates between clauses.
// The list is closed: any other unmatched token fails translation.
var noiseWords = map[string]bool{
	"strings": true,
	"string":  true,
	"that":    true,
	"which":   true,
	"are":     true,
	"is":      true,
	"be":      true,
	"have":    true,
	"having":  true,
	"with":    true,
	"a":       true,
	"an":      true,
	"the":     true,
	"all":     true,
	"only":    true,
	"show":    true,
	"me":      true,
	"find":    true,
	"list":    true,
}
