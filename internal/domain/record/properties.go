package record

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Properties holds the computed facts about a string (immutable value object).
type Properties struct {
	length      int
	palindrome  bool
	uniqueChars int
	wordCount   int
	hash        string
	frequency   map[string]int
}

// Hash returns the lowercase-hex SHA-256 digest of the UTF-8 bytes of value.
// The digest doubles as the record ID (content addressing).
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Compute derives all properties of value. Pure and total: every string,
// including the empty one, has a well-defined result.
//
// Counting is rune-based and whitespace-inclusive; the palindrome check is
// case-sensitive over the value exactly as stored. The empty string is
// vacuously a palindrome.
func Compute(value string) Properties {
	runes := []rune(value)

	frequency := make(map[string]int, len(runes))
	for _, r := range runes {
		frequency[string(r)]++
	}

	palindrome := true
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			palindrome = false
			break
		}
	}

	return Properties{
		length:      len(runes),
		palindrome:  palindrome,
		uniqueChars: len(frequency),
		wordCount:   len(strings.Fields(value)),
		hash:        Hash(value),
		frequency:   frequency,
	}
}

// ReconstructProperties creates Properties without recomputation (storage hydration).
func ReconstructProperties(
	length int, palindrome bool, uniqueChars, wordCount int,
	hash string, frequency map[string]int,
) Properties {
	return Properties{
		length:      length,
		palindrome:  palindrome,
		uniqueChars: uniqueChars,
		wordCount:   wordCount,
		hash:        hash,
		frequency:   frequency,
	}
}

// Length returns the number of code points in the value.
func (p Properties) Length() int { return p.length }

// IsPalindrome reports whether the value reads the same forward and backward.
func (p Properties) IsPalindrome() bool { return p.palindrome }

// UniqueCharacters returns the count of distinct code points.
func (p Properties) UniqueCharacters() int { return p.uniqueChars }

// WordCount returns the count of whitespace-delimited non-empty tokens.
func (p Properties) WordCount() int { return p.wordCount }

// SHA256Hash returns the digest used as the record ID.
func (p Properties) SHA256Hash() string { return p.hash }

// Frequency returns the per-character occurrence counts, keyed by
// single-rune strings.
func (p Properties) Frequency() map[string]int { return p.frequency }
