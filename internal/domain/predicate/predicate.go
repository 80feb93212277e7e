// Package predicate defines the shared filter representation used by both
// the structured and the natural-language query paths, and evaluates
// predicate lists against stored records.
package predicate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/stringdex/internal/domain/record"
)

// MaxPredicates is the maximum number of predicates per query.
const MaxPredicates = 16

// Property identifies a filterable record property.
type Property string

// Filterable properties.
const (
	Length            Property = "length"
	WordCount         Property = "word_count"
	UniqueCharacters  Property = "unique_characters"
	IsPalindrome      Property = "is_palindrome"
	ContainsCharacter Property = "contains_character"
)

// Comparator identifies a comparison operation.
type Comparator string

// Comparators. Contains applies only to ContainsCharacter,
// Equals is the sole boolean comparator.
const (
	Equals         Comparator = "eq"
	GreaterThan    Comparator = "gt"
	LessThan       Comparator = "lt"
	GreaterOrEqual Comparator = "gte"
	LessOrEqual    Comparator = "lte"
	Contains       Comparator = "contains"
)

var numericProperties = map[Property]bool{
	Length:           true,
	WordCount:        true,
	UniqueCharacters: true,
}

var numericComparators = map[Comparator]bool{
	Equals:         true,
	GreaterThan:    true,
	LessThan:       true,
	GreaterOrEqual: true,
	LessOrEqual:    true,
}

// Predicate is one atomic filter condition: (property, comparator, operand).
// Exactly one operand field is meaningful, determined by the property type.
type Predicate struct {
	property   Property
	comparator Comparator
	number     int
	boolean    bool
	text       string
}

// NewNumeric creates a predicate over a numeric property.
func NewNumeric(prop Property, cmp Comparator, operand int) (Predicate, error) {
	if !numericProperties[prop] {
		return Predicate{}, fmt.Errorf("property %q is not numeric", prop)
	}
	if !numericComparators[cmp] {
		return Predicate{}, fmt.Errorf("comparator %q is not valid for numeric properties", cmp)
	}
	if operand < 0 {
		return Predicate{}, fmt.Errorf("operand for %q must be non-negative, got %d", prop, operand)
	}
	return Predicate{property: prop, comparator: cmp, number: operand}, nil
}

// NewBool creates an is_palindrome equality predicate.
func NewBool(operand bool) Predicate {
	return Predicate{property: IsPalindrome, comparator: Equals, boolean: operand}
}

// NewContains creates a contains-character predicate. The operand must be
// exactly one code point.
func NewContains(ch string) (Predicate, error) {
	if utf8.RuneCountInString(ch) != 1 {
		return Predicate{}, fmt.Errorf("contains operand must be a single character, got %q", ch)
	}
	return Predicate{property: ContainsCharacter, comparator: Contains, text: ch}, nil
}

// Property returns the filtered property name.
func (p Predicate) Property() Property { return p.property }

// Comparator returns the comparison operation.
func (p Predicate) Comparator() Comparator { return p.comparator }

// Number returns the numeric operand.
func (p Predicate) Number() int { return p.number }

// Bool returns the boolean operand.
func (p Predicate) Bool() bool { return p.boolean }

// Text returns the string operand.
func (p Predicate) Text() string { return p.text }

// String renders the predicate for diagnostics and query echoes.
func (p Predicate) String() string {
	switch p.property {
	case IsPalindrome:
		return fmt.Sprintf("%s = %t", p.property, p.boolean)
	case ContainsCharacter:
		return fmt.Sprintf("value contains %q", p.text)
	default:
		return fmt.Sprintf("%s %s %d", p.property, comparatorSymbol(p.comparator), p.number)
	}
}

func comparatorSymbol(c Comparator) string {
	switch c {
	case Equals:
		return "="
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	case GreaterOrEqual:
		return ">="
	case LessOrEqual:
		return "<="
	default:
		return string(c)
	}
}

// Matches reports whether rec satisfies the predicate.
func (p Predicate) Matches(rec record.StringRecord) bool {
	props := rec.Properties()
	switch p.property {
	case IsPalindrome:
		return props.IsPalindrome() == p.boolean
	case ContainsCharacter:
		return strings.Contains(rec.Value(), p.text)
	case Length:
		return compare(props.Length(), p.comparator, p.number)
	case WordCount:
		return compare(props.WordCount(), p.comparator, p.number)
	case UniqueCharacters:
		return compare(props.UniqueCharacters(), p.comparator, p.number)
	default:
		return false
	}
}

func compare(got int, cmp Comparator, want int) bool {
	switch cmp {
	case Equals:
		return got == want
	case GreaterThan:
		return got > want
	case LessThan:
		return got < want
	case GreaterOrEqual:
		return got >= want
	case LessOrEqual:
		return got <= want
	default:
		return false
	}
}

// Filter returns the records satisfying every predicate, preserving the
// input order (stable). An empty predicate list matches everything.
func Filter(records []record.StringRecord, preds []Predicate) []record.StringRecord {
	if len(preds) == 0 {
		return records
	}

	out := make([]record.StringRecord, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll(rec record.StringRecord, preds []Predicate) bool {
	for _, p := range preds {
		if !p.Matches(rec) {
			return false
		}
	}
	return true
}
