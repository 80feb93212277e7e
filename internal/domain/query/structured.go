// Package query converts both query surfaces — explicit parameters and
// bounded natural-language phrases — into predicate lists.
package query

import (
	"strconv"

	"github.com/kailas-cloud/stringdex/internal/domain"
	"github.com/kailas-cloud/stringdex/internal/domain/predicate"
)

// paramSpec maps one recognized query parameter to a predicate shape.
type paramSpec struct {
	name     string
	property predicate.Property
	cmp      predicate.Comparator
}

// numericParams is the fixed, ordered set of numeric filter parameters.
// Iteration order determines predicate order, keeping queries deterministic.
var numericParams = []paramSpec{
	{"min_length", predicate.Length, predicate.GreaterOrEqual},
	{"max_length", predicate.Length, predicate.LessOrEqual},
	{"word_count", predicate.WordCount, predicate.Equals},
	{"min_unique_characters", predicate.UniqueCharacters, predicate.GreaterOrEqual},
	{"max_unique_characters", predicate.UniqueCharacters, predicate.LessOrEqual},
}

// FromParams builds predicates from structured query parameters.
// Unrecognized parameter names are ignored; malformed values for recognized
// parameters fail with a ValidationError naming the parameter.
func FromParams(params map[string]string) ([]predicate.Predicate, error) {
	preds := make([]predicate.Predicate, 0, len(params))

	for _, spec := range numericParams {
		raw, ok := params[spec.name]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.NewValidationError(spec.name, "must be an integer, got "+strconv.Quote(raw))
		}
		p, err := predicate.NewNumeric(spec.property, spec.cmp, n)
		if err != nil {
			return nil, domain.NewValidationError(spec.name, err.Error())
		}
		preds = append(preds, p)
	}

	if raw, ok := params["is_palindrome"]; ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, domain.NewValidationError("is_palindrome", "must be a boolean, got "+strconv.Quote(raw))
		}
		preds = append(preds, predicate.NewBool(b))
	}

	if raw, ok := params["contains_character"]; ok {
		p, err := predicate.NewContains(raw)
		if err != nil {
			return nil, domain.NewValidationError("contains_character", err.Error())
		}
		preds = append(preds, p)
	}

	return preds, nil
}
