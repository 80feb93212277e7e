package chi

import (
	"time"

	"github.com/kailas-cloud/stringdex/internal/domain/predicate"
	domrec "github.com/kailas-cloud/stringdex/internal/domain/record"
)

// Error codes returned by the API.
const (
	codeBadRequest        = "bad_request"
	codeNotFound          = "not_found"
	codeValidationFailed  = "validation_failed"
	codeUnrecognizedQuery = "unrecognized_query"
	codeInternalError     = "internal_error"
)

type createStringRequest struct {
	// Pointer so an absent field is distinguishable from the (valid)
	// empty string.
	Value *string `json:"value"`
}

type stringResponse struct {
	ID         string             `json:"id"`
	Value      string             `json:"value"`
	Properties propertiesResponse `json:"properties"`
	CreatedAt  time.Time          `json:"created_at"`
}

type propertiesResponse struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

type stringListResponse struct {
	Data           []stringResponse `json:"data"`
	Count          int              `json:"count"`
	FiltersApplied []string         `json:"filters_applied"`
}

type naturalListResponse struct {
	Data             []stringResponse `json:"data"`
	Count            int              `json:"count"`
	InterpretedQuery interpretedQuery `json:"interpreted_query"`
}

type interpretedQuery struct {
	Original      string   `json:"original"`
	ParsedFilters []string `json:"parsed_filters"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Parameter string `json:"parameter,omitempty"`
	Unparsed  string `json:"unparsed,omitempty"`
}

func recordToResponse(rec domrec.StringRecord) stringResponse {
	props := rec.Properties()
	return stringResponse{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: propertiesResponse{
			Length:                props.Length(),
			IsPalindrome:          props.IsPalindrome(),
			UniqueCharacters:      props.UniqueCharacters(),
			WordCount:             props.WordCount(),
			SHA256Hash:            props.SHA256Hash(),
			CharacterFrequencyMap: props.Frequency(),
		},
		CreatedAt: time.UnixMilli(rec.CreatedAt()).UTC(),
	}
}

func recordsToResponses(records []domrec.StringRecord) []stringResponse {
	items := make([]stringResponse, len(records))
	for i, rec := range records {
		items[i] = recordToResponse(rec)
	}
	return items
}

func predicatesToStrings(preds []predicate.Predicate) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.String()
	}
	return out
}
