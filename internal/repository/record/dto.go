package record

import (
	"encoding/json"
	"fmt"

	domrec "github.com/kailas-cloud/stringdex/internal/domain/record"
)

// recordDTO is the at-rest JSON shape of a record. Timestamps are unix
// millis; the wire format (RFC3339) is the transport's concern.
type recordDTO struct {
	ID          string   `json:"id"`
	Value       string   `json:"value"`
	Properties  propsDTO `json:"properties"`
	CreatedAtMs int64    `json:"created_at_ms"`
}

type propsDTO struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

func marshalRecord(rec domrec.StringRecord) ([]byte, error) {
	props := rec.Properties()
	dto := recordDTO{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: propsDTO{
			Length:                props.Length(),
			IsPalindrome:          props.IsPalindrome(),
			UniqueCharacters:      props.UniqueCharacters(),
			WordCount:             props.WordCount(),
			SHA256Hash:            props.SHA256Hash(),
			CharacterFrequencyMap: props.Frequency(),
		},
		CreatedAtMs: rec.CreatedAt(),
	}

	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal record %s: %w", rec.ID(), err)
	}
	return data, nil
}

func unmarshalRecord(data []byte) (domrec.StringRecord, error) {
	var dto recordDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domrec.StringRecord{}, fmt.Errorf("unmarshal record: %w", err)
	}

	props := domrec.ReconstructProperties(
		dto.Properties.Length,
		dto.Properties.IsPalindrome,
		dto.Properties.UniqueCharacters,
		dto.Properties.WordCount,
		dto.Properties.SHA256Hash,
		dto.Properties.CharacterFrequencyMap,
	)
	return domrec.Reconstruct(dto.ID, dto.Value, props, dto.CreatedAtMs), nil
}
