package record

import "fmt"

// MaxValueSize is the maximum accepted value size in bytes.
const MaxValueSize = 65536 // 64KB

// StringRecord is one analyzed string (immutable value object).
// Its ID is derived from the value, so equal values always collapse
// into the same record.
type StringRecord struct {
	id         string
	value      string
	properties Properties
	createdAt  int64 // unix millis, stamped at first insertion
}

// New analyzes value and creates a StringRecord stamped with createdAt.
func New(value string, createdAt int64) (StringRecord, error) {
	if len(value) > MaxValueSize {
		return StringRecord{}, fmt.Errorf("value too large (max %d bytes)", MaxValueSize)
	}

	props := Compute(value)
	return StringRecord{
		id:         props.SHA256Hash(),
		value:      value,
		properties: props,
		createdAt:  createdAt,
	}, nil
}

// Reconstruct creates a StringRecord without recomputation (storage hydration).
func Reconstruct(id, value string, props Properties, createdAt int64) StringRecord {
	return StringRecord{id: id, value: value, properties: props, createdAt: createdAt}
}

// ID returns the content-derived identifier (SHA-256 hex digest).
func (r StringRecord) ID() string { return r.id }

// Value returns the original input string exactly as submitted.
func (r StringRecord) Value() string { return r.value }

// Properties returns the computed properties.
func (r StringRecord) Properties() Properties { return r.properties }

// CreatedAt returns the first-insertion timestamp in unix milliseconds.
func (r StringRecord) CreatedAt() int64 { return r.createdAt }
