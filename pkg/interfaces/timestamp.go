package interfaces

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp binds a published date-time to the exact text it was parsed
// from. Encoding a Timestamp reproduces the original string byte for byte,
// so a document's `published` value survives a parse/serialize round trip
// unchanged regardless of precision or zone offset notation.
type Timestamp struct {
	text  string
	value time.Time
}

// ParseTimestamp parses an ISO-8601 date-time string (RFC 3339, with or
// without fractional seconds) and retains the original text for
// re-serialization. Date-only values are rejected.
func ParseTimestamp(text string) (Timestamp, error) {
	value, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp %q is not an ISO-8601 date-time: %w", text, err)
	}
	return Timestamp{text: text, value: value}, nil
}

// String returns the original text the timestamp was parsed from.
func (t Timestamp) String() string {
	return t.text
}

// Time returns the parsed date-time value.
func (t Timestamp) Time() time.Time {
	return t.value
}

// IsZero reports whether the timestamp was never populated.
func (t Timestamp) IsZero() bool {
	return t.text == ""
}

// MarshalJSON encodes the timestamp as its original input string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.text)
}

// UnmarshalJSON decodes a JSON string and re-parses it, preserving the
// encoded text.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(text)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
