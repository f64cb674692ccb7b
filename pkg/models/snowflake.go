package models

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Snowflake is a Discord id. It decodes from JSON strings, numbers and null so
// documents written with numeric ids keep loading, and encodes as a string, or
// null when empty.
type Snowflake string

// MarshalJSON implements json.Marshaler
func (s Snowflake) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Snowflake) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Snowflake(str)
		return nil
	default:
		if _, err := strconv.ParseUint(string(b), 10, 64); err != nil {
			return fmt.Errorf("snowflake %s: %w", b, err)
		}
		*s = Snowflake(b)
		return nil
	}
}

// String returns the id as a plain string
func (s Snowflake) String() string {
	return string(s)
}
