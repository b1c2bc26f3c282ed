package encoding

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration with a readable JSON form. It marshals to a
// duration string such as "1m30s" and unmarshals from either a duration
// string or an integer count of nanoseconds.
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler. null leaves d unchanged.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("encoding: duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var ns int64
	if err := json.Unmarshal(b, &ns); err != nil {
		return fmt.Errorf("encoding: duration must be a string or integer nanoseconds: %w", err)
	}
	*d = Duration(ns)
	return nil
}

// String returns the duration formatted as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
