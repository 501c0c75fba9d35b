package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Flag is a capability flag that the directory encodes either as a boolean
// or as a string (usually a URL or a version note). A non-empty string
// counts as set.
type Flag struct {
	Set   bool
	Value string
}

// UnmarshalJSON accepts true/false, a string, or null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = Flag{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flag{Set: s != "", Value: s}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("flag must be a boolean or a string: %w", err)
	}
	*f = Flag{Set: b}
	return nil
}

// MarshalJSON writes the string form when one was given, the boolean otherwise.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f.Value != "" {
		return json.Marshal(f.Value)
	}
	return json.Marshal(f.Set)
}

// IsZero reports whether the flag is unset, for omitzero.
func (f Flag) IsZero() bool { return !f.Set && f.Value == "" }

// NewArchSupport describes support for the React Native new architecture.
type NewArchSupport int

const (
	NewArchUnknown NewArchSupport = iota
	NewArchSupported
	NewArchUnsupported
	NewArchOnly
)

const newArchOnlyValue = "new-arch-only"

// UnmarshalJSON accepts true, false, "new-arch-only" or null.
func (n *NewArchSupport) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		*n = NewArchUnknown
	case "true":
		*n = NewArchSupported
	case "false":
		*n = NewArchUnsupported
	case `"` + newArchOnlyValue + `"`:
		*n = NewArchOnly
	default:
		return fmt.Errorf("unknown newArchitecture value %s", data)
	}
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON.
func (n NewArchSupport) MarshalJSON() ([]byte, error) {
	switch n {
	case NewArchSupported:
		return []byte("true"), nil
	case NewArchUnsupported:
		return []byte("false"), nil
	case NewArchOnly:
		return json.Marshal(newArchOnlyValue)
	}
	return []byte("null"), nil
}

// IsZero reports whether support is unknown, for omitzero.
func (n NewArchSupport) IsZero() bool { return n == NewArchUnknown }

// timestamp decodes an RFC 3339 string. Empty, null or unparsable values
// decode to the zero time.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		parsed = time.Time{}
	}
	*t = timestamp(parsed)
	return nil
}

// UnmarshalJSON decodes the timestamps leniently so that a record with a
// blank date still renders.
func (s *Stats) UnmarshalJSON(data []byte) error {
	type plain Stats
	aux := struct {
		*plain
		UpdatedAt timestamp `json:"updatedAt"`
		CreatedAt timestamp `json:"createdAt"`
		PushedAt  timestamp `json:"pushedAt"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.UpdatedAt = time.Time(aux.UpdatedAt)
	s.CreatedAt = time.Time(aux.CreatedAt)
	s.PushedAt = time.Time(aux.PushedAt)
	return nil
}
