package registry

import (
	"bytes"
	"encoding/json"
)

// Record is the subset of an npm "latest" version document used by libpanel.
type Record struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	License     License  `json:"license,omitzero"`
	Author      *Author  `json:"author,omitempty"`
	Maintainers []Author `json:"maintainers,omitempty"`
}

// AuthorName returns the display name of the package author, or "" when the
// record has none.
func (r *Record) AuthorName() string {
	if r == nil {
		return ""
	}
	return r.Author.DisplayName()
}

// Person is the structured form of an npm author or maintainer.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Author is either a plain string ("Jane Doe <jane@example.com>") or a
// structured [Person]. Shapes other than those two decode as an empty
// author instead of failing the whole record.
type Author struct {
	Text   string
	Person *Person
}

// DisplayName prefers the structured name and falls back to the plain string.
func (a *Author) DisplayName() string {
	if a == nil {
		return ""
	}
	if a.Person != nil {
		return a.Person.Name
	}
	return a.Text
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Author) UnmarshalJSON(data []byte) error {
	*a = Author{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		return json.Unmarshal(data, &a.Text)
	case '{':
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		a.Person = &Person{
			Name:  extractField(fields, "name"),
			Email: extractField(fields, "email"),
			URL:   extractField(fields, "url"),
		}
	}
	return nil
}

func extractField(fields map[string]any, field string) string {
	if s, ok := fields[field].(string); ok {
		return s
	}
	return ""
}

// MarshalJSON implements json.Marshaler.
func (a Author) MarshalJSON() ([]byte, error) {
	if a.Person != nil {
		return json.Marshal(a.Person)
	}
	if a.Text != "" {
		return json.Marshal(a.Text)
	}
	return []byte("null"), nil
}

// License is the SPDX expression of a version document. Legacy documents use
// {"type": "MIT"} objects, which decode to their type.
type License string

// UnmarshalJSON implements json.Unmarshaler.
func (l *License) UnmarshalJSON(data []byte) error {
	*l = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = License(s)
	case '{':
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		*l = License(extractField(fields, "type"))
	}
	return nil
}
