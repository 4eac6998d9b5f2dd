package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/algox/internal/shared"
)

// ID is an opaque identifier assigned by the catalog service.
//
// The service encodes ids as JSON numbers, and the login response encodes the user id as a string; both decode to the same value.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// IsZero reports whether the id is absent. The service never assigns 0.
func (id ID) IsZero() bool {
	s := strings.TrimSpace(string(id))
	return s == "" || s == "0"
}

func (id ID) String() string { return string(id) }

// CatalogEntry is one stored algorithm submission.
type CatalogEntry struct {
	ID                  ID        `json:"id"`
	Title               string    `json:"title"`
	Topic               string    `json:"topic"`
	ProgrammingLanguage string    `json:"programming_language"`
	Code                string    `json:"code"`
	OwnerID             ID        `json:"user_id"`
	CreatedAt           time.Time `json:"created_at,omitzero"`
}

// NewEntry holds the fields of an entry before the service assigns it an id.
type NewEntry struct {
	Title               string `json:"title"`
	Topic               string `json:"topic"`
	ProgrammingLanguage string `json:"programming_language"`
	Code                string `json:"code"`
}

// Validate requires every field to be non-blank.
func (e NewEntry) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", e.Title},
		{"topic", e.Topic},
		{"programming language", e.ProgrammingLanguage},
		{"code", e.Code},
	} {
		if shared.IsBlank(f.value) {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return shared.Validation("all fields are required (missing %s)", strings.Join(missing, ", "))
	}
	return nil
}

// Credential is the bearer token and user id of an authenticated session.
type Credential struct {
	Token  string `json:"token"`
	UserID ID     `json:"userID"`
}
