package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/algox/internal/shared"
)

// wireEntry mirrors the service's entry object. CreatedAt stays raw so an unexpected timestamp format never fails the decode.
type wireEntry struct {
	ID                  ID              `json:"id"`
	Title               string          `json:"title"`
	Topic               string          `json:"topic"`
	ProgrammingLanguage string          `json:"programming_language"`
	Code                string          `json:"code"`
	OwnerID             ID              `json:"user_id"`
	CreatedAt           json.RawMessage `json:"created_at"`
}

func (w wireEntry) entry() CatalogEntry {
	e := CatalogEntry{
		ID:                  w.ID,
		Title:               w.Title,
		Topic:               w.Topic,
		ProgrammingLanguage: w.ProgrammingLanguage,
		Code:                w.Code,
		OwnerID:             w.OwnerID,
	}

	var ts string
	if json.Unmarshal(w.CreatedAt, &ts) == nil {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil && !t.IsZero() {
			e.CreatedAt = t
		}
	}
	return e
}

// DecodeEntry decodes a single entry object. The assigned id is required.
func DecodeEntry(data []byte) (CatalogEntry, error) {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return CatalogEntry{}, fmt.Errorf("%w: entry: %v", shared.ErrDataShape, err)
	}
	if w.ID.IsZero() {
		return CatalogEntry{}, fmt.Errorf("%w: entry has no id", shared.ErrDataShape)
	}
	return w.entry(), nil
}

// DecodeEntries decodes an array of entries. Every element needs an id.
//
// The service encodes an empty result as null; that decodes to an empty, non-nil slice.
func DecodeEntries(data []byte) ([]CatalogEntry, error) {
	if isNull(data) {
		return []CatalogEntry{}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected an array of entries: %v", shared.ErrDataShape, err)
	}

	entries := make([]CatalogEntry, 0, len(raw))
	for i, item := range raw {
		e, err := DecodeEntry(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// DecodeCredential decodes the login response. Both token and userID are required.
func DecodeCredential(data []byte) (Credential, error) {
	var c Credential
	if err := json.Unmarshal(data, &c); err != nil {
		return Credential{}, fmt.Errorf("%w: login response: %v", shared.ErrDataShape, err)
	}
	if c.Token == "" {
		return Credential{}, fmt.Errorf("%w: login response has no token", shared.ErrDataShape)
	}
	if c.UserID.IsZero() {
		return Credential{}, fmt.Errorf("%w: login response has no userID", shared.ErrDataShape)
	}
	return c, nil
}

// DecodeLanguages decodes the list of supported programming languages.
func DecodeLanguages(data []byte) ([]string, error) {
	if isNull(data) {
		return []string{}, nil
	}

	var langs []string
	if err := json.Unmarshal(data, &langs); err != nil {
		return nil, fmt.Errorf("%w: expected an array of languages: %v", shared.ErrDataShape, err)
	}
	return langs, nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
