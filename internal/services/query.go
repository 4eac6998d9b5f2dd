package services

import (
	"net/url"

	"github.com/desertthunder/algox/internal/models"
)

// BuildSearchParams maps each non-empty field of q to one query parameter.
//
// Empty fields are omitted entirely. Values are sent verbatim; the service
// owns filtering, sorting and validation.
func BuildSearchParams(q models.SearchQuery) url.Values {
	params := url.Values{}
	for _, p := range []struct{ key, value string }{
		{"title", q.Title},
		{"topic", q.Topic},
		{"programming_language", q.ProgrammingLanguage},
		{"user_id", q.OwnerID},
		{"id", q.ID},
		{"sort_by", string(q.SortBy)},
	} {
		if p.value != "" {
			params.Set(p.key, p.value)
		}
	}
	return params
}
