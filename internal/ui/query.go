package ui

import (
	"strings"

	"github.com/desertthunder/algox/internal/models"
)

// parseQuery reads a search line of key:value filters. Words without a key form the title.
//
// Keys: title, topic, lang, user, id, sort.
func parseQuery(line string) (models.SearchQuery, error) {
	var (
		q     models.SearchQuery
		title []string
	)

	for _, tok := range strings.Fields(line) {
		k, v, ok := strings.Cut(tok, ":")
		if !ok || v == "" {
			title = append(title, tok)
			continue
		}

		switch strings.ToLower(k) {
		case "title":
			title = append(title, v)
		case "topic":
			q.Topic = v
		case "lang", "language":
			q.ProgrammingLanguage = v
		case "user", "owner":
			q.OwnerID = v
		case "id":
			q.ID = v
		case "sort":
			sort, err := models.ParseSortKey(v)
			if err != nil {
				return models.SearchQuery{}, err
			}
			q.SortBy = sort
		default:
			title = append(title, tok)
		}
	}

	q.Title = strings.Join(title, " ")
	return q, nil
}
