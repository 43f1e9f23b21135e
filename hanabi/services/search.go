package services

import (
	"context"
	"strings"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/database/repositories"
	"github.com/sahilm/fuzzy"
)

// catalogSearchItems implements fuzzy.Source over catalog entries.
type catalogSearchItems []catalogSearchItem

type catalogSearchItem struct {
	Entry *models.CatalogEntry
	Name  string
}

func (items catalogSearchItems) Len() int {
	return len(items)
}

func (items catalogSearchItems) String(i int) string {
	return items[i].Name
}

// SearchService fuzzy-matches catalog characters by name and series.
type SearchService struct {
	catalog repositories.CatalogRepository
}

func NewSearchService(catalog repositories.CatalogRepository) *SearchService {
	return &SearchService{catalog: catalog}
}

// Search returns catalog entries ranked by match quality, best first.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*models.CatalogEntry, error) {
	entries, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query = normalizeQuery(query)
	if query == "" {
		if len(entries) > limit {
			entries = entries[:limit]
		}
		return entries, nil
	}

	items := make(catalogSearchItems, len(entries))
	for i, entry := range entries {
		items[i] = catalogSearchItem{
			Entry: entry,
			Name:  normalizeQuery(entry.Name + " " + entry.Anime),
		}
	}

	matches := fuzzy.FindFrom(query, items)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]*models.CatalogEntry, len(matches))
	for i, match := range matches {
		results[i] = items[match.Index].Entry
	}
	return results, nil
}

func normalizeQuery(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
