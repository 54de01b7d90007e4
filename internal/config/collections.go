package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-pim-sync/models"
)

// CollectionSet returns the enabled collections with the configured
// category filter applied.
func (a App) CollectionSet() ([]models.Collection, error) {
	all := models.DefaultCollections(models.CategoryFilter(a.FilterCategories))
	if len(a.Collections) == 0 {
		return all, nil
	}

	byName := make(map[string]models.Collection, len(all))
	for _, c := range all {
		byName[c.Name] = c
	}

	out := make([]models.Collection, 0, len(a.Collections))
	seen := make(map[string]bool, len(a.Collections))
	for _, name := range a.Collections {
		name = strings.TrimSpace(name)
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown collection %q", ErrInvalidAppConfigs, name)
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, c)
		}
	}
	return out, nil
}
