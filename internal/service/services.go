package service

import (
	"fmt"
	"sort"

	"github.com/MKhiriev/go-pim-sync/internal/codec"
	"github.com/MKhiriev/go-pim-sync/internal/config"
	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/state"
	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

type Services struct {
	AppInfoService AppInfoService

	sessions map[string]Session
}

// NewServices builds one engine per collection. Engines of collections
// that live in the same resource receive the same handle from handles.
func NewServices(
	collections []models.Collection,
	handles *store.Handles,
	repos *state.Repositories,
	cfg config.App,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, err
	}

	sessions := make(map[string]Session, len(collections))
	for _, c := range collections {
		cc, err := codec.ForKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", c.Name, err)
		}
		sessions[c.Name] = NewEngine(c, handles.Get(c.Resource), repos.Tables, repos.Anchors, cc, logger)
	}

	return &Services{
		AppInfoService: appInfo,
		sessions:       sessions,
	}, nil
}

// Session returns the session of the named collection.
func (s *Services) Session(collection string) (Session, error) {
	session, ok := s.sessions[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	return session, nil
}

// Collections returns the configured collection names in sorted order.
func (s *Services) Collections() []string {
	names := make([]string, 0, len(s.sessions))
	for name := range s.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
