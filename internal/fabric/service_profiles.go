package fabric

import (
	"context"
	"encoding/json"
	"net/http"
)

// ListServiceProfiles returns one page of service profiles, optionally
// narrowed by metro, profile type and name.
func (s *Service) ListServiceProfiles(ctx context.Context, filter ServiceProfileFilter, page Page) (json.RawMessage, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}

	query := pageQuery(page)
	if filter.MetroCode != "" {
		query.Set("metroCode", filter.MetroCode)
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}

	return s.api.Do(ctx, http.MethodGet, "/serviceProfiles", query, nil)
}

// GetServiceProfile returns a single service profile by UUID.
func (s *Service) GetServiceProfile(ctx context.Context, profileID string) (json.RawMessage, error) {
	path, err := resourcePath("/serviceProfiles", profileID, "service_profile_id")
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodGet, path, nil, nil)
}
