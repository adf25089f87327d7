package fabric

import (
	"context"
	"encoding/json"
	"net/http"
)

// ListPorts returns one page of the account's ports.
func (s *Service) ListPorts(ctx context.Context, page Page) (json.RawMessage, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodGet, "/ports", pageQuery(page), nil)
}

// GetPort returns a single port by UUID.
func (s *Service) GetPort(ctx context.Context, portID string) (json.RawMessage, error) {
	path, err := resourcePath("/ports", portID, "port_id")
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodGet, path, nil, nil)
}
