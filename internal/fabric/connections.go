package fabric

import (
	"context"
	"encoding/json"
	"net/http"
)

// SearchConnections lists connections through POST /connections/search.
// Listing without a filter is a search with no filter block.
func (s *Service) SearchConnections(ctx context.Context, filter ConnectionFilter, page Page) (json.RawMessage, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}

	var expressions []searchExpression
	if filter.Name != "" {
		expressions = append(expressions, likeExpression("/name", filter.Name))
	}
	if filter.State != "" {
		expressions = append(expressions, equalsExpression("/operation/equipmentStatus", filter.State))
	}
	if filter.ProjectID != "" {
		expressions = append(expressions, equalsExpression("/project/projectId", filter.ProjectID))
	}

	return s.api.Do(ctx, http.MethodPost, "/connections/search", nil, newSearchRequest(page, expressions...))
}

// GetConnection returns a single connection by UUID.
func (s *Service) GetConnection(ctx context.Context, connectionID string) (json.RawMessage, error) {
	path, err := resourcePath("/connections", connectionID, "connection_id")
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodGet, path, nil, nil)
}

// CreateConnection provisions a new connection.
func (s *Service) CreateConnection(ctx context.Context, req ConnectionRequest) (json.RawMessage, error) {
	payload, err := BuildConnectionPayload(req)
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodPost, "/connections", nil, payload)
}

// ValidateConnection asks the provider to validate a connection request
// without provisioning it.
func (s *Service) ValidateConnection(ctx context.Context, req ConnectionRequest) (json.RawMessage, error) {
	payload, err := BuildConnectionPayload(req)
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodPost, "/connections/validate", nil, payload)
}

// UpdateConnection applies a partial update as a list of replace operations.
func (s *Service) UpdateConnection(ctx context.Context, connectionID string, req UpdateConnectionRequest) (json.RawMessage, error) {
	path, err := resourcePath("/connections", connectionID, "connection_id")
	if err != nil {
		return nil, err
	}
	patch, err := BuildUpdatePatch(req)
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodPatch, path, nil, patch)
}

// DeleteConnection deprovisions a connection.
func (s *Service) DeleteConnection(ctx context.Context, connectionID string) (json.RawMessage, error) {
	path, err := resourcePath("/connections", connectionID, "connection_id")
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodDelete, path, nil, nil)
}

// ConnectionStats is not offered by the v4 API and fails without a request.
func (s *Service) ConnectionStats(ctx context.Context, connectionID string) (json.RawMessage, error) {
	return nil, &NotSupportedError{
		Operation: "connection statistics",
		Reason:    "use the Equinix portal or the streaming telemetry API",
	}
}
