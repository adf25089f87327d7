package fabric

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const routerReason = "cloud router lifecycle is managed outside this API version"

// SearchRouters lists cloud routers through POST /routers/search.
func (s *Service) SearchRouters(ctx context.Context, filter RouterFilter, page Page) (json.RawMessage, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}

	var expressions []searchExpression
	if filter.Name != "" {
		expressions = append(expressions, likeExpression("/name", filter.Name))
	}
	if filter.State != "" {
		expressions = append(expressions, equalsExpression("/state", filter.State))
	}
	if filter.ProjectID != "" {
		expressions = append(expressions, equalsExpression("/project/projectId", filter.ProjectID))
	}

	return s.api.Do(ctx, http.MethodPost, "/routers/search", nil, newSearchRequest(page, expressions...))
}

// GetRouter looks a router up by UUID via a single-match search. An empty
// result is a *NotFoundError.
func (s *Service) GetRouter(ctx context.Context, routerID string) (json.RawMessage, error) {
	if routerID == "" {
		return nil, missing("router_id")
	}

	req := newSearchRequest(Page{Offset: 0, Limit: 1}, equalsExpression("/uuid", routerID))
	raw, err := s.api.Do(ctx, http.MethodPost, "/routers/search", nil, req)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse router search response: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, &NotFoundError{Resource: "router", ID: routerID}
	}

	return result.Data[0], nil
}

// CreateRouter is permanently unsupported and fails without a request.
func (s *Service) CreateRouter(ctx context.Context) (json.RawMessage, error) {
	return nil, &NotSupportedError{Operation: "router creation", Reason: routerReason}
}

// UpdateRouter is permanently unsupported and fails without a request.
func (s *Service) UpdateRouter(ctx context.Context, routerID string) (json.RawMessage, error) {
	return nil, &NotSupportedError{Operation: "router update", Reason: routerReason}
}

// DeleteRouter is permanently unsupported and fails without a request.
func (s *Service) DeleteRouter(ctx context.Context, routerID string) (json.RawMessage, error) {
	return nil, &NotSupportedError{Operation: "router deletion", Reason: routerReason}
}
