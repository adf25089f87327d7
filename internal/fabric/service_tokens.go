package fabric

import (
	"context"
	"encoding/json"
	"net/http"
)

// CreateServiceToken issues a new service token.
func (s *Service) CreateServiceToken(ctx context.Context, req ServiceTokenRequest) (json.RawMessage, error) {
	payload, err := BuildServiceTokenPayload(req)
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodPost, "/serviceTokens", nil, payload)
}

// ListServiceTokens returns one page of service tokens.
func (s *Service) ListServiceTokens(ctx context.Context, page Page) (json.RawMessage, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodGet, "/serviceTokens", pageQuery(page), nil)
}

// GetServiceToken returns a single service token by UUID.
func (s *Service) GetServiceToken(ctx context.Context, tokenID string) (json.RawMessage, error) {
	path, err := resourcePath("/serviceTokens", tokenID, "service_token_id")
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodGet, path, nil, nil)
}

// DeleteServiceToken revokes a service token.
func (s *Service) DeleteServiceToken(ctx context.Context, tokenID string) (json.RawMessage, error) {
	path, err := resourcePath("/serviceTokens", tokenID, "service_token_id")
	if err != nil {
		return nil, err
	}
	return s.api.Do(ctx, http.MethodDelete, path, nil, nil)
}
