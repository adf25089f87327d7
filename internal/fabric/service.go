package fabric

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// Requester issues one authenticated API call. *Client implements it.
type Requester interface {
	Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error)
}

// Service exposes one method per Fabric resource operation. Results are the
// provider's JSON, returned unchanged.
type Service struct {
	api Requester
}

// NewService creates a Service on top of api.
func NewService(api Requester) *Service {
	return &Service{api: api}
}

// Search API request shapes shared by connections and routers.
type searchRequest struct {
	Filter     *searchFilter    `json:"filter,omitempty"`
	Pagination searchPagination `json:"pagination"`
}

type searchFilter struct {
	And []searchExpression `json:"and"`
}

type searchExpression struct {
	Property string   `json:"property"`
	Operator string   `json:"operator"`
	Values   []string `json:"values"`
}

type searchPagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

func newSearchRequest(page Page, expressions ...searchExpression) searchRequest {
	req := searchRequest{Pagination: searchPagination{Offset: page.Offset, Limit: page.Limit}}
	if len(expressions) > 0 {
		req.Filter = &searchFilter{And: expressions}
	}
	return req
}

func likeExpression(property, value string) searchExpression {
	return searchExpression{Property: property, Operator: "like", Values: []string{"%" + value + "%"}}
}

func equalsExpression(property, value string) searchExpression {
	return searchExpression{Property: property, Operator: "=", Values: []string{value}}
}

func pageQuery(page Page) url.Values {
	return url.Values{
		"offset": {strconv.Itoa(page.Offset)},
		"limit":  {strconv.Itoa(page.Limit)},
	}
}

// resourcePath joins a collection path and an escaped identifier.
func resourcePath(collection, id, field string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", missing(field)
	}
	return collection + "/" + url.PathEscape(id), nil
}
