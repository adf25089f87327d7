package fabric

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"fabric-mcp/internal/testing/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	method string
	path   string
	query  url.Values
	body   any
}

// fakeRequester records calls and answers each with a fixed response.
type fakeRequester struct {
	calls    []recordedCall
	response json.RawMessage
	err      error
}

func (f *fakeRequester) Do(_ context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	f.calls = append(f.calls, recordedCall{method: method, path: path, query: query, body: body})
	if f.err != nil {
		return nil, f.err
	}
	if f.response == nil {
		return json.RawMessage(`{}`), nil
	}
	return f.response, nil
}

func (f *fakeRequester) lastCall(t *testing.T) recordedCall {
	t.Helper()
	require.NotEmpty(t, f.calls, "expected an API call")
	return f.calls[len(f.calls)-1]
}

func TestService_NotSupportedOperationsMakeNoCalls(t *testing.T) {
	api := &fakeRequester{}
	svc := NewService(api)
	ctx := context.Background()

	ops := map[string]func() (json.RawMessage, error){
		"connection stats": func() (json.RawMessage, error) { return svc.ConnectionStats(ctx, "c1") },
		"create router":    func() (json.RawMessage, error) { return svc.CreateRouter(ctx) },
		"update router":    func() (json.RawMessage, error) { return svc.UpdateRouter(ctx, "r1") },
		"delete router":    func() (json.RawMessage, error) { return svc.DeleteRouter(ctx, "r1") },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			result, err := op()
			assert.Nil(t, result)
			assert.True(t, IsNotSupported(err))
			assert.Contains(t, err.Error(), "not supported")
		})
	}

	assert.Empty(t, api.calls)
}

func TestService_ListPorts_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		page       Page
		wantOffset string
		wantLimit  string
	}{
		{"defaults", Page{}, "0", "20"},
		{"explicit", Page{Offset: 40, Limit: 10}, "40", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeRequester{}
			_, err := NewService(api).ListPorts(context.Background(), tt.page)
			require.NoError(t, err)

			call := api.lastCall(t)
			assert.Equal(t, http.MethodGet, call.method)
			assert.Equal(t, "/ports", call.path)
			assert.Equal(t, tt.wantOffset, call.query.Get("offset"))
			assert.Equal(t, tt.wantLimit, call.query.Get("limit"))
		})
	}
}

func TestService_NegativePaginationRejected(t *testing.T) {
	api := &fakeRequester{}
	svc := NewService(api)

	_, err := svc.ListPorts(context.Background(), Page{Offset: -1})
	assert.True(t, IsArgumentError(err))

	_, err = svc.SearchConnections(context.Background(), ConnectionFilter{}, Page{Limit: -5})
	assert.True(t, IsArgumentError(err))

	assert.Empty(t, api.calls)
}

func TestService_SearchConnections(t *testing.T) {
	t.Run("without filters", func(t *testing.T) {
		api := &fakeRequester{}
		_, err := NewService(api).SearchConnections(context.Background(), ConnectionFilter{}, Page{})
		require.NoError(t, err)

		call := api.lastCall(t)
		assert.Equal(t, http.MethodPost, call.method)
		assert.Equal(t, "/connections/search", call.path)
		assert.JSONEq(t, `{"pagination":{"offset":0,"limit":20}}`, toJSON(t, call.body))
	})

	t.Run("with filters", func(t *testing.T) {
		api := &fakeRequester{}
		filter := ConnectionFilter{Name: "prod", State: "PROVISIONED", ProjectID: "p-1"}
		_, err := NewService(api).SearchConnections(context.Background(), filter, Page{Offset: 5, Limit: 50})
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"filter": {"and": [
				{"property": "/name", "operator": "like", "values": ["%prod%"]},
				{"property": "/operation/equipmentStatus", "operator": "=", "values": ["PROVISIONED"]},
				{"property": "/project/projectId", "operator": "=", "values": ["p-1"]}
			]},
			"pagination": {"offset": 5, "limit": 50}
		}`, toJSON(t, api.lastCall(t).body))
	})
}

func TestService_SearchRouters(t *testing.T) {
	api := &fakeRequester{}
	_, err := NewService(api).SearchRouters(context.Background(), RouterFilter{State: "PROVISIONED"}, Page{})
	require.NoError(t, err)

	call := api.lastCall(t)
	assert.Equal(t, "/routers/search", call.path)
	assert.JSONEq(t, `{
		"filter": {"and": [{"property": "/state", "operator": "=", "values": ["PROVISIONED"]}]},
		"pagination": {"offset": 0, "limit": 20}
	}`, toJSON(t, call.body))
}

func TestService_GetRouter(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		api := &fakeRequester{response: json.RawMessage(`{"data":[{"uuid":"r1","name":"edge"}],"pagination":{"total":1}}`)}
		raw, err := NewService(api).GetRouter(context.Background(), "r1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"uuid":"r1","name":"edge"}`, string(raw))

		call := api.lastCall(t)
		assert.Equal(t, http.MethodPost, call.method)
		assert.Equal(t, "/routers/search", call.path)
		assert.JSONEq(t, `{
			"filter": {"and": [{"property": "/uuid", "operator": "=", "values": ["r1"]}]},
			"pagination": {"offset": 0, "limit": 1}
		}`, toJSON(t, call.body))
	})

	t.Run("not found", func(t *testing.T) {
		api := &fakeRequester{response: json.RawMessage(`{"data":[]}`)}
		_, err := NewService(api).GetRouter(context.Background(), "missing")

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "router", notFound.Resource)
		assert.Equal(t, "missing", notFound.ID)
		assert.True(t, IsNotFound(err))
	})

	t.Run("missing id", func(t *testing.T) {
		api := &fakeRequester{}
		_, err := NewService(api).GetRouter(context.Background(), "")
		assert.True(t, IsArgumentError(err))
		assert.Empty(t, api.calls)
	})
}

func TestService_ResourcePaths(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(*Service) (json.RawMessage, error)
		wantMethod string
		wantPath   string
	}{
		{"get port", func(s *Service) (json.RawMessage, error) { return s.GetPort(ctx, "p1") }, http.MethodGet, "/ports/p1"},
		{"get connection", func(s *Service) (json.RawMessage, error) { return s.GetConnection(ctx, "c1") }, http.MethodGet, "/connections/c1"},
		{"delete connection", func(s *Service) (json.RawMessage, error) { return s.DeleteConnection(ctx, "c1") }, http.MethodDelete, "/connections/c1"},
		{"get service profile", func(s *Service) (json.RawMessage, error) { return s.GetServiceProfile(ctx, "sp1") }, http.MethodGet, "/serviceProfiles/sp1"},
		{"get service token", func(s *Service) (json.RawMessage, error) { return s.GetServiceToken(ctx, "st1") }, http.MethodGet, "/serviceTokens/st1"},
		{"delete service token", func(s *Service) (json.RawMessage, error) { return s.DeleteServiceToken(ctx, "st1") }, http.MethodDelete, "/serviceTokens/st1"},
		{"id is escaped", func(s *Service) (json.RawMessage, error) { return s.GetConnection(ctx, "a/b c") }, http.MethodGet, "/connections/a%2Fb%20c"},
		{"id is trimmed", func(s *Service) (json.RawMessage, error) { return s.GetPort(ctx, "  p1 ") }, http.MethodGet, "/ports/p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeRequester{}
			_, err := tt.call(NewService(api))
			require.NoError(t, err)

			call := api.lastCall(t)
			assert.Equal(t, tt.wantMethod, call.method)
			assert.Equal(t, tt.wantPath, call.path)
		})
	}
}

func TestService_MissingIdentifiers(t *testing.T) {
	api := &fakeRequester{}
	svc := NewService(api)
	ctx := context.Background()

	_, err := svc.GetPort(ctx, " ")
	assert.True(t, IsArgumentError(err))
	_, err = svc.DeleteConnection(ctx, "")
	assert.True(t, IsArgumentError(err))
	_, err = svc.UpdateConnection(ctx, "", UpdateConnectionRequest{Name: strPtr("x")})
	assert.True(t, IsArgumentError(err))
	_, err = svc.GetServiceToken(ctx, "")
	assert.True(t, IsArgumentError(err))

	assert.Empty(t, api.calls)
}

func TestService_UpdateConnection(t *testing.T) {
	api := &fakeRequester{}
	_, err := NewService(api).UpdateConnection(context.Background(), "c1", UpdateConnectionRequest{
		Bandwidth: intPtr(100),
		Name:      strPtr("a"),
	})
	require.NoError(t, err)

	call := api.lastCall(t)
	assert.Equal(t, http.MethodPatch, call.method)
	assert.Equal(t, "/connections/c1", call.path)
	assert.JSONEq(t, `[
		{"op":"replace","path":"/name","value":"a"},
		{"op":"replace","path":"/bandwidth","value":100}
	]`, toJSON(t, call.body))
}

func TestService_ListServiceProfiles(t *testing.T) {
	api := &fakeRequester{}
	filter := ServiceProfileFilter{MetroCode: "SV", Type: "L2_PROFILE", Name: "AWS"}
	_, err := NewService(api).ListServiceProfiles(context.Background(), filter, Page{})
	require.NoError(t, err)

	call := api.lastCall(t)
	assert.Equal(t, "/serviceProfiles", call.path)
	assert.Equal(t, "SV", call.query.Get("metroCode"))
	assert.Equal(t, "L2_PROFILE", call.query.Get("type"))
	assert.Equal(t, "AWS", call.query.Get("name"))
	assert.Equal(t, "20", call.query.Get("limit"))
}

func TestService_InvalidPayloadMakesNoCall(t *testing.T) {
	api := &fakeRequester{}
	svc := NewService(api)

	_, err := svc.CreateConnection(context.Background(), ConnectionRequest{Name: "x"})
	assert.True(t, IsArgumentError(err))

	_, err = svc.CreateServiceToken(context.Background(), ServiceTokenRequest{Type: "VC_TOKEN"})
	assert.True(t, IsArgumentError(err))

	assert.Empty(t, api.calls)
}

func TestService_PropagatesRequesterErrors(t *testing.T) {
	httpErr := &HTTPError{Method: http.MethodGet, Path: "/ports/p1", StatusCode: http.StatusForbidden, Body: "denied"}
	api := &fakeRequester{err: httpErr}

	_, err := NewService(api).GetPort(context.Background(), "p1")
	assert.True(t, errors.Is(err, httpErr))
}

func TestService_CreateConnection_EndToEnd(t *testing.T) {
	srv := mock.NewFabricServer()
	defer srv.Close()
	srv.Handle(http.MethodPost, "/connections", http.StatusCreated, map[string]any{"uuid": "conn-1", "name": "X"})

	client, _ := newTestClient(srv)
	svc := NewService(client)

	raw, err := svc.CreateConnection(context.Background(), ConnectionRequest{
		Name:      "X",
		Type:      "EVPL_VC",
		Bandwidth: 50,
		ASide:     &AccessPointDescriptor{Type: AccessPointPort, PortUUID: "p1", VLAN: intPtr(100)},
		ZSide:     &AccessPointDescriptor{Type: AccessPointServiceProfile, ServiceProfileUUID: "sp1", SellerMetroCode: "NY"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"conn-1","name":"X"}`, string(raw))

	req, ok := srv.LastRequest()
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/connections", req.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.JSONEq(t, `{"type":"DOT1Q","vlanTag":100}`, toJSON(t, body["aSide"].(map[string]any)["accessPoint"].(map[string]any)["linkProtocol"]))
	assert.JSONEq(t, `{"metroCode":"NY"}`, toJSON(t, body["zSide"].(map[string]any)["accessPoint"].(map[string]any)["location"]))
}

func TestService_HTTPErrorFromServer(t *testing.T) {
	srv := mock.NewFabricServer()
	defer srv.Close()
	srv.Handle(http.MethodGet, "/serviceTokens/st1", http.StatusBadRequest, `[{"errorCode":"EQ-3034002","errorMessage":"bad token"}]`)

	client, _ := newTestClient(srv)
	_, err := NewService(client).GetServiceToken(context.Background(), "st1")

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "EQ-3034002")
}
