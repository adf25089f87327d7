// Package mock provides test doubles for fabric-mcp.
//
//   - Clock: a manually advanced clock for simulating token expiry.
//   - FabricServer: an httptest-backed stand-in for the Equinix token
//     endpoint and Fabric v4 REST API. It issues numbered bearer tokens,
//     rejects requests without a current token, records every request, and
//     serves canned responses registered with Handle.
//
// Usage:
//
//	srv := mock.NewFabricServer()
//	defer srv.Close()
//	srv.Handle(http.MethodGet, "/ports", http.StatusOK, map[string]any{"data": []any{}})
//
//	auth := fabric.NewAuthenticator(srv.TokenURL(), mock.ClientID, mock.ClientSecret)
//	client := fabric.NewClient(srv.APIBaseURL(), auth)
package mock
