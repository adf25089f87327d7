// Package fabric implements the authenticated request pipeline to the
// Equinix Fabric v4 REST API.
//
// The package is layered leaf to root:
//
//   - Authenticator: OAuth2 client-credentials token cache. A credential is
//     reused until 60 seconds before its advertised expiry; concurrent
//     refreshes are coalesced with singleflight so at most one token request
//     is in flight.
//   - Client: issues a single authenticated JSON request per call with a
//     fixed timeout and no retries, mapping failures to *HTTPError or
//     *TransportError.
//   - Payload builders (BuildAccessPoint, BuildConnectionPayload,
//     BuildUpdatePatch, BuildServiceTokenPayload): pure functions from the
//     caller-facing request types to the provider's wire schema.
//   - Service: one method per resource operation (ports, connections, cloud
//     routers, service profiles, service tokens).
//
// # Usage
//
//	auth := fabric.NewAuthenticator(cfg.TokenURL, cfg.ClientID, cfg.ClientSecret)
//	client := fabric.NewClient(cfg.APIBaseURL, auth, fabric.WithTimeout(cfg.RequestTimeout))
//	svc := fabric.NewService(client)
//
//	ports, err := svc.ListPorts(ctx, fabric.Page{})
//
// # Errors
//
// Operations fail with one of *AuthError, *HTTPError, *TransportError,
// *NotSupportedError, *NotFoundError or *ArgumentError. ArgumentError and
// NotSupportedError are always returned before any network call.
package fabric
