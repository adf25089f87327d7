package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// Credentials accepted by FabricServer's token endpoint.
const (
	ClientID     = "test-client-id"
	ClientSecret = "test-client-secret"
)

const (
	tokenPath = "/oauth2/v1/token"
	apiPrefix = "/fabric/v4"
)

// RecordedRequest is one API request received by FabricServer.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// JSON decodes the recorded body into a generic value.
func (r RecordedRequest) JSON() (any, error) {
	var v any
	err := json.Unmarshal(r.Body, &v)
	return v, err
}

type cannedResponse struct {
	status int
	body   []byte
}

// FabricServer fakes the Equinix token endpoint and Fabric v4 API.
type FabricServer struct {
	*httptest.Server

	mu sync.Mutex

	// Token endpoint behaviour.
	tokenCount    int
	tokenLifetime any
	tokenStatus   int
	tokenBody     string
	tokenDelay    time.Duration
	currentToken  string

	responses map[string]cannedResponse
	requests  []RecordedRequest
}

// NewFabricServer starts a fake server issuing tokens valid for one hour.
func NewFabricServer() *FabricServer {
	s := &FabricServer{
		tokenLifetime: 3600,
		tokenStatus:   http.StatusOK,
		responses:     make(map[string]cannedResponse),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	return s
}

// TokenURL is the URL of the fake token endpoint.
func (s *FabricServer) TokenURL() string {
	return s.URL + tokenPath
}

// APIBaseURL is the fake Fabric v4 API root.
func (s *FabricServer) APIBaseURL() string {
	return s.URL + apiPrefix
}

// SetTokenLifetime sets the expires_in value returned with new tokens. Pass
// nil to omit the field, or a string to mimic gateways that quote it.
func (s *FabricServer) SetTokenLifetime(lifetime any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenLifetime = lifetime
}

// FailTokenRequests makes the token endpoint answer with status and body.
// A 2xx status with a custom body simulates a malformed success response.
func (s *FabricServer) FailTokenRequests(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenStatus = status
	s.tokenBody = body
}

// SetTokenDelay delays every token response, widening race windows.
func (s *FabricServer) SetTokenDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenDelay = d
}

// RevokeTokens makes every previously issued token invalid.
func (s *FabricServer) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentToken = ""
}

// Handle registers a canned response for method and path (relative to the
// API root). body is JSON encoded unless it is a string or nil.
func (s *FabricServer) Handle(method, path string, status int, body any) {
	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			panic(fmt.Sprintf("mock: cannot encode response for %s %s: %v", method, path, err))
		}
		raw = encoded
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[method+" "+path] = cannedResponse{status: status, body: raw}
}

// TokenRequests returns how many token requests were received.
func (s *FabricServer) TokenRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenCount
}

// Requests returns a copy of the API requests received so far.
func (s *FabricServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent API request, or false when none was made.
func (s *FabricServer) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *FabricServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == tokenPath {
		s.serveToken(w, r)
		return
	}
	if strings.HasPrefix(r.URL.Path, apiPrefix) {
		s.serveAPI(w, r)
		return
	}
	http.NotFound(w, r)
}

func (s *FabricServer) serveToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.tokenCount++
	n := s.tokenCount
	delay := s.tokenDelay
	status := s.tokenStatus
	customBody := s.tokenBody
	lifetime := s.tokenLifetime
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if r.Method != http.MethodPost || !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	if status != http.StatusOK || customBody != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, customBody)
		return
	}

	var req struct {
		GrantType    string `json:"grant_type"`
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GrantType != "client_credentials" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
		return
	}
	if req.ClientID != ClientID || req.ClientSecret != ClientSecret {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
		return
	}

	token := fmt.Sprintf("token-%d", n)
	s.mu.Lock()
	s.currentToken = token
	s.mu.Unlock()

	resp := map[string]any{
		"access_token": token,
		"token_type":   "BearerToken",
	}
	if lifetime != nil {
		resp["expires_in"] = lifetime
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *FabricServer) serveAPI(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, apiPrefix)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:   r.Method,
		Path:     path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	current := s.currentToken
	canned, ok := s.responses[r.Method+" "+path]
	s.mu.Unlock()

	if current == "" || r.Header.Get("Authorization") != "Bearer "+current {
		writeJSON(w, http.StatusUnauthorized, []map[string]string{{"errorCode": "EQ-3000039", "errorMessage": "Invalid access token"}})
		return
	}

	if !ok {
		writeJSON(w, http.StatusNotFound, []map[string]string{{"errorCode": "EQ-3000404", "errorMessage": "Resource not found"}})
		return
	}

	if len(canned.body) > 0 {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(canned.status)
	_, _ = w.Write(canned.body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
