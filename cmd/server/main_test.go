package main

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/trail-profiles/internal/http/health"
	"github.com/janisto/trail-profiles/internal/platform/database"
	"github.com/janisto/trail-profiles/internal/service/authgw"
	"github.com/janisto/trail-profiles/internal/testutil"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	router, api := newRouter(testutil.DB(t), authgw.NewMock(), nil)
	huma.Get(api, "/panic", func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		panic("boom")
	})
	return router
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(chimiddleware.RequestIDHeader, "main-test-req")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	resp := do(t, testServer(t), http.MethodGet, "/health", "")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", resp.Code)
	}
	var h health.Response
	if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if h.Status != "healthy" {
		t.Fatalf("expected status 'healthy', got %s", h.Status)
	}
}

func TestHealthDatabaseClosed(t *testing.T) {
	db := testutil.DB(t)
	router, _ := newRouter(db, authgw.NewMock(), nil)
	if err := database.Close(db); err != nil {
		t.Fatalf("close: %v", err)
	}

	resp := do(t, router, http.MethodGet, "/health", "")

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	do(t, srv, http.MethodGet, "/activities", "")

	resp := do(t, srv, http.MethodGet, "/metrics", "")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "http_requests_total") {
		t.Fatal("expected http_requests_total in metrics output")
	}
}

func TestNotFoundReturnsProblemDetails(t *testing.T) {
	resp := do(t, testServer(t), http.MethodGet, "/missing", "")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json content type, got %q", ct)
	}

	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 404 response: %v", err)
	}
	if problem.Status != http.StatusNotFound || problem.Title != "Not Found" {
		t.Fatalf("unexpected problem: %+v", problem)
	}
	if problem.Detail != "resource not found" {
		t.Fatalf("unexpected detail: %s", problem.Detail)
	}
}

func TestMethodNotAllowedReturnsProblemDetails(t *testing.T) {
	resp := do(t, testServer(t), http.MethodPost, "/health", "")

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", allow)
	}

	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 405 response: %v", err)
	}
	if problem.Status != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", problem.Status)
	}
	if !strings.Contains(problem.Detail, "POST") {
		t.Fatalf("expected detail to mention POST, got %s", problem.Detail)
	}
}

func TestRecovererReturnsProblemDetails(t *testing.T) {
	resp := do(t, testServer(t), http.MethodGet, "/panic", "")

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json content type, got %q", ct)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	resp := do(t, testServer(t), http.MethodGet, "/profiles", "")

	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
	if resp.Header().Get(chimiddleware.RequestIDHeader) == "" {
		t.Fatal("expected request id header")
	}
}

func TestFallbackToJSONForUnknownAccept(t *testing.T) {
	srv := testServer(t)
	tests := []struct {
		name   string
		accept string
	}{
		{"text plain", "text/plain"},
		{"wildcard all", "*/*"},
		{"application wildcard", "application/*"},
		{"no accept header", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/activities", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			resp := httptest.NewRecorder()
			srv.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected application/json, got %q", ct)
			}
		})
	}
}

func TestCBORAcceptHeader(t *testing.T) {
	srv := testServer(t)
	do(t, srv, http.MethodPost, "/activities", `{"Activity":"Hiking"}`)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor content type, got %q", ct)
	}
	var got []map[string]any
	if err := cbor.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if len(got) != 1 || got[0]["Activity"] != "Hiking" {
		t.Fatalf("unexpected body: %v", got)
	}
}

// TestProfileLifecycle walks through profile creation against a fake auth
// service, favourites, and cascading delete.
func TestProfileLifecycle(t *testing.T) {
	auth := testutil.NewAuthServer(t, http.StatusOK, testutil.VerifiedBody())
	router, _ := newRouter(testutil.DB(t), authgw.NewClient(auth.Client(), authgw.WithURL(auth.URL)), nil)

	steps := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodPost, "/activities", `{"Activity":"Hiking"}`, http.StatusCreated},
		{http.MethodPost, "/activities", `{"Activity":"Hiking"}`, http.StatusConflict},
		{http.MethodPost, "/profiles", `{"Email":"a@x.com","Password":"pw","Username":"walker"}`, http.StatusCreated},
		{http.MethodPost, "/profiles", `{"Email":"a@x.com","Password":"pw"}`, http.StatusConflict},
		{http.MethodPost, "/profiles/a@x.com/activities", `{"Activity_id":1}`, http.StatusCreated},
		{http.MethodPost, "/profiles/a@x.com/activities", `{"Activity_id":1}`, http.StatusConflict},
		{http.MethodPost, "/profiles/a@x.com/activities", `{"Activity_id":2}`, http.StatusNotFound},
		{http.MethodPost, "/profiles/a@x.com/trails", `{"Trail_id":42,"Saved_date":"2024-05-01"}`, http.StatusCreated},
		{http.MethodPost, "/profiles/a@x.com/trails", `{"Trail_id":42}`, http.StatusConflict},
		{http.MethodPut, "/profiles/a@x.com", `{"Location":"Plymouth","Password":"ignored"}`, http.StatusOK},
	}
	for _, s := range steps {
		if resp := do(t, router, s.method, s.target, s.body); resp.Code != s.want {
			t.Fatalf("%s %s %s: expected %d, got %d: %s", s.method, s.target, s.body, s.want, resp.Code, resp.Body.String())
		}
	}

	resp := do(t, router, http.MethodGet, "/profiles/a@x.com/activities", "")
	var liked []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &liked); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(liked) != 1 || liked[0]["Activity"] != "Hiking" {
		t.Fatalf("unexpected liked activities: %v", liked)
	}

	resp = do(t, router, http.MethodGet, "/profiles/a@x.com", "")
	var profile map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &profile); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if _, ok := profile["Password"]; ok {
		t.Fatal("profile response must not contain Password")
	}
	if profile["Location"] != "Plymouth" || profile["Username"] != "walker" || profile["Role"] != "User" {
		t.Fatalf("unexpected profile: %v", profile)
	}

	resp = do(t, router, http.MethodDelete, "/profiles/a@x.com", "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Profile a@x.com successfully deleted") {
		t.Fatalf("delete: got %d %s", resp.Code, resp.Body.String())
	}
	if resp := do(t, router, http.MethodGet, "/profiles/a@x.com/activities", ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
	if resp := do(t, router, http.MethodPost, "/profiles", `{"Email":"a@x.com","Password":"pw"}`); resp.Code != http.StatusCreated {
		t.Fatalf("re-create: expected 201, got %d", resp.Code)
	}
	for _, path := range []string{"/profiles/a@x.com/activities", "/profiles/a@x.com/trails"} {
		resp := do(t, router, http.MethodGet, path, "")
		if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
			t.Fatalf("%s after re-create: expected empty list, got %d %s", path, resp.Code, resp.Body.String())
		}
	}
	if resp := do(t, router, http.MethodGet, "/activities/1", ""); resp.Code != http.StatusOK {
		t.Fatalf("activity location: expected 200, got %d", resp.Code)
	}
	if calls := auth.Calls(); calls != 3 {
		t.Fatalf("expected 3 auth calls, got %d", calls)
	}
}

func TestCreateProfileAuthFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		want   int
	}{
		{"rejected status", http.StatusUnauthorized, nil, http.StatusUnauthorized},
		{"wrong marker", http.StatusOK, []any{"Verified", false}, http.StatusUnauthorized},
		{"server error", http.StatusInternalServerError, nil, http.StatusUnauthorized},
		{"empty body", http.StatusOK, nil, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := testutil.NewAuthServer(t, tt.status, tt.body)
			router, _ := newRouter(testutil.DB(t), authgw.NewClient(auth.Client(), authgw.WithURL(auth.URL)), nil)

			resp := do(t, router, http.MethodPost, "/profiles", `{"Email":"a@x.com","Password":"pw"}`)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, resp.Code, resp.Body.String())
			}
			if resp := do(t, router, http.MethodGet, "/profiles/a@x.com", ""); resp.Code != http.StatusNotFound {
				t.Fatalf("expected no profile after failed auth, got %d", resp.Code)
			}
		})
	}
}

func TestCreateProfileAuthUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	router, _ := newRouter(testutil.DB(t), authgw.NewClient(nil, authgw.WithURL("http://"+addr), authgw.WithTimeout(time.Second)), nil)
	resp := do(t, router, http.MethodPost, "/profiles", `{"Email":"a@x.com","Password":"pw"}`)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Retry-After"); got != "30" {
		t.Fatalf("expected Retry-After 30, got %q", got)
	}
}

func TestCORSConfiguredOrigins(t *testing.T) {
	router, _ := newRouter(testutil.DB(t), authgw.NewMock(), []string{"https://trails.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set("Origin", "https://trails.example.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://trails.example.com" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := newServer("127.0.0.1:0", router)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected serve error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for shutdown")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_ = ln.Close()

	err = serve(context.Background(), newServer("", http.NotFoundHandler()), ln)
	if err == nil {
		t.Fatal("expected error from closed listener")
	}
}

func TestOpenAPICBORContentTypes(t *testing.T) {
	api := humachi.New(chi.NewRouter(), huma.DefaultConfig("Test API", "1.0.0"))
	addCBORContent(api)

	type testInput struct {
		Body struct {
			Name string `json:"name"`
		}
	}
	type testOutput struct {
		Body struct {
			Message string `json:"message"`
		}
	}
	huma.Post(api, "/test", func(_ context.Context, _ *testInput) (*testOutput, error) {
		return &testOutput{}, nil
	})
	huma.Get(api, "/no-body", func(_ context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	op := api.OpenAPI().Paths["/test"].Post
	if _, ok := op.RequestBody.Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor in request body content")
	}
	if _, ok := op.Responses["200"].Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor in 200 response content")
	}
	if api.OpenAPI().Paths["/no-body"].Get.RequestBody != nil {
		t.Fatal("expected no request body for GET")
	}
}

func TestServerConfiguration(t *testing.T) {
	srv := newServer(":8080", http.NotFoundHandler())

	if srv.ReadTimeout != 5*time.Second {
		t.Errorf("expected ReadTimeout 5s, got %v", srv.ReadTimeout)
	}
	if srv.ReadHeaderTimeout != 2*time.Second {
		t.Errorf("expected ReadHeaderTimeout 2s, got %v", srv.ReadHeaderTimeout)
	}
	if srv.WriteTimeout != 30*time.Second {
		t.Errorf("expected WriteTimeout 30s, got %v", srv.WriteTimeout)
	}
	if srv.IdleTimeout != 60*time.Second {
		t.Errorf("expected IdleTimeout 60s, got %v", srv.IdleTimeout)
	}
	if srv.MaxHeaderBytes != 64<<10 {
		t.Errorf("expected MaxHeaderBytes 64KB, got %d", srv.MaxHeaderBytes)
	}
}

func TestVersionVariable(t *testing.T) {
	if Version != "dev" {
		t.Errorf("expected default Version 'dev', got %q", Version)
	}
}
