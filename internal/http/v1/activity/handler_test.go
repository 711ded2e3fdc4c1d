package activity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	appmiddleware "github.com/janisto/trail-profiles/internal/platform/middleware"
	"github.com/janisto/trail-profiles/internal/platform/respond"
	activitysvc "github.com/janisto/trail-profiles/internal/service/activity"
)

type mockService struct {
	activities []activitysvc.Activity
	err        error
}

func (m *mockService) List(_ context.Context) ([]activitysvc.Activity, error) {
	return m.activities, m.err
}

func (m *mockService) Get(_ context.Context, id int64) (*activitysvc.Activity, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.activities {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, activitysvc.ErrNotFound
}

func (m *mockService) Create(_ context.Context, name string) (*activitysvc.Activity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &activitysvc.Activity{ID: 7, Name: name}, nil
}

func newTestRouter(svc activitysvc.Service) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ActivityTest", "test"))
	Register(api, svc)
	return router
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListActivities(t *testing.T) {
	router := newTestRouter(&mockService{activities: []activitysvc.Activity{{ID: 1, Name: "Hiking"}, {ID: 2, Name: "Cycling"}}})

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var raw []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(raw) != 2 || raw[0]["Activity"] != "Hiking" || raw[0]["Activity_id"] != float64(1) {
		t.Fatalf("unexpected body: %v", raw)
	}
}

func TestListActivitiesEmpty(t *testing.T) {
	router := newTestRouter(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if body := strings.TrimSpace(resp.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestGetActivity(t *testing.T) {
	router := newTestRouter(&mockService{activities: []activitysvc.Activity{{ID: 1, Name: "Hiking"}, {ID: 2, Name: "Cycling"}}})

	resp := get(router, "/activities/2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var a Activity
	if err := json.Unmarshal(resp.Body.Bytes(), &a); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if a.ID != 2 || a.Name != "Cycling" {
		t.Errorf("unexpected activity: %+v", a)
	}
}

func TestGetActivityNotFound(t *testing.T) {
	resp := get(newTestRouter(&mockService{}), "/activities/9")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetActivityInvalidID(t *testing.T) {
	router := newTestRouter(&mockService{})
	for _, target := range []string{"/activities/0", "/activities/abc"} {
		if resp := get(router, target); resp.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: expected 422, got %d", target, resp.Code)
		}
	}
}

func TestCreateActivitySuccess(t *testing.T) {
	resp := post(newTestRouter(&mockService{}), `{"Activity":"Hiking"}`)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/activities/7" {
		t.Errorf("expected Location /activities/7, got %s", loc)
	}
	var a Activity
	if err := json.Unmarshal(resp.Body.Bytes(), &a); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if a.ID != 7 || a.Name != "Hiking" {
		t.Errorf("unexpected activity: %+v", a)
	}
}

func TestCreateActivityConflict(t *testing.T) {
	resp := post(newTestRouter(&mockService{err: activitysvc.ErrAlreadyExists}), `{"Activity":"Hiking"}`)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateActivityValidation(t *testing.T) {
	for _, body := range []string{`{}`, `{"Activity":""}`, `{"Activity":"` + strings.Repeat("x", 31) + `"}`} {
		resp := post(newTestRouter(&mockService{}), body)
		if resp.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: expected 422, got %d", body, resp.Code)
		}
	}
}

func TestCreateActivityBlankName(t *testing.T) {
	resp := post(newTestRouter(&mockService{err: activitysvc.ErrInvalidName}), `{"Activity":"  "}`)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestActivityInternalServerError(t *testing.T) {
	resp := post(newTestRouter(&mockService{err: errors.New("db down")}), `{"Activity":"Hiking"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", resp.Code, resp.Body.String())
	}
}
