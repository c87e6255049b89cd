// README: Handler tests for auth and validation checks that precede the service.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httptransport "tripdesk/internal/http"
	"tripdesk/internal/infra"
	"tripdesk/internal/modules/trip"
)

// stubVerifier is a test double for infra.TokenVerifier.
type stubVerifier struct {
	identity *infra.Identity
	err      error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*infra.Identity, error) {
	return s.identity, s.err
}

// buildTestRouter wires the real router with a stub verifier.
// trip.NewService(nil, nil, nil) is safe here because every asserted path
// fails before any store method is reached.
func buildTestRouter(verifier infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return httptransport.NewRouter(httptransport.RouterDeps{
		Trips:    trip.NewService(nil, nil, nil),
		Verifier: verifier,
	})
}

func customerVerifier() *stubVerifier {
	return &stubVerifier{identity: &infra.Identity{UserID: "u1", CustomerID: "c1", Role: "customer"}}
}

func doRequest(r *gin.Engine, method, path string, body any, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_Unauthenticated(t *testing.T) {
	r := buildTestRouter(&stubVerifier{err: errors.New("no token")})
	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{"title": "x"}, "Bearer badtoken")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCreate_IdentityWithoutCustomer(t *testing.T) {
	// A token without a customer reference cannot submit trip requests.
	r := buildTestRouter(&stubVerifier{identity: &infra.Identity{UserID: "u1", Role: "admin"}})
	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{"title": "x"}, "Bearer sometoken")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	r := buildTestRouter(customerVerifier())
	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{
		"title":    "Airport pickup",
		"category": "tour",
		// origin, destination, schedule and contact details missing
	}, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreate_InvalidDate(t *testing.T) {
	r := buildTestRouter(customerVerifier())
	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{
		"title":          "Airport pickup",
		"category":       "tour",
		"origin":         "JKIA",
		"destination":    "Westlands",
		"preferred_date": "next tuesday",
		"preferred_time": "09:30",
		"contact_name":   "Amina",
		"contact_phone":  "+254700000000",
		"contact_email":  "amina@example.com",
	}, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUpdate_EmptyPatch(t *testing.T) {
	r := buildTestRouter(customerVerifier())
	w := doRequest(r, http.MethodPatch, "/api/trips/t1", map[string]any{}, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestList_InvalidStatusFilter(t *testing.T) {
	r := buildTestRouter(customerVerifier())
	w := doRequest(r, http.MethodGet, "/api/trips?status=driving", nil, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
