// README: Admin handler tests for role gating and input validation.
package handlers_test

import (
	"net/http"
	"testing"

	"tripdesk/internal/infra"
)

func adminVerifier() *stubVerifier {
	return &stubVerifier{identity: &infra.Identity{UserID: "u_admin", Role: "admin"}}
}

func TestAdminList_RequiresAdminRole(t *testing.T) {
	r := buildTestRouter(customerVerifier())
	w := doRequest(r, http.MethodGet, "/api/admin/trips", nil, "Bearer sometoken")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAdminAssign_RequiresAdminRole(t *testing.T) {
	r := buildTestRouter(customerVerifier())
	w := doRequest(r, http.MethodPost, "/api/admin/trips/t1/assign",
		map[string]any{"driver_id": "d1", "vehicle_id": "v1"}, "Bearer sometoken")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAdminAssign_MissingResources(t *testing.T) {
	r := buildTestRouter(adminVerifier())
	w := doRequest(r, http.MethodPost, "/api/admin/trips/t1/assign",
		map[string]any{"driver_id": "", "vehicle_id": ""}, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAdminUpdateStatus_UnknownStatus(t *testing.T) {
	r := buildTestRouter(adminVerifier())
	w := doRequest(r, http.MethodPatch, "/api/admin/trips/t1/status",
		map[string]any{"status": "teleported"}, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAdminList_InvalidCategoryFilter(t *testing.T) {
	r := buildTestRouter(adminVerifier())
	w := doRequest(r, http.MethodGet, "/api/admin/trips?category=cruise", nil, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAdminList_InvalidDateFilter(t *testing.T) {
	r := buildTestRouter(adminVerifier())
	w := doRequest(r, http.MethodGet, "/api/admin/trips?start_date=yesterday", nil, "Bearer sometoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
