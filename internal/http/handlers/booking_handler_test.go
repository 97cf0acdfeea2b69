// README: Integration tests for booking handler authorization checks.
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

	"shuttle/internal/http/handlers"
	httpmiddleware "shuttle/internal/http/middleware"
	"shuttle/internal/infra"
	"shuttle/internal/modules/booking"
)

// stubTokenVerifier is a test double for infra.TokenVerifier.
type stubTokenVerifier struct {
	token *infra.Token
	err   error
}

func (s *stubTokenVerifier) VerifyToken(_ context.Context, _ string) (*infra.Token, error) {
	return s.token, s.err
}

// buildTestRouter wires a minimal Gin engine with the auth middleware and the
// booking handler. booking.NewService(nil, ...) is safe here because every
// rejection under test happens before the service touches storage.
func buildTestRouter(verifier infra.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := booking.NewService(nil, nil, nil, nil, 10)
	r := gin.New()
	r.Use(httpmiddleware.Auth(verifier))
	h := handlers.NewBookingHandler(svc)
	r.POST("/api/bookings", h.Create)
	return r
}

func makeVerifier(uid, role string) *stubTokenVerifier {
	return &stubTokenVerifier{token: &infra.Token{UserID: uid, Role: role}}
}

func doRequest(r *gin.Engine, method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
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

// TestCreate_Unauthenticated verifies that requests without a valid token are rejected.
func TestCreate_Unauthenticated(t *testing.T) {
	r := buildTestRouter(&stubTokenVerifier{err: errors.New("no token")})
	w := doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"routeId":    "route1",
		"fromStopId": "stop1",
		"toStopId":   "stop2",
	}, "Bearer badtoken")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// TestCreate_NonStudentForbidden verifies the student-only rule is enforced
// at the service boundary and surfaces as 403.
func TestCreate_NonStudentForbidden(t *testing.T) {
	r := buildTestRouter(makeVerifier("admin1", "ADMIN"))
	w := doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"routeId":    "route1",
		"fromStopId": "stop1",
		"toStopId":   "stop2",
	}, "Bearer validtoken")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestCreate_InvalidJSON(t *testing.T) {
	r := buildTestRouter(makeVerifier("student1", "STUDENT"))
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer validtoken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	r := buildTestRouter(makeVerifier("student1", "STUDENT"))
	w := doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"routeId": "route1",
	}, "Bearer validtoken")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
