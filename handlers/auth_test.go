package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/marketpadi/backend/middleware"
	"github.com/marketpadi/backend/models"
)

// GetCurrentUser serves a public route, so it must parse the bearer token
// itself instead of expecting the JWT middleware to have run.
func TestGetCurrentUserParsesBearerToken(t *testing.T) {
	user := &models.User{
		ID:    uuid.New(),
		Name:  "Adaeze",
		Phone: "08030000000",
		Role:  models.RoleChairman,
	}
	token, err := middleware.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/token", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	GetCurrentUser(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var claims middleware.Claims
	if err := json.Unmarshal(rr.Body.Bytes(), &claims); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if claims.UserID != user.ID.String() || claims.Role != models.RoleChairman {
		t.Errorf("claims = %+v", claims)
	}
}

func TestGetCurrentUserRejectsMissingOrBadToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/token", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			GetCurrentUser(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
		})
	}
}
