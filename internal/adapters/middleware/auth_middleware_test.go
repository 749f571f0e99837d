package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hangang-korean/admin-service/internal/adapters/middleware"
	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/test/mocks"
)

func TestRequireRole(t *testing.T) {
	key := mocks.GenerateTestKey(t)
	otherKey := mocks.GenerateTestKey(t)

	tests := []struct {
		name       string
		header     string
		roles      []string
		setup      func(*mocks.MockTokenDenylist) string
		wantStatus int
	}{
		{
			name:  "valid_token_and_role",
			roles: []string{string(domain.RoleAdmin)},
			setup: func(*mocks.MockTokenDenylist) string {
				return "Bearer " + mocks.SignTestToken(t, key, "1", string(domain.RoleAdmin))
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing_header",
			roles:      []string{string(domain.RoleAdmin)},
			setup:      func(*mocks.MockTokenDenylist) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed_header",
			roles:      []string{string(domain.RoleAdmin)},
			setup:      func(*mocks.MockTokenDenylist) string { return "Token abc" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "expired_token",
			roles: []string{string(domain.RoleAdmin)},
			setup: func(*mocks.MockTokenDenylist) string {
				return "Bearer " + mocks.SignExpiredTestToken(t, key, "1", string(domain.RoleAdmin))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "wrong_signing_key",
			roles: []string{string(domain.RoleAdmin)},
			setup: func(*mocks.MockTokenDenylist) string {
				return "Bearer " + mocks.SignTestToken(t, otherKey, "1", string(domain.RoleAdmin))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "role_not_allowed",
			roles: []string{string(domain.RoleSuperAdmin)},
			setup: func(*mocks.MockTokenDenylist) string {
				return "Bearer " + mocks.SignTestToken(t, key, "1", string(domain.RoleViewer))
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:  "revoked_token",
			roles: []string{string(domain.RoleAdmin)},
			setup: func(denylist *mocks.MockTokenDenylist) string {
				token := mocks.SignTestToken(t, key, "1", string(domain.RoleAdmin))
				_ = denylist.Deny(context.Background(), token, time.Hour)
				return "Bearer " + token
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "denylist_outage_fails_open",
			roles: []string{string(domain.RoleAdmin)},
			setup: func(denylist *mocks.MockTokenDenylist) string {
				denylist.IsDeniedError = errors.New("redis down")
				return "Bearer " + mocks.SignTestToken(t, key, "1", string(domain.RoleAdmin))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			denylist := mocks.NewMockTokenDenylist()
			header := tt.setup(denylist)
			m := middleware.NewAuthMiddleware(&key.PublicKey, denylist)

			var gotUserID, gotRole any
			protected := m.RequireRole(tt.roles, func(w http.ResponseWriter, r *http.Request) {
				gotUserID = r.Context().Value(middleware.UserIDKey)
				gotRole = r.Context().Value(middleware.RoleKey)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/courses", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			protected(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if gotUserID != "1" {
					t.Errorf("expected user ID in context, got %v", gotUserID)
				}
				if gotRole == nil {
					t.Error("expected role in context")
				}
			}
		})
	}
}
