package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hangang-korean/admin-service/internal/adapters/handler"
	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/services"
	"github.com/hangang-korean/admin-service/test/mocks"
)

func newAuthMux(t *testing.T) (*http.ServeMux, *mocks.MockTokenDenylist) {
	t.Helper()

	key := mocks.GenerateTestKey(t)
	userRepo := mocks.NewMockUserRepository()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	userRepo.SeedUser(domain.User{
		Email:        "admin@example.com",
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		Status:       domain.UserActive,
		PasswordHash: string(hash),
	})

	denylist := mocks.NewMockTokenDenylist()
	h := handler.NewAuthHandler(services.NewAuthService(userRepo, key, denylist))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	return mux, denylist
}

func TestAuthHandlerLogin(t *testing.T) {
	mux, _ := newAuthMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.Token == "" {
		t.Error("expected a token in the response")
	}

	rec = doJSON(t, mux, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = doJSON(t, mux, http.MethodPost, "/auth/login", `{"email":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	mux, denylist := newAuthMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d", rec.Code)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	req := doJSONWithAuth(t, mux, http.MethodPost, "/auth/logout", "", "Bearer "+body.Token)
	if req.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d (%s)", req.Code, req.Body.String())
	}
	if len(denylist.DenyCalls) != 1 {
		t.Errorf("expected the token on the denylist, got %d calls", len(denylist.DenyCalls))
	}

	// Without a bearer token the logout is rejected.
	rec = doJSON(t, mux, http.MethodPost, "/auth/logout", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
