package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cubbyhole/cubby/pkg/api/auth"
	"github.com/cubbyhole/cubby/pkg/models"
)

func newJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "test-secret-key-that-is-at-least-32-characters-long",
	})
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}
	return svc
}

func TestJWTAuth(t *testing.T) {
	svc := newJWTService(t)

	pair, err := svc.GenerateTokenPair(&models.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	var seenUsername string
	protected := JWTAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaimsFromContext(r.Context())
		if claims != nil {
			seenUsername = claims.Username
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid access token", "Bearer " + pair.AccessToken, http.StatusOK},
		{"refresh token rejected", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "NotBearer xyz", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUsername = ""
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK && seenUsername != "alice" {
				t.Errorf("expected claims in context, got username %q", seenUsername)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
					t.Errorf("expected problem+json response, got %q", ct)
				}
			}
		})
	}
}

func TestGetClaimsFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if claims := GetClaimsFromContext(req.Context()); claims != nil {
		t.Errorf("expected nil claims, got %+v", claims)
	}
}
