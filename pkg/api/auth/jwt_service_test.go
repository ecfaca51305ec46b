package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/cubbyhole/cubby/pkg/models"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func newTestService(t *testing.T, config JWTConfig) *JWTService {
	t.Helper()
	svc, err := NewJWTService(config)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}
	return svc
}

func testUser() *models.User {
	return &models.User{ID: "user-1", Username: "alice"}
}

func TestNewJWTService(t *testing.T) {
	t.Run("short secret rejected", func(t *testing.T) {
		_, err := NewJWTService(JWTConfig{Secret: "too-short"})
		if !errors.Is(err, ErrInvalidSecretLength) {
			t.Errorf("expected ErrInvalidSecretLength, got %v", err)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		svc := newTestService(t, JWTConfig{Secret: testSecret})
		if svc.config.Issuer != "cubby" {
			t.Errorf("expected default issuer cubby, got %q", svc.config.Issuer)
		}
		if svc.GetAccessTokenDuration() != 15*time.Minute {
			t.Errorf("unexpected default access duration: %v", svc.GetAccessTokenDuration())
		}
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(t, JWTConfig{Secret: testSecret})

	pair, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("expected Bearer token type, got %q", pair.TokenType)
	}

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.Username != "alice" || claims.UserID != "user-1" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.IsAccessToken() {
		t.Error("expected access token type")
	}

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}
	if !refreshClaims.IsRefreshToken() {
		t.Error("expected refresh token type")
	}
}

func TestTokenTypeEnforcement(t *testing.T) {
	svc := newTestService(t, JWTConfig{Secret: testSecret})

	pair, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	// A refresh token must not pass access validation, and vice versa.
	if _, err := svc.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrInvalidTokenType) {
		t.Errorf("expected ErrInvalidTokenType, got %v", err)
	}
	if _, err := svc.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrInvalidTokenType) {
		t.Errorf("expected ErrInvalidTokenType, got %v", err)
	}
}

func TestValidateTokenErrors(t *testing.T) {
	svc := newTestService(t, JWTConfig{Secret: testSecret})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newTestService(t, JWTConfig{Secret: "another-secret-that-is-also-32-characters!!"})
		pair, err := other.GenerateTokenPair(testUser())
		if err != nil {
			t.Fatalf("GenerateTokenPair failed: %v", err)
		}
		if _, err := svc.ValidateToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		short := newTestService(t, JWTConfig{
			Secret:              testSecret,
			AccessTokenDuration: -time.Minute,
		})
		pair, err := short.GenerateTokenPair(testUser())
		if err != nil {
			t.Fatalf("GenerateTokenPair failed: %v", err)
		}
		if _, err := short.ValidateToken(pair.AccessToken); !errors.Is(err, ErrExpiredToken) {
			t.Errorf("expected ErrExpiredToken, got %v", err)
		}
	})
}
