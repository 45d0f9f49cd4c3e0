package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bump-fr/yt-dlp-api/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService() *JWTService {
	return NewJWTService(&config.AuthConfig{JWTSecret: testSecret, JWTIssuer: "yt-dlp-api"})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("frontend", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.Subject != "frontend" || claims.Issuer != "yt-dlp-api" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a JTI")
	}
}

func TestValidateAccessTokenRejects(t *testing.T) {
	svc := newTestService()

	sign := func(claims JWTClaims, method jwt.SigningMethod, key interface{}) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		if err != nil {
			t.Fatal(err)
		}
		return s
	}

	now := time.Now()
	valid := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "x",
			Issuer:    "yt-dlp-api",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType: "access",
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	refresh := valid
	refresh.TokenType = "refresh"

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.jwt"},
		{name: "wrong key", token: sign(valid, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"))},
		{name: "wrong algorithm", token: sign(valid, jwt.SigningMethodHS512, []byte(testSecret))},
		{name: "expired", token: sign(expired, jwt.SigningMethodHS256, []byte(testSecret))},
		{name: "wrong issuer", token: sign(wrongIssuer, jwt.SigningMethodHS256, []byte(testSecret))},
		{name: "refresh token", token: sign(refresh, jwt.SigningMethodHS256, []byte(testSecret))},
		{name: "no expiry", token: sign(noExpiry, jwt.SigningMethodHS256, []byte(testSecret))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ValidateAccessToken(tc.token); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewJWTService(&config.AuthConfig{})

	if svc.Enabled() {
		t.Fatal("service without secret must be disabled")
	}
	if _, err := svc.GenerateAccessToken("x", time.Hour); !errors.Is(err, ErrJWTDisabled) {
		t.Errorf("GenerateAccessToken error = %v, want ErrJWTDisabled", err)
	}
	if _, err := svc.ValidateAccessToken("anything"); !errors.Is(err, ErrJWTDisabled) {
		t.Errorf("ValidateAccessToken error = %v, want ErrJWTDisabled", err)
	}
}
