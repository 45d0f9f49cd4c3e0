package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bump-fr/yt-dlp-api/internal/config"
)

const tokenTypeAccess = "access"

var ErrJWTDisabled = errors.New("JWT authentication is not configured")

// JWTClaims represents the JWT token claims
type JWTClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// JWTService signs and validates HS256 access tokens
type JWTService struct {
	issuer    string
	secretKey []byte
}

// NewJWTService creates a new JWT service; without a secret it is disabled
func NewJWTService(cfg *config.AuthConfig) *JWTService {
	return &JWTService{
		issuer:    cfg.JWTIssuer,
		secretKey: []byte(cfg.JWTSecret),
	}
}

// Enabled reports whether a signing secret is configured
func (j *JWTService) Enabled() bool {
	return len(j.secretKey) > 0
}

// GenerateAccessToken mints an access token for subject valid for ttl
func (j *JWTService) GenerateAccessToken(subject string, ttl time.Duration) (string, error) {
	if !j.Enabled() {
		return "", ErrJWTDisabled
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token lifetime must be positive")
	}

	jti, err := generateJTI()
	if err != nil {
		return "", fmt.Errorf("failed to generate JTI: %w", err)
	}

	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   subject,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
		},
		TokenType: tokenTypeAccess,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken parses tokenString and checks signature, issuer,
// expiry and token type
func (j *JWTService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	if !j.Enabled() {
		return nil, ErrJWTDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("token has no expiry")
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("invalid token type, expected access token")
	}

	return claims, nil
}

// generateJTI generates a unique JWT ID
func generateJTI() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
