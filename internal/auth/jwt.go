package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hauptbau/fieldops-api/internal/config"
	"github.com/hauptbau/fieldops-api/internal/domain"
)

// Claims are the JWT claims carried by tokens this service issues
type Claims struct {
	DisplayName string  `json:"name,omitempty"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 access tokens
type TokenService struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewTokenService creates a new token service from auth configuration
func NewTokenService(cfg *config.AuthConfig) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}

	ttl := cfg.TokenTTLDuration()
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}

	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		tokenTTL: ttl,
	}, nil
}

// IssueToken creates a signed token for the given user
func (s *TokenService) IssueToken(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if user.EmployeeID != nil {
		employeeID := user.EmployeeID.String()
		claims.EmployeeID = &employeeID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken parses and validates a token, returning the user context
func (s *TokenService) ValidateToken(tokenString string) (*UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, fmt.Errorf("invalid token issuer: %s", claims.Issuer)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	userCtx := &UserContext{
		UserID:      userID,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		Role:        domain.UserRole(claims.Role),
	}
	if claims.EmployeeID != nil {
		if employeeID, err := uuid.Parse(*claims.EmployeeID); err == nil {
			userCtx.EmployeeID = &employeeID
		}
	}

	return userCtx, nil
}
