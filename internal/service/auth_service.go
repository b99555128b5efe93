package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"socialfeed/internal/config"
	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

// AuthService maps bearer tokens to principals. Tokens are issued by the
// identity provider; IssueToken exists for development and tests.
type AuthService interface {
	IssueToken(principal identity.Principal) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	PrincipalFromToken(tokenString string) (identity.Principal, error)
}

type authService struct {
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{
		cfg: cfg,
		now: time.Now,
	}
}

func (s *authService) IssueToken(principal identity.Principal) (string, error) {
	if principal.IsAnonymous() {
		return "", fmt.Errorf("%w: токен для анонимного principal", models.ErrValidation)
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   principal.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: ошибка парсинга токена: %v", models.ErrUnauthorized, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: недействительный токен", models.ErrUnauthorized)
	}

	return token, nil
}

func (s *authService) PrincipalFromToken(tokenString string) (identity.Principal, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return identity.Anonymous, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return identity.Anonymous, fmt.Errorf("%w: неверный формат claims", models.ErrUnauthorized)
	}

	principal, err := identity.Parse(claims.Subject)
	if err != nil {
		return identity.Anonymous, fmt.Errorf("%w: %v", models.ErrUnauthorized, err)
	}

	return principal, nil
}
