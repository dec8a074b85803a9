package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/store"

	"github.com/golang-jwt/jwt/v4"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService is the authentication collaborator: a lookup against the user
// collection. Emails match case-insensitively, passwords as plain values.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	CanResetPassword(ctx context.Context, email, phoneNumber string) (bool, error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	snapshots     store.SnapshotStore
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(snapshots store.SnapshotStore, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		snapshots:     snapshots,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Login authenticates a user and issues a JWT on success.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return "", nil, err
	}

	for i := range data.Users {
		u := &data.Users[i]
		if strings.EqualFold(u.Email, email) && u.Password == password {
			token, err := s.generateJWT(u)
			if err != nil {
				return "", nil, ErrTokenGeneration
			}
			return token, u, nil
		}
	}
	return "", nil, ErrAuthenticationFailed
}

// CanResetPassword reports whether a user exists matching both the email
// (case-insensitive) and the phone number (exact).
func (s *authService) CanResetPassword(ctx context.Context, email, phoneNumber string) (bool, error) {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range data.Users {
		if strings.EqualFold(u.Email, email) && u.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "attendease",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
