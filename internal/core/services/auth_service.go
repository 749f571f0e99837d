package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues RS256 tokens for dashboard users and records
// logged-out tokens on the denylist until they expire on their own.
type AuthService struct {
	userRepo   ports.UserRepository
	privateKey *rsa.PrivateKey
	denylist   ports.TokenDenylist
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(userRepo ports.UserRepository, privateKey *rsa.PrivateKey, denylist ports.TokenDenylist) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		privateKey: privateKey,
		denylist:   denylist,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if user.Status != domain.UserActive {
		return "", ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

// Logout denies the token for the remainder of its lifetime. An
// already-expired token is a no-op.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return errors.New("token has no expiry")
	}

	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Deny(ctx, tokenString, ttl)
}
