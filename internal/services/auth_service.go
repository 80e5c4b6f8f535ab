package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/middleware"
	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

// AuthService verifies credentials and issues RS256 access tokens.
type AuthService struct {
	userRepo    repositories.UserRepository
	privateKey  *rsa.PrivateKey
	tokenExpiry time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, privateKey *rsa.PrivateKey, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		privateKey:  privateKey,
		tokenExpiry: tokenExpiry,
	}
}

// Login checks the password and returns a signed access token. The error
// is the same for unknown user and wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateAccessToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GenerateAccessToken(subjectID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": middleware.TokenIssuer,
		"sub": subjectID.String(),
		"exp": now.Add(s.tokenExpiry).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}
