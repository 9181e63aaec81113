package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IrinaIzq/To-do-list-app/internal/auth"
	apperrors "github.com/IrinaIzq/To-do-list-app/internal/errors"
	"github.com/IrinaIzq/To-do-list-app/internal/model"
	"github.com/IrinaIzq/To-do-list-app/internal/repository"
)

const minPasswordLength = 6

// AuthService handles registration, credential verification and token
// issuance. Tokens are stateless, so verification never touches the
// repository.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (uuid.UUID, error)
	IssueToken(userID uuid.UUID) (string, error)
	VerifyToken(token string) (uuid.UUID, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	hasher     auth.PasswordHasher
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, hasher auth.PasswordHasher) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidation("username and password are required")
	}
	if len(password) < minPasswordLength {
		return nil, apperrors.NewValidation("password must be at least 6 characters")
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.NewConflict("user already exists")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Unique index is the backstop for concurrent duplicate registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("user already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the user id. Unknown
// username and wrong password are deliberately indistinguishable.
func (s *authService) Authenticate(ctx context.Context, username, password string) (uuid.UUID, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return uuid.Nil, apperrors.NewAuthentication("invalid credentials")
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return uuid.Nil, apperrors.NewAuthentication("invalid credentials")
	}

	return user.ID, nil
}

// IssueToken produces a signed credential for the user.
func (s *authService) IssueToken(userID uuid.UUID) (string, error) {
	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// VerifyToken decodes and verifies a credential, returning the embedded
// user id.
func (s *authService) VerifyToken(token string) (uuid.UUID, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}
