package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/IrinaIzq/To-do-list-app/internal/auth"
	apperrors "github.com/IrinaIzq/To-do-list-app/internal/errors"
	"github.com/IrinaIzq/To-do-list-app/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) AuthService {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService, auth.NewBcryptHasher())
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		setupMock    func(*MockUserRepository)
		expectedKind apperrors.Kind
		expectedMsg  string
		wantErr      bool
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:         "empty username",
			username:     "",
			password:     "password123",
			setupMock:    func(m *MockUserRepository) {},
			wantErr:      true,
			expectedKind: apperrors.KindValidation,
			expectedMsg:  "username and password are required",
		},
		{
			name:         "empty password",
			username:     "alice",
			password:     "",
			setupMock:    func(m *MockUserRepository) {},
			wantErr:      true,
			expectedKind: apperrors.KindValidation,
			expectedMsg:  "username and password are required",
		},
		{
			name:         "password too short",
			username:     "alice",
			password:     "12345",
			setupMock:    func(m *MockUserRepository) {},
			wantErr:      true,
			expectedKind: apperrors.KindValidation,
			expectedMsg:  "password must be at least 6 characters",
		},
		{
			name:     "username already taken",
			username: "bob",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(&model.User{Username: "bob"}, nil)
			},
			wantErr:      true,
			expectedKind: apperrors.KindConflict,
			expectedMsg:  "user already exists",
		},
		{
			name:     "duplicate key race on insert",
			username: "carol",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "carol").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr:      true,
			expectedKind: apperrors.KindConflict,
			expectedMsg:  "user already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo)
			user, err := service.Register(context.Background(), tt.username, tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperrors.IsKind(err, tt.expectedKind))
				assert.EqualError(t, err, tt.expectedMsg)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	hasher := auth.NewBcryptHasher()
	hashed, err := hasher.Hash("password123")
	assert.NoError(t, err)

	userID := uuid.New()

	tests := []struct {
		name      string
		username  string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   bool
	}{
		{
			name:     "successful authentication",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           userID,
					Username:     "alice",
					PasswordHash: hashed,
				}, nil)
			},
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: true,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           userID,
					Username:     "alice",
					PasswordHash: hashed,
				}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo)
			id, err := service.Authenticate(context.Background(), tt.username, tt.password)

			if tt.wantErr {
				// Unknown user and bad password must be indistinguishable.
				assert.Error(t, err)
				assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
				assert.EqualError(t, err, "invalid credentials")
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, userID, id)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_TokenLifecycle(t *testing.T) {
	service := newTestAuthService(new(MockUserRepository))
	userID := uuid.New()

	token, err := service.IssueToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Verification is stateless: no repository expectations are set, so any
	// repo call would fail the mock.
	got, err := service.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthService_VerifyExpiredToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", -time.Minute)
	service := NewAuthService(new(MockUserRepository), jwtService, auth.NewBcryptHasher())

	token, err := service.IssueToken(uuid.New())
	assert.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	assert.EqualError(t, err, "token has expired")
}
