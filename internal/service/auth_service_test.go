package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, newTestTokenManager())
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{
		Name:     "Иван Петров",
		Email:    "Ivan@Example.com",
		Password: "Password1",
		Role:     models.RoleFreelancer,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ivan@example.com", result.User.Email)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), newTestTokenManager())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Иван", Email: "ivan@example.com", Password: "short", Role: models.RoleClient,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestAuthService_Register_BadRole(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), newTestTokenManager())

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Иван", Email: "ivan@example.com", Password: "Password1", Role: "admin",
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, newTestTokenManager())
	ctx := context.Background()

	userRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(repository.ErrEmailTaken)

	_, err := svc.Register(ctx, RegisterInput{
		Name: "Иван", Email: "ivan@example.com", Password: "Password1", Role: models.RoleClient,
	})
	assert.True(t, apperror.IsConflict(err))
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, newTestTokenManager())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleClient,
	}
	userRepo.On("GetByEmail", ctx, "ivan@example.com").Return(user, nil)

	result, err := svc.Login(ctx, LoginInput{Email: "Ivan@Example.com ", Password: "Password1"})
	assert.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, newTestTokenManager())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	userRepo.On("GetByEmail", ctx, "ivan@example.com").Return(&models.User{
		ID: uuid.New(), Email: "ivan@example.com", PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "ivan@example.com", Password: "Password2"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewAuthService(userRepo, newTestTokenManager())
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "Password1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	tokens := newTestTokenManager()
	svc := NewAuthService(userRepo, tokens)
	ctx := context.Background()

	user := &models.User{ID: uuid.New(), Role: models.RoleFreelancer}
	pair, err := tokens.GeneratePair(user)
	assert.NoError(t, err)

	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	result, err := svc.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), newTestTokenManager())

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestTokenManager_AccessRoundtrip(t *testing.T) {
	tokens := newTestTokenManager()
	user := &models.User{ID: uuid.New(), Role: models.RoleClient}

	pair, err := tokens.GeneratePair(user)
	assert.NoError(t, err)

	userID, role, err := tokens.ParseAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, models.RoleClient, role)

	// refresh токен подписан другим секретом и не проходит как access
	_, _, err = tokens.ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}
