package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewProfileService(userRepo, new(mockReviewRepo))
	ctx := context.Background()

	freelancer := Actor{ID: uuid.New(), Role: models.RoleFreelancer}
	userRepo.On("UpsertProfile", ctx, mock.AnythingOfType("*models.FreelancerProfile")).Return(nil)

	bio := "Десять лет в вёрстке"
	link := "https://portfolio.example.com"
	profile, err := svc.UpdateProfile(ctx, freelancer, UpdateProfileInput{
		Bio:           &bio,
		Skills:        []string{"html", "css "},
		PortfolioLink: &link,
	})

	assert.NoError(t, err)
	assert.Equal(t, freelancer.ID, profile.UserID)
	assert.Equal(t, []string{"html", "css"}, []string(profile.Skills))
}

func TestProfileService_UpdateProfile_ClientForbidden(t *testing.T) {
	svc := NewProfileService(new(mockUserRepo), new(mockReviewRepo))

	_, err := svc.UpdateProfile(context.Background(), Actor{ID: uuid.New(), Role: models.RoleClient}, UpdateProfileInput{})
	assert.True(t, apperror.IsForbidden(err))
}

func TestProfileService_UpdateProfile_BadLink(t *testing.T) {
	svc := NewProfileService(new(mockUserRepo), new(mockReviewRepo))
	freelancer := Actor{ID: uuid.New(), Role: models.RoleFreelancer}

	link := "ftp://files.example.com"
	_, err := svc.UpdateProfile(context.Background(), freelancer, UpdateProfileInput{PortfolioLink: &link})
	assert.True(t, apperror.IsValidation(err))
}

func TestProfileService_GetPublicProfile_LazyEmpty(t *testing.T) {
	userRepo := new(mockUserRepo)
	reviewRepo := new(mockReviewRepo)
	svc := NewProfileService(userRepo, reviewRepo)
	ctx := context.Background()

	userID := uuid.New()
	userRepo.On("GetByID", ctx, userID).Return(&models.User{
		ID: userID, Name: "Мария", Role: models.RoleFreelancer,
	}, nil)
	userRepo.On("GetProfileByUserID", ctx, userID).Return(nil, repository.ErrProfileNotFound)
	reviewRepo.On("ListByFreelancer", ctx, userID, 20, 0).Return([]models.Review{}, nil)

	public, err := svc.GetPublicProfile(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, userID, public.Profile.UserID)
	assert.Equal(t, 0.0, public.Profile.AvgRating)
	assert.Empty(t, public.Reviews)
}

func TestProfileService_GetPublicProfile_ClientNotFound(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewProfileService(userRepo, new(mockReviewRepo))
	ctx := context.Background()

	userID := uuid.New()
	userRepo.On("GetByID", ctx, userID).Return(&models.User{ID: userID, Role: models.RoleClient}, nil)

	_, err := svc.GetPublicProfile(ctx, userID)
	assert.True(t, apperror.IsNotFound(err))
}
