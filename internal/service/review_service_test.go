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

func TestReviewService_SubmitReview_Success(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	paymentRepo := new(mockPaymentRepo)
	svc := NewReviewService(reviewRepo, jobRepo, bidRepo, paymentRepo)
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	freelancerID := uuid.New()
	jobID := uuid.New()
	bidID := uuid.New()

	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{
		ID: jobID, ClientID: client.ID, Status: models.JobStatusCompleted, AcceptedBidID: &bidID,
	}, nil)
	paymentRepo.On("GetByJobID", ctx, jobID).Return(&models.Payment{
		JobID: jobID, Status: models.PaymentStatusReleased,
	}, nil)
	bidRepo.On("GetByID", ctx, bidID).Return(&models.Bid{ID: bidID, FreelancerID: freelancerID}, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

	comment := "Отличная работа, сдал раньше срока"
	review, err := svc.SubmitReview(ctx, client, SubmitReviewInput{JobID: jobID, Rating: 5, Comment: &comment})

	assert.NoError(t, err)
	assert.Equal(t, freelancerID, review.FreelancerID)
	assert.Equal(t, client.ID, review.ClientID)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_SubmitReview_InvalidRating(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepo), new(mockJobRepo), new(mockBidRepo), new(mockPaymentRepo))
	ctx := context.Background()
	client := Actor{ID: uuid.New(), Role: models.RoleClient}

	_, err := svc.SubmitReview(ctx, client, SubmitReviewInput{JobID: uuid.New(), Rating: 0})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.SubmitReview(ctx, client, SubmitReviewInput{JobID: uuid.New(), Rating: 6})
	assert.True(t, apperror.IsValidation(err))
}

func TestReviewService_SubmitReview_JobNotCompleted(t *testing.T) {
	jobRepo := new(mockJobRepo)
	svc := NewReviewService(new(mockReviewRepo), jobRepo, new(mockBidRepo), new(mockPaymentRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{
		ID: jobID, ClientID: client.ID, Status: models.JobStatusInProgress,
	}, nil)

	_, err := svc.SubmitReview(ctx, client, SubmitReviewInput{JobID: jobID, Rating: 4})
	assert.True(t, apperror.IsState(err))
}

// Отзыв до выпуска средств невозможен: платёж ещё pending.
func TestReviewService_SubmitReview_PaymentNotReleased(t *testing.T) {
	jobRepo := new(mockJobRepo)
	paymentRepo := new(mockPaymentRepo)
	svc := NewReviewService(new(mockReviewRepo), jobRepo, new(mockBidRepo), paymentRepo)
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	bidID := uuid.New()

	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{
		ID: jobID, ClientID: client.ID, Status: models.JobStatusCompleted, AcceptedBidID: &bidID,
	}, nil)
	paymentRepo.On("GetByJobID", ctx, jobID).Return(&models.Payment{
		JobID: jobID, Status: models.PaymentStatusPending,
	}, nil)

	_, err := svc.SubmitReview(ctx, client, SubmitReviewInput{JobID: jobID, Rating: 4})
	assert.True(t, apperror.IsState(err))
}

// Отсутствующий платёж трактуется как ошибка состояния, а не внутренняя.
func TestReviewService_SubmitReview_PaymentMissing(t *testing.T) {
	jobRepo := new(mockJobRepo)
	paymentRepo := new(mockPaymentRepo)
	svc := NewReviewService(new(mockReviewRepo), jobRepo, new(mockBidRepo), paymentRepo)
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	bidID := uuid.New()

	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{
		ID: jobID, ClientID: client.ID, Status: models.JobStatusCompleted, AcceptedBidID: &bidID,
	}, nil)
	paymentRepo.On("GetByJobID", ctx, jobID).Return(nil, repository.ErrPaymentNotFound)

	_, err := svc.SubmitReview(ctx, client, SubmitReviewInput{JobID: jobID, Rating: 4})
	assert.True(t, apperror.IsState(err))
}

func TestReviewService_SubmitReview_NotOwner(t *testing.T) {
	jobRepo := new(mockJobRepo)
	svc := NewReviewService(new(mockReviewRepo), jobRepo, new(mockBidRepo), new(mockPaymentRepo))
	ctx := context.Background()

	jobID := uuid.New()
	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{
		ID: jobID, ClientID: uuid.New(), Status: models.JobStatusCompleted,
	}, nil)

	_, err := svc.SubmitReview(ctx, Actor{ID: uuid.New(), Role: models.RoleClient}, SubmitReviewInput{JobID: jobID, Rating: 4})
	assert.True(t, apperror.IsForbidden(err))
}

func TestReviewService_SubmitReview_Duplicate(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	paymentRepo := new(mockPaymentRepo)
	svc := NewReviewService(reviewRepo, jobRepo, bidRepo, paymentRepo)
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	bidID := uuid.New()

	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{
		ID: jobID, ClientID: client.ID, Status: models.JobStatusCompleted, AcceptedBidID: &bidID,
	}, nil)
	paymentRepo.On("GetByJobID", ctx, jobID).Return(&models.Payment{
		JobID: jobID, Status: models.PaymentStatusReleased,
	}, nil)
	bidRepo.On("GetByID", ctx, bidID).Return(&models.Bid{ID: bidID, FreelancerID: uuid.New()}, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(repository.ErrReviewExists)

	_, err := svc.SubmitReview(ctx, client, SubmitReviewInput{JobID: jobID, Rating: 4})
	assert.True(t, apperror.IsConflict(err))
}

func TestReviewService_ListFreelancerReviews(t *testing.T) {
	reviewRepo := new(mockReviewRepo)
	svc := NewReviewService(reviewRepo, new(mockJobRepo), new(mockBidRepo), new(mockPaymentRepo))
	ctx := context.Background()

	freelancerID := uuid.New()
	reviewRepo.On("ListByFreelancer", ctx, freelancerID, 20, 0).Return([]models.Review{
		{ID: uuid.New(), Rating: 5},
		{ID: uuid.New(), Rating: 4},
	}, nil)

	reviews, err := svc.ListFreelancerReviews(ctx, freelancerID, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, reviews, 2)
}
