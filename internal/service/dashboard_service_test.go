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

func newDashboardService(jobs *mockJobRepo, bids *mockBidRepo, payments *mockPaymentRepo, reviews *mockReviewRepo, users *mockUserRepo) *DashboardService {
	return NewDashboardService(jobs, bids, payments, reviews, users)
}

func TestDashboardService_ClientDashboard(t *testing.T) {
	jobRepo := new(mockJobRepo)
	paymentRepo := new(mockPaymentRepo)
	reviewRepo := new(mockReviewRepo)
	svc := newDashboardService(jobRepo, new(mockBidRepo), paymentRepo, reviewRepo, new(mockUserRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}

	jobRepo.On("CountByStatusForClient", ctx, client.ID).Return(map[string]int{
		models.JobStatusOpen: 2, models.JobStatusCompleted: 3,
	}, nil)
	paymentRepo.On("SumReleasedByClient", ctx, client.ID).Return(42000.0, nil)
	jobRepo.On("CountHiredFreelancers", ctx, client.ID).Return(3, nil)
	jobRepo.On("List", ctx, mock.AnythingOfType("repository.ListFilterParams")).Return(&repository.ListResult{
		Jobs: []models.Job{{ID: uuid.New()}}, Total: 5,
	}, nil)
	jobRepo.On("ListActiveContracts", ctx, client.ID).Return([]models.ActiveContract{{JobID: uuid.New()}}, nil)
	paymentRepo.On("ListByClient", ctx, client.ID, recentItemsLimit, 0).Return([]models.Payment{}, nil)
	reviewRepo.On("ListByClient", ctx, client.ID, recentItemsLimit, 0).Return([]models.Review{}, nil)

	dashboard, err := svc.ClientDashboard(ctx, client)
	assert.NoError(t, err)
	assert.Equal(t, 42000.0, dashboard.TotalSpent)
	assert.Equal(t, 3, dashboard.HiredFreelancers)
	assert.Equal(t, 2, dashboard.JobsByStatus[models.JobStatusOpen])
	assert.Len(t, dashboard.ActiveContracts, 1)
}

func TestDashboardService_ClientDashboard_FreelancerForbidden(t *testing.T) {
	svc := newDashboardService(new(mockJobRepo), new(mockBidRepo), new(mockPaymentRepo), new(mockReviewRepo), new(mockUserRepo))

	_, err := svc.ClientDashboard(context.Background(), Actor{ID: uuid.New(), Role: models.RoleFreelancer})
	assert.True(t, apperror.IsForbidden(err))
}

func TestDashboardService_FreelancerDashboard(t *testing.T) {
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	paymentRepo := new(mockPaymentRepo)
	reviewRepo := new(mockReviewRepo)
	userRepo := new(mockUserRepo)
	svc := newDashboardService(jobRepo, bidRepo, paymentRepo, reviewRepo, userRepo)
	ctx := context.Background()

	freelancer := Actor{ID: uuid.New(), Role: models.RoleFreelancer}

	bidRepo.On("CountByStatusForFreelancer", ctx, freelancer.ID).Return(map[string]int{
		models.BidStatusPending: 2, models.BidStatusAccepted: 1,
	}, nil)
	paymentRepo.On("SumReleasedByFreelancer", ctx, freelancer.ID).Return(15000.0, nil)
	jobRepo.On("ListActiveJobsForFreelancer", ctx, freelancer.ID).Return([]models.ActiveJob{{JobID: uuid.New()}}, nil)
	bidRepo.On("ListByFreelancer", ctx, freelancer.ID, "", recentItemsLimit, 0).Return([]models.Bid{}, nil)
	paymentRepo.On("ListByFreelancer", ctx, freelancer.ID, recentItemsLimit, 0).Return([]models.Payment{}, nil)
	reviewRepo.On("ListByFreelancer", ctx, freelancer.ID, recentItemsLimit, 0).Return([]models.Review{}, nil)

	bio := "Пишу бэкенды"
	userRepo.On("GetProfileByUserID", ctx, freelancer.ID).Return(&models.FreelancerProfile{
		UserID:       freelancer.ID,
		Bio:          &bio,
		Skills:       []string{"go", "postgres"},
		AvgRating:    4.5,
		TotalReviews: 10,
	}, nil)

	dashboard, err := svc.FreelancerDashboard(ctx, freelancer)
	assert.NoError(t, err)
	assert.Equal(t, 15000.0, dashboard.TotalEarnings)
	assert.Equal(t, 4.5, dashboard.AvgRating)
	assert.Equal(t, 10, dashboard.TotalReviews)
	assert.Len(t, dashboard.ActiveJobs, 1)
	assert.Equal(t, 50, dashboard.ProfileCompletion)
	assert.ElementsMatch(t, []string{"портфолио", "фото профиля"}, dashboard.MissingItems)
}

// Кабинет фрилансера без профиля: нулевой рейтинг и полный список
// недостающих разделов вместо ошибки.
func TestDashboardService_FreelancerDashboard_NoProfile(t *testing.T) {
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	paymentRepo := new(mockPaymentRepo)
	reviewRepo := new(mockReviewRepo)
	userRepo := new(mockUserRepo)
	svc := newDashboardService(jobRepo, bidRepo, paymentRepo, reviewRepo, userRepo)
	ctx := context.Background()

	freelancer := Actor{ID: uuid.New(), Role: models.RoleFreelancer}

	bidRepo.On("CountByStatusForFreelancer", ctx, freelancer.ID).Return(map[string]int{}, nil)
	paymentRepo.On("SumReleasedByFreelancer", ctx, freelancer.ID).Return(0.0, nil)
	jobRepo.On("ListActiveJobsForFreelancer", ctx, freelancer.ID).Return([]models.ActiveJob{}, nil)
	bidRepo.On("ListByFreelancer", ctx, freelancer.ID, "", recentItemsLimit, 0).Return([]models.Bid{}, nil)
	paymentRepo.On("ListByFreelancer", ctx, freelancer.ID, recentItemsLimit, 0).Return([]models.Payment{}, nil)
	reviewRepo.On("ListByFreelancer", ctx, freelancer.ID, recentItemsLimit, 0).Return([]models.Review{}, nil)
	userRepo.On("GetProfileByUserID", ctx, freelancer.ID).Return(nil, repository.ErrProfileNotFound)

	dashboard, err := svc.FreelancerDashboard(ctx, freelancer)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, dashboard.AvgRating)
	assert.Equal(t, 0, dashboard.ProfileCompletion)
	assert.Len(t, dashboard.MissingItems, 4)
}
