package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

func TestJobService_PostJob_Success(t *testing.T) {
	jobRepo := new(mockJobRepo)
	svc := NewJobService(jobRepo, new(mockBidRepo), new(mockUserRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobRepo.On("Create", ctx, mock.AnythingOfType("*models.Job")).Return(nil)

	job, err := svc.PostJob(ctx, client, PostJobInput{
		Title:       "Сайт-визитка",
		Description: "Нужен простой сайт на три страницы",
		Budget:      15000,
		Category:    "web",
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
	})

	assert.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, models.JobStatusOpen, job.Status)
	assert.Equal(t, client.ID, job.ClientID)
}

func TestJobService_PostJob_FreelancerForbidden(t *testing.T) {
	svc := NewJobService(new(mockJobRepo), new(mockBidRepo), new(mockUserRepo))

	_, err := svc.PostJob(context.Background(), Actor{ID: uuid.New(), Role: models.RoleFreelancer}, PostJobInput{})
	assert.True(t, apperror.IsForbidden(err))
}

func TestJobService_PostJob_Validation(t *testing.T) {
	svc := NewJobService(new(mockJobRepo), new(mockBidRepo), new(mockUserRepo))
	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	ctx := context.Background()

	deadline := time.Now().Add(24 * time.Hour)

	_, err := svc.PostJob(ctx, client, PostJobInput{
		Title: "ок", Description: "достаточно длинное описание", Budget: 100, Category: "web", Deadline: deadline,
	})
	assert.True(t, apperror.IsValidation(err), "слишком короткий заголовок")

	_, err = svc.PostJob(ctx, client, PostJobInput{
		Title: "Логотип", Description: "достаточно длинное описание", Budget: -5, Category: "design", Deadline: deadline,
	})
	assert.True(t, apperror.IsValidation(err), "отрицательный бюджет")

	_, err = svc.PostJob(ctx, client, PostJobInput{
		Title: "Логотип", Description: "достаточно длинное описание", Budget: 100, Category: "космос", Deadline: deadline,
	})
	assert.True(t, apperror.IsValidation(err), "неизвестная категория")

	_, err = svc.PostJob(ctx, client, PostJobInput{
		Title: "Логотип", Description: "достаточно длинное описание", Budget: 100, Category: "design",
		Deadline: time.Now().Add(-time.Hour),
	})
	assert.True(t, apperror.IsValidation(err), "срок в прошлом")
}

func TestJobService_CancelJob_Success(t *testing.T) {
	jobRepo := new(mockJobRepo)
	svc := NewJobService(jobRepo, new(mockBidRepo), new(mockUserRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	open := &models.Job{ID: jobID, ClientID: client.ID, Status: models.JobStatusOpen}
	cancelled := &models.Job{ID: jobID, ClientID: client.ID, Status: models.JobStatusCancelled}

	jobRepo.On("GetByID", ctx, jobID).Return(open, nil).Once()
	jobRepo.On("Cancel", ctx, jobID).Return(nil)
	jobRepo.On("GetByID", ctx, jobID).Return(cancelled, nil).Once()

	job, err := svc.CancelJob(ctx, client, jobID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusCancelled, job.Status)
}

func TestJobService_CancelJob_NotOwner(t *testing.T) {
	jobRepo := new(mockJobRepo)
	svc := NewJobService(jobRepo, new(mockBidRepo), new(mockUserRepo))
	ctx := context.Background()

	jobID := uuid.New()
	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{ID: jobID, ClientID: uuid.New(), Status: models.JobStatusOpen}, nil)

	_, err := svc.CancelJob(ctx, Actor{ID: uuid.New(), Role: models.RoleClient}, jobID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestJobService_CancelJob_NotOpen(t *testing.T) {
	jobRepo := new(mockJobRepo)
	svc := NewJobService(jobRepo, new(mockBidRepo), new(mockUserRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{ID: jobID, ClientID: client.ID, Status: models.JobStatusInProgress}, nil)
	jobRepo.On("Cancel", ctx, jobID).Return(repository.ErrJobNotOpen)

	_, err := svc.CancelJob(ctx, client, jobID)
	assert.True(t, apperror.IsState(err))
}

func TestJobService_AcceptBid_Success(t *testing.T) {
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	svc := NewJobService(jobRepo, bidRepo, new(mockUserRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	bidID := uuid.New()

	pending := &models.Bid{ID: bidID, JobID: jobID, Status: models.BidStatusPending, Amount: 5000}
	accepted := &models.Bid{ID: bidID, JobID: jobID, Status: models.BidStatusAccepted, Amount: 5000}
	open := &models.Job{ID: jobID, ClientID: client.ID, Status: models.JobStatusOpen}
	inProgress := &models.Job{ID: jobID, ClientID: client.ID, Status: models.JobStatusInProgress, AcceptedBidID: &bidID}

	bidRepo.On("GetByID", ctx, bidID).Return(pending, nil).Once()
	jobRepo.On("GetByID", ctx, jobID).Return(open, nil).Once()
	jobRepo.On("AcceptBid", ctx, jobID, bidID).Return(nil)
	jobRepo.On("GetByID", ctx, jobID).Return(inProgress, nil).Once()
	bidRepo.On("GetByID", ctx, bidID).Return(accepted, nil).Once()

	result, err := svc.AcceptBid(ctx, client, bidID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, result.Job.Status)
	assert.Equal(t, models.BidStatusAccepted, result.Bid.Status)
	assert.Equal(t, &bidID, result.Job.AcceptedBidID)
}

// Второй конкурирующий вызов натыкается на условный UPDATE по статусу:
// задание уже не open, переход отклоняется ошибкой состояния.
func TestJobService_AcceptBid_ConcurrentSecondCall(t *testing.T) {
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	svc := NewJobService(jobRepo, bidRepo, new(mockUserRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	bidID := uuid.New()

	bidRepo.On("GetByID", ctx, bidID).Return(&models.Bid{ID: bidID, JobID: jobID, Status: models.BidStatusPending}, nil)
	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{ID: jobID, ClientID: client.ID, Status: models.JobStatusOpen}, nil)
	jobRepo.On("AcceptBid", ctx, jobID, bidID).Return(repository.ErrJobNotOpen)

	_, err := svc.AcceptBid(ctx, client, bidID)
	assert.True(t, apperror.IsState(err))
}

func TestJobService_AcceptBid_NotOwner(t *testing.T) {
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	svc := NewJobService(jobRepo, bidRepo, new(mockUserRepo))
	ctx := context.Background()

	jobID := uuid.New()
	bidID := uuid.New()

	bidRepo.On("GetByID", ctx, bidID).Return(&models.Bid{ID: bidID, JobID: jobID, Status: models.BidStatusPending}, nil)
	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{ID: jobID, ClientID: uuid.New(), Status: models.JobStatusOpen}, nil)

	_, err := svc.AcceptBid(ctx, Actor{ID: uuid.New(), Role: models.RoleClient}, bidID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestJobService_AcceptBid_BidAlreadyHandled(t *testing.T) {
	jobRepo := new(mockJobRepo)
	bidRepo := new(mockBidRepo)
	svc := NewJobService(jobRepo, bidRepo, new(mockUserRepo))
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	jobID := uuid.New()
	bidID := uuid.New()

	bidRepo.On("GetByID", ctx, bidID).Return(&models.Bid{ID: bidID, JobID: jobID, Status: models.BidStatusRejected}, nil)
	jobRepo.On("GetByID", ctx, jobID).Return(&models.Job{ID: jobID, ClientID: client.ID, Status: models.JobStatusOpen}, nil)
	jobRepo.On("AcceptBid", ctx, jobID, bidID).Return(repository.ErrBidNotPending)

	_, err := svc.AcceptBid(ctx, client, bidID)
	assert.True(t, apperror.IsState(err))
}

func TestJobService_ListJobs_BadCategory(t *testing.T) {
	svc := NewJobService(new(mockJobRepo), new(mockBidRepo), new(mockUserRepo))

	_, err := svc.ListJobs(context.Background(), "несуществующая", "", 20, 0)
	assert.True(t, apperror.IsValidation(err))
}

func TestJobService_LandingStats(t *testing.T) {
	jobRepo := new(mockJobRepo)
	userRepo := new(mockUserRepo)
	svc := NewJobService(jobRepo, new(mockBidRepo), userRepo)
	ctx := context.Background()

	jobRepo.On("CountOpenJobs", ctx).Return(12, nil)
	userRepo.On("CountUsers", ctx).Return(40, 25, nil)
	jobRepo.On("ListRecentOpen", ctx, 6).Return([]models.Job{{ID: uuid.New()}}, nil)

	stats, err := svc.LandingStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 12, stats.OpenJobs)
	assert.Equal(t, 40, stats.Users)
	assert.Equal(t, 25, stats.Freelancers)
	assert.Len(t, stats.RecentJobs, 1)
}
