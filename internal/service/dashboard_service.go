package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

// JobRepoForDashboard агрегаты по заданиям для кабинетов.
type JobRepoForDashboard interface {
	List(ctx context.Context, params repository.ListFilterParams) (*repository.ListResult, error)
	CountByStatusForClient(ctx context.Context, clientID uuid.UUID) (map[string]int, error)
	ListActiveContracts(ctx context.Context, clientID uuid.UUID) ([]models.ActiveContract, error)
	ListActiveJobsForFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.ActiveJob, error)
	CountHiredFreelancers(ctx context.Context, clientID uuid.UUID) (int, error)
}

// BidRepoForDashboard агрегаты по откликам для кабинета фрилансера.
type BidRepoForDashboard interface {
	CountByStatusForFreelancer(ctx context.Context, freelancerID uuid.UUID) (map[string]int, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, status string, limit, offset int) ([]models.Bid, error)
}

// PaymentRepoForDashboard агрегаты по платежам для кабинетов.
type PaymentRepoForDashboard interface {
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]models.Payment, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Payment, error)
	SumReleasedByClient(ctx context.Context, clientID uuid.UUID) (float64, error)
	SumReleasedByFreelancer(ctx context.Context, freelancerID uuid.UUID) (float64, error)
}

// ReviewRepoForDashboard отзывы для кабинетов.
type ReviewRepoForDashboard interface {
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Review, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]models.Review, error)
}

// UserRepoForDashboard профиль для рейтинга и полноты заполнения.
type UserRepoForDashboard interface {
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.FreelancerProfile, error)
}

// DashboardService собирает проекции кабинетов. Все показатели считаются
// по текущему состоянию хранилища на каждый запрос.
type DashboardService struct {
	jobs     JobRepoForDashboard
	bids     BidRepoForDashboard
	payments PaymentRepoForDashboard
	reviews  ReviewRepoForDashboard
	users    UserRepoForDashboard
}

// NewDashboardService создаёт сервис кабинетов.
func NewDashboardService(
	jobs JobRepoForDashboard,
	bids BidRepoForDashboard,
	payments PaymentRepoForDashboard,
	reviews ReviewRepoForDashboard,
	users UserRepoForDashboard,
) *DashboardService {
	return &DashboardService{jobs: jobs, bids: bids, payments: payments, reviews: reviews, users: users}
}

const recentItemsLimit = 5

// ClientDashboard собирает кабинет заказчика.
func (s *DashboardService) ClientDashboard(ctx context.Context, actor Actor) (*models.ClientDashboard, error) {
	if !actor.IsClient() {
		return nil, apperror.Forbidden("кабинет заказчика доступен только заказчикам")
	}

	jobsByStatus, err := s.jobs.CountByStatusForClient(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	totalSpent, err := s.payments.SumReleasedByClient(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	hired, err := s.jobs.CountHiredFreelancers(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	clientID := actor.ID
	recentJobs, err := s.jobs.List(ctx, repository.ListFilterParams{
		ClientID: &clientID,
		Limit:    recentItemsLimit,
	})
	if err != nil {
		return nil, err
	}

	contracts, err := s.jobs.ListActiveContracts(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	recentPayments, err := s.payments.ListByClient(ctx, actor.ID, recentItemsLimit, 0)
	if err != nil {
		return nil, err
	}

	reviewsGiven, err := s.reviews.ListByClient(ctx, actor.ID, recentItemsLimit, 0)
	if err != nil {
		return nil, err
	}

	return &models.ClientDashboard{
		JobsByStatus:     jobsByStatus,
		TotalSpent:       totalSpent,
		HiredFreelancers: hired,
		RecentJobs:       recentJobs.Jobs,
		ActiveContracts:  contracts,
		RecentPayments:   recentPayments,
		ReviewsGiven:     reviewsGiven,
	}, nil
}

// FreelancerDashboard собирает кабинет фрилансера.
func (s *DashboardService) FreelancerDashboard(ctx context.Context, actor Actor) (*models.FreelancerDashboard, error) {
	if !actor.IsFreelancer() {
		return nil, apperror.Forbidden("кабинет фрилансера доступен только фрилансерам")
	}

	bidsByStatus, err := s.bids.CountByStatusForFreelancer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	earnings, err := s.payments.SumReleasedByFreelancer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	activeJobs, err := s.jobs.ListActiveJobsForFreelancer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	recentBids, err := s.bids.ListByFreelancer(ctx, actor.ID, "", recentItemsLimit, 0)
	if err != nil {
		return nil, err
	}

	recentPayments, err := s.payments.ListByFreelancer(ctx, actor.ID, recentItemsLimit, 0)
	if err != nil {
		return nil, err
	}

	reviewsReceived, err := s.reviews.ListByFreelancer(ctx, actor.ID, recentItemsLimit, 0)
	if err != nil {
		return nil, err
	}

	dashboard := &models.FreelancerDashboard{
		BidsByStatus:    bidsByStatus,
		TotalEarnings:   earnings,
		ActiveJobs:      activeJobs,
		RecentBids:      recentBids,
		RecentPayments:  recentPayments,
		ReviewsReceived: reviewsReceived,
	}

	profile, err := s.users.GetProfileByUserID(ctx, actor.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}
		profile = nil
	}

	if profile != nil {
		dashboard.AvgRating = profile.AvgRating
		dashboard.TotalReviews = profile.TotalReviews
	}
	dashboard.ProfileCompletion, dashboard.MissingItems = profileCompletion(profile)

	return dashboard, nil
}

// profileCompletion оценивает заполненность профиля в процентах
// и перечисляет недостающие разделы.
func profileCompletion(profile *models.FreelancerProfile) (int, []string) {
	type item struct {
		name   string
		filled bool
	}

	items := []item{
		{"описание", profile != nil && profile.Bio != nil && *profile.Bio != ""},
		{"навыки", profile != nil && len(profile.Skills) > 0},
		{"портфолио", profile != nil && profile.PortfolioLink != nil && *profile.PortfolioLink != ""},
		{"фото профиля", profile != nil && profile.ProfileImage != nil && *profile.ProfileImage != ""},
	}

	filled := 0
	var missing []string
	for _, it := range items {
		if it.filled {
			filled++
		} else {
			missing = append(missing, it.name)
		}
	}

	return filled * 100 / len(items), missing
}
