package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-market/internal/logger"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// ReviewRepository описывает зависимости ReviewService от слоя хранилища.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Review, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Review, error)
}

// JobRepoForReviews доступ к заданиям для проверки владения и статуса.
type JobRepoForReviews interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// BidRepoForReviews доступ к принятому отклику для определения исполнителя.
type BidRepoForReviews interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
}

// PaymentRepoForReviews доступ к платежу: отзыв возможен только после released.
type PaymentRepoForReviews interface {
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error)
}

// ReviewService отзывы заказчиков: один отзыв на задание, только после
// выпуска средств. Рейтинг фрилансера пересчитывается по всей истории.
type ReviewService struct {
	reviews  ReviewRepository
	jobs     JobRepoForReviews
	bids     BidRepoForReviews
	payments PaymentRepoForReviews
}

// NewReviewService создаёт сервис отзывов.
func NewReviewService(reviews ReviewRepository, jobs JobRepoForReviews, bids BidRepoForReviews, payments PaymentRepoForReviews) *ReviewService {
	return &ReviewService{reviews: reviews, jobs: jobs, bids: bids, payments: payments}
}

// SubmitReviewInput данные нового отзыва.
type SubmitReviewInput struct {
	JobID   uuid.UUID
	Rating  int
	Comment *string
}

// SubmitReview оставляет отзыв по завершённому заданию.
func (s *ReviewService) SubmitReview(ctx context.Context, actor Actor, in SubmitReviewInput) (*models.Review, error) {
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if in.Comment != nil {
		if err := validation.ValidateLength("комментарий", *in.Comment, 0, validation.MaxDescriptionLength); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}

	job, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}

	if job.ClientID != actor.ID {
		return nil, apperror.Forbidden("отзыв оставляет только заказчик задания")
	}
	if job.Status != models.JobStatusCompleted {
		return nil, apperror.State("отзыв возможен только по завершённому заданию")
	}
	if job.AcceptedBidID == nil {
		return nil, apperror.State("у задания нет принятого отклика")
	}

	payment, err := s.payments.GetByJobID(ctx, job.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.State("отзыв возможен только после выпуска средств")
		}
		return nil, err
	}
	if payment == nil || payment.Status != models.PaymentStatusReleased {
		return nil, apperror.State("отзыв возможен только после выпуска средств")
	}

	bid, err := s.bids.GetByID(ctx, *job.AcceptedBidID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		JobID:        job.ID,
		ClientID:     actor.ID,
		FreelancerID: bid.FreelancerID,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			return nil, apperror.Conflict("отзыв по этому заданию уже оставлен")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"review_id":     review.ID,
		"job_id":        job.ID,
		"freelancer_id": review.FreelancerID,
		"rating":        review.Rating,
	}).Info("отзыв оставлен, рейтинг пересчитан")

	return review, nil
}

// GetJobReview возвращает отзыв по заданию, nil если его ещё нет.
func (s *ReviewService) GetJobReview(ctx context.Context, jobID uuid.UUID) (*models.Review, error) {
	return s.reviews.GetByJobID(ctx, jobID)
}

// ListFreelancerReviews возвращает отзывы о фрилансере, новые первыми.
func (s *ReviewService) ListFreelancerReviews(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListByFreelancer(ctx, freelancerID, limit, offset)
}
