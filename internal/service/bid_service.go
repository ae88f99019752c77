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

// BidRepository описывает зависимости BidService от слоя хранилища.
type BidRepository interface {
	Create(ctx context.Context, bid *models.Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	GetActiveByJobAndFreelancer(ctx context.Context, jobID, freelancerID uuid.UUID) (*models.Bid, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, status string, limit, offset int) ([]models.Bid, error)
	Reject(ctx context.Context, bidID uuid.UUID) error
}

// JobRepoForBids доступ к заданиям, нужный движку откликов.
type JobRepoForBids interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// BidService владеет машиной состояний отклика:
// pending -> accepted, pending -> rejected.
type BidService struct {
	bids BidRepository
	jobs JobRepoForBids
}

// NewBidService создаёт движок откликов.
func NewBidService(bids BidRepository, jobs JobRepoForBids) *BidService {
	return &BidService{bids: bids, jobs: jobs}
}

// PlaceBidInput данные нового отклика.
type PlaceBidInput struct {
	JobID        uuid.UUID
	Amount       float64
	Proposal     string
	DeliveryDays int
}

// PlaceBid размещает отклик фрилансера на открытое задание.
// Активный отклик на задание может быть только один.
func (s *BidService) PlaceBid(ctx context.Context, actor Actor, in PlaceBidInput) (*models.Bid, error) {
	if !actor.IsFreelancer() {
		return nil, apperror.Forbidden("только фрилансеры могут откликаться на задания")
	}

	if err := validation.ValidateBidAmount(in.Amount); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateDeliveryDays(in.DeliveryDays); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateProposal(in.Proposal); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	job, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}

	if job.ClientID == actor.ID {
		return nil, apperror.Forbidden("нельзя откликнуться на собственное задание")
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperror.State("откликаться можно только на открытое задание")
	}

	existing, err := s.bids.GetActiveByJobAndFreelancer(ctx, job.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("у вас уже есть активный отклик на это задание")
	}

	bid := &models.Bid{
		JobID:        job.ID,
		FreelancerID: actor.ID,
		Amount:       in.Amount,
		Proposal:     in.Proposal,
		DeliveryDays: in.DeliveryDays,
	}

	if err := s.bids.Create(ctx, bid); err != nil {
		// гонка двух параллельных откликов упирается в частичный уникальный индекс
		if errors.Is(err, repository.ErrDuplicateActiveBid) {
			return nil, apperror.Conflict("у вас уже есть активный отклик на это задание")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"bid_id":        bid.ID,
		"job_id":        job.ID,
		"freelancer_id": actor.ID,
	}).Info("отклик размещён")

	return bid, nil
}

// RejectBid отклоняет отклик вручную, пока задание открыто.
func (s *BidService) RejectBid(ctx context.Context, actor Actor, bidID uuid.UUID) (*models.Bid, error) {
	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, apperror.NotFound("отклик не найден")
		}
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, bid.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}

	if job.ClientID != actor.ID {
		return nil, apperror.Forbidden("отклонять отклики может только владелец задания")
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperror.State("отклонять отклики можно только пока задание открыто")
	}

	if err := s.bids.Reject(ctx, bidID); err != nil {
		if errors.Is(err, repository.ErrBidNotPending) {
			return nil, apperror.State("отклик уже рассмотрен")
		}
		return nil, err
	}

	logger.Log.WithField("bid_id", bidID).Info("отклик отклонён")

	return s.bids.GetByID(ctx, bidID)
}

// ListJobBids возвращает отклики задания; доступно только владельцу.
func (s *BidService) ListJobBids(ctx context.Context, actor Actor, jobID uuid.UUID) ([]models.Bid, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}

	if job.ClientID != actor.ID {
		return nil, apperror.Forbidden("отклики видит только владелец задания")
	}

	return s.bids.ListByJob(ctx, jobID)
}

// ListMyBids возвращает отклики фрилансера с фильтром по статусу.
func (s *BidService) ListMyBids(ctx context.Context, actor Actor, status string, limit, offset int) ([]models.Bid, error) {
	if status != "" {
		if _, ok := models.ValidBidStatuses[status]; !ok {
			return nil, apperror.Validation("неизвестный статус отклика")
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bids.ListByFreelancer(ctx, actor.ID, status, limit, offset)
}
