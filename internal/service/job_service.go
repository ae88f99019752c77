package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-market/internal/logger"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// JobRepository описывает зависимости JobService от слоя хранилища.
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	List(ctx context.Context, params repository.ListFilterParams) (*repository.ListResult, error)
	Cancel(ctx context.Context, jobID uuid.UUID) error
	AcceptBid(ctx context.Context, jobID, bidID uuid.UUID) error
	CountOpenJobs(ctx context.Context) (int, error)
	ListRecentOpen(ctx context.Context, limit int) ([]models.Job, error)
}

// BidRepoForJobs доступ к откликам, нужный движку заданий.
type BidRepoForJobs interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
}

// UserRepoForJobs счётчики пользователей для публичной статистики.
type UserRepoForJobs interface {
	CountUsers(ctx context.Context) (total int, freelancers int, err error)
}

// JobService владеет машиной состояний задания:
// open -> in_progress -> completed, open -> cancelled.
type JobService struct {
	jobs  JobRepository
	bids  BidRepoForJobs
	users UserRepoForJobs
}

// NewJobService создаёт движок заданий.
func NewJobService(jobs JobRepository, bids BidRepoForJobs, users UserRepoForJobs) *JobService {
	return &JobService{jobs: jobs, bids: bids, users: users}
}

// PostJobInput данные нового задания.
type PostJobInput struct {
	Title       string
	Description string
	Budget      float64
	Category    string
	Deadline    time.Time
}

// PostJob публикует новое задание в статусе open.
func (s *JobService) PostJob(ctx context.Context, actor Actor, in PostJobInput) (*models.Job, error) {
	if !actor.IsClient() {
		return nil, apperror.Forbidden("только заказчики могут размещать задания")
	}

	if err := validation.ValidateJobTitle(in.Title); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateJobDescription(in.Description); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateBudget(in.Budget); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateDeadline(in.Deadline, time.Now()); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	job := &models.Job{
		ClientID:    actor.ID,
		Title:       in.Title,
		Description: in.Description,
		Budget:      in.Budget,
		Category:    in.Category,
		Deadline:    in.Deadline,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"job_id":    job.ID,
		"client_id": actor.ID,
		"category":  job.Category,
	}).Info("задание опубликовано")

	return job, nil
}

// GetJob возвращает задание по идентификатору.
func (s *JobService) GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}
	return job, nil
}

// ListJobs возвращает страницу открытых заданий с фильтрами каталога.
func (s *JobService) ListJobs(ctx context.Context, category, search string, limit, offset int) (*repository.ListResult, error) {
	if category != "" {
		if err := validation.ValidateCategory(category); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.jobs.List(ctx, repository.ListFilterParams{
		Status:   models.JobStatusOpen,
		Category: category,
		Search:   search,
		Limit:    limit,
		Offset:   offset,
	})
}

// ListMyJobs возвращает задания заказчика с фильтром по статусу.
func (s *JobService) ListMyJobs(ctx context.Context, actor Actor, status string, limit, offset int) (*repository.ListResult, error) {
	if status != "" {
		if _, ok := models.ValidJobStatuses[status]; !ok {
			return nil, apperror.Validation("неизвестный статус задания")
		}
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	clientID := actor.ID
	return s.jobs.List(ctx, repository.ListFilterParams{
		Status:   status,
		ClientID: &clientID,
		Limit:    limit,
		Offset:   offset,
	})
}

// CancelJob отменяет открытое задание; допустимо только для владельца.
func (s *JobService) CancelJob(ctx context.Context, actor Actor, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.ClientID != actor.ID {
		return nil, apperror.Forbidden("задание принадлежит другому заказчику")
	}

	if err := s.jobs.Cancel(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotOpen) {
			return nil, apperror.State("отменить можно только открытое задание")
		}
		return nil, err
	}

	logger.Log.WithField("job_id", jobID).Info("задание отменено")

	return s.GetJob(ctx, jobID)
}

// AcceptBidResult итог принятия отклика.
type AcceptBidResult struct {
	Job *models.Job `json:"job"`
	Bid *models.Bid `json:"bid"`
}

// AcceptBid принимает отклик: задание становится in_progress, выбранный отклик
// accepted, остальные активные отклики отклоняются — всё одним атомарным
// переходом. Конкурирующий второй вызов получит StateError.
func (s *JobService) AcceptBid(ctx context.Context, actor Actor, bidID uuid.UUID) (*AcceptBidResult, error) {
	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, apperror.NotFound("отклик не найден")
		}
		return nil, err
	}

	job, err := s.GetJob(ctx, bid.JobID)
	if err != nil {
		return nil, err
	}

	if job.ClientID != actor.ID {
		return nil, apperror.Forbidden("принимать отклики может только владелец задания")
	}

	if err := s.jobs.AcceptBid(ctx, job.ID, bid.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrJobNotOpen):
			return nil, apperror.State("задание уже не открыто")
		case errors.Is(err, repository.ErrBidNotPending):
			return nil, apperror.State("отклик уже рассмотрен")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"job_id": job.ID,
		"bid_id": bid.ID,
	}).Info("отклик принят, задание в работе")

	job, err = s.GetJob(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	bid, err = s.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}

	return &AcceptBidResult{Job: job, Bid: bid}, nil
}

// LandingStats собирает публичную статистику главной страницы.
func (s *JobService) LandingStats(ctx context.Context) (*models.LandingStats, error) {
	openJobs, err := s.jobs.CountOpenJobs(ctx)
	if err != nil {
		return nil, err
	}

	total, freelancers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.jobs.ListRecentOpen(ctx, 6)
	if err != nil {
		return nil, err
	}

	return &models.LandingStats{
		OpenJobs:    openJobs,
		Users:       total,
		Freelancers: freelancers,
		RecentJobs:  recent,
	}, nil
}
