package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/freelance-market/internal/logger"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// WorkRepository описывает зависимости WorkService от слоя хранилища.
type WorkRepository interface {
	CreateSubmission(ctx context.Context, sub *models.WorkSubmission) error
	GetSubmissionByID(ctx context.Context, id uuid.UUID) (*models.WorkSubmission, error)
	GetLatestByJob(ctx context.Context, jobID uuid.UUID) (*models.WorkSubmission, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.WorkSubmission, error)
	ApproveAndCreatePayment(ctx context.Context, submissionID uuid.UUID, payment *models.Payment) error
	RejectSubmission(ctx context.Context, submissionID uuid.UUID) error
}

// JobRepoForWork доступ к заданиям, нужный движку сдачи работы.
type JobRepoForWork interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// BidRepoForWork доступ к откликам для определения исполнителя и суммы.
type BidRepoForWork interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
}

// PaymentRepoForWork доступ к платежам для выдачи результата approve.
type PaymentRepoForWork interface {
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error)
}

// WorkService владеет машиной состояний сдачи работы:
// submitted -> approved, submitted -> rejected.
// Повторная сдача после отклонения создаёт новую запись,
// история сдач сохраняется целиком.
type WorkService struct {
	work     WorkRepository
	jobs     JobRepoForWork
	bids     BidRepoForWork
	payments PaymentRepoForWork
}

// NewWorkService создаёт движок сдачи работы.
func NewWorkService(work WorkRepository, jobs JobRepoForWork, bids BidRepoForWork, payments PaymentRepoForWork) *WorkService {
	return &WorkService{work: work, jobs: jobs, bids: bids, payments: payments}
}

// SubmitWorkInput данные сдачи работы.
type SubmitWorkInput struct {
	JobID       uuid.UUID
	FilePath    string
	Description *string
}

// SubmitWork сдаёт работу по заданию в работе. Сдавать может только
// фрилансер с принятым откликом, и только пока нет сдачи на рассмотрении.
func (s *WorkService) SubmitWork(ctx context.Context, actor Actor, in SubmitWorkInput) (*models.WorkSubmission, error) {
	if strings.TrimSpace(in.FilePath) == "" {
		return nil, apperror.Validation("файл работы обязателен")
	}
	if in.Description != nil {
		if err := validation.ValidateLength("описание работы", *in.Description, 0, validation.MaxDescriptionLength); err != nil {
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

	if job.Status != models.JobStatusInProgress {
		return nil, apperror.State("сдавать работу можно только по заданию в работе")
	}
	if job.AcceptedBidID == nil {
		return nil, apperror.State("у задания нет принятого отклика")
	}

	bid, err := s.bids.GetByID(ctx, *job.AcceptedBidID)
	if err != nil {
		return nil, err
	}
	if bid.FreelancerID != actor.ID {
		return nil, apperror.Forbidden("сдавать работу может только исполнитель задания")
	}

	sub := &models.WorkSubmission{
		JobID:       job.ID,
		FilePath:    in.FilePath,
		Description: in.Description,
	}

	if err := s.work.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrSubmissionPending) {
			return nil, apperror.Conflict("предыдущая сдача ещё на рассмотрении")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"job_id":        job.ID,
	}).Info("работа сдана на проверку")

	return sub, nil
}

// ApproveWorkResult итог принятия работы: одобренная сдача и ожидающий платёж.
type ApproveWorkResult struct {
	Submission *models.WorkSubmission `json:"submission"`
	Payment    *models.Payment        `json:"payment"`
}

// ApproveWork одобряет сданную работу и в той же транзакции создаёт
// платёж в статусе pending на сумму принятого отклика.
func (s *WorkService) ApproveWork(ctx context.Context, actor Actor, submissionID uuid.UUID) (*ApproveWorkResult, error) {
	sub, err := s.getSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, sub.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}

	if job.ClientID != actor.ID {
		return nil, apperror.Forbidden("принимать работу может только владелец задания")
	}
	if job.AcceptedBidID == nil {
		return nil, apperror.State("у задания нет принятого отклика")
	}

	bid, err := s.bids.GetByID(ctx, *job.AcceptedBidID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		JobID:        job.ID,
		ClientID:     job.ClientID,
		FreelancerID: bid.FreelancerID,
		Amount:       bid.Amount,
	}

	if err := s.work.ApproveAndCreatePayment(ctx, submissionID, payment); err != nil {
		switch {
		case errors.Is(err, repository.ErrSubmissionNotSubmitted):
			return nil, apperror.State("сдача уже рассмотрена")
		case errors.Is(err, repository.ErrPaymentExists):
			return nil, apperror.Conflict("платёж по этому заданию уже создан")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"submission_id": submissionID,
		"job_id":        job.ID,
		"payment_id":    payment.ID,
		"amount":        payment.Amount,
	}).Info("работа принята, платёж создан")

	sub, err = s.getSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	return &ApproveWorkResult{Submission: sub, Payment: payment}, nil
}

// RejectWork отклоняет сданную работу; задание остаётся в работе,
// исполнитель может сдать работу повторно.
func (s *WorkService) RejectWork(ctx context.Context, actor Actor, submissionID uuid.UUID) (*models.WorkSubmission, error) {
	sub, err := s.getSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.GetByID(ctx, sub.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}

	if job.ClientID != actor.ID {
		return nil, apperror.Forbidden("отклонять работу может только владелец задания")
	}

	if err := s.work.RejectSubmission(ctx, submissionID); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotSubmitted) {
			return nil, apperror.State("сдача уже рассмотрена")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"submission_id": submissionID,
		"job_id":        job.ID,
	}).Info("работа отклонена")

	return s.getSubmission(ctx, submissionID)
}

// JobWork состояние сдачи работы по заданию для страницы задания.
type JobWork struct {
	Latest  *models.WorkSubmission  `json:"latest"`
	History []models.WorkSubmission `json:"history"`
	Payment *models.Payment         `json:"payment,omitempty"`
}

// GetJobWork возвращает историю сдач и платёж по заданию.
// Доступно владельцу задания и исполнителю.
func (s *WorkService) GetJobWork(ctx context.Context, actor Actor, jobID uuid.UUID) (*JobWork, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, apperror.NotFound("задание не найдено")
		}
		return nil, err
	}

	allowed := job.ClientID == actor.ID
	if !allowed && job.AcceptedBidID != nil {
		bid, err := s.bids.GetByID(ctx, *job.AcceptedBidID)
		if err != nil {
			return nil, err
		}
		allowed = bid.FreelancerID == actor.ID
	}
	if !allowed {
		return nil, apperror.Forbidden("сдачи работы видят только участники задания")
	}

	history, err := s.work.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	latest, err := s.work.GetLatestByJob(ctx, jobID)
	if err != nil && !errors.Is(err, repository.ErrSubmissionNotFound) {
		return nil, err
	}

	// платежа нет, пока работа не принята — это штатное состояние страницы
	payment, err := s.payments.GetByJobID(ctx, jobID)
	if err != nil {
		if !errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, err
		}
		payment = nil
	}

	return &JobWork{Latest: latest, History: history, Payment: payment}, nil
}

func (s *WorkService) getSubmission(ctx context.Context, id uuid.UUID) (*models.WorkSubmission, error) {
	sub, err := s.work.GetSubmissionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return nil, apperror.NotFound("сдача работы не найдена")
		}
		return nil, err
	}
	return sub, nil
}
