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
)

// PaymentRepository описывает зависимости PaymentService от слоя хранилища.
type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error)
	PayAndRelease(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]models.Payment, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Payment, error)
}

// PaymentService владеет машиной состояний платежа:
// pending -> paid -> released. Выпуск released завершает задание.
type PaymentService struct {
	payments PaymentRepository
}

// NewPaymentService создаёт движок платежей.
func NewPaymentService(payments PaymentRepository) *PaymentService {
	return &PaymentService{payments: payments}
}

// GetPayment возвращает платёж; доступен только его участникам.
func (s *PaymentService) GetPayment(ctx context.Context, actor Actor, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.NotFound("платёж не найден")
		}
		return nil, err
	}

	if payment.ClientID != actor.ID && payment.FreelancerID != actor.ID {
		return nil, apperror.Forbidden("платёж видят только его участники")
	}

	return payment, nil
}

// PayNow проводит оплату и сразу выпускает средства исполнителю:
// pending -> paid -> released одним действием заказчика, одной транзакцией
// хранилища. Выпуск одновременно переводит задание в completed.
func (s *PaymentService) PayNow(ctx context.Context, actor Actor, paymentID uuid.UUID) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, apperror.NotFound("платёж не найден")
		}
		return nil, err
	}

	if payment.ClientID != actor.ID {
		return nil, apperror.Forbidden("оплачивать может только заказчик платежа")
	}

	payment, err = s.payments.PayAndRelease(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotPending) {
			return nil, apperror.State("платёж уже оплачен")
		}
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"job_id":     payment.JobID,
		"amount":     payment.Amount,
	}).Info("платёж оплачен, средства выпущены, задание завершено")

	return payment, nil
}

// ListTransactions возвращает историю платежей актора: для заказчика
// исходящие, для фрилансера входящие.
func (s *PaymentService) ListTransactions(ctx context.Context, actor Actor, limit, offset int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	if actor.IsFreelancer() {
		return s.payments.ListByFreelancer(ctx, actor.ID, limit, offset)
	}
	return s.payments.ListByClient(ctx, actor.ID, limit, offset)
}
