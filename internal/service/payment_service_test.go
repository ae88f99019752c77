package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
)

func TestPaymentService_PayNow_Success(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo)
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	paymentID := uuid.New()
	jobID := uuid.New()

	pending := &models.Payment{ID: paymentID, JobID: jobID, ClientID: client.ID, Status: models.PaymentStatusPending, Amount: 5000}
	released := &models.Payment{ID: paymentID, JobID: jobID, ClientID: client.ID, Status: models.PaymentStatusReleased, Amount: 5000}

	paymentRepo.On("GetByID", ctx, paymentID).Return(pending, nil)
	paymentRepo.On("PayAndRelease", ctx, paymentID).Return(released, nil).Once()

	payment, err := svc.PayNow(ctx, client, paymentID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusReleased, payment.Status)

	// оплата и выпуск проходят одним обращением к хранилищу
	paymentRepo.AssertExpectations(t)
	paymentRepo.AssertNumberOfCalls(t, "PayAndRelease", 1)
}

func TestPaymentService_PayNow_NotOwner(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo)
	ctx := context.Background()

	paymentID := uuid.New()
	paymentRepo.On("GetByID", ctx, paymentID).Return(&models.Payment{
		ID: paymentID, ClientID: uuid.New(), Status: models.PaymentStatusPending,
	}, nil)

	_, err := svc.PayNow(ctx, Actor{ID: uuid.New(), Role: models.RoleClient}, paymentID)
	assert.True(t, apperror.IsForbidden(err))
}

// Повторная оплата уже проведённого платежа отклоняется ошибкой состояния.
func TestPaymentService_PayNow_AlreadyPaid(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo)
	ctx := context.Background()

	client := Actor{ID: uuid.New(), Role: models.RoleClient}
	paymentID := uuid.New()

	paymentRepo.On("GetByID", ctx, paymentID).Return(&models.Payment{
		ID: paymentID, ClientID: client.ID, Status: models.PaymentStatusReleased,
	}, nil)
	paymentRepo.On("PayAndRelease", ctx, paymentID).Return(nil, repository.ErrPaymentNotPending)

	_, err := svc.PayNow(ctx, client, paymentID)
	assert.True(t, apperror.IsState(err))
}

func TestPaymentService_PayNow_NotFound(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo)
	ctx := context.Background()

	paymentID := uuid.New()
	paymentRepo.On("GetByID", ctx, paymentID).Return(nil, repository.ErrPaymentNotFound)

	_, err := svc.PayNow(ctx, Actor{ID: uuid.New(), Role: models.RoleClient}, paymentID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestPaymentService_GetPayment_ParticipantsOnly(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo)
	ctx := context.Background()

	paymentID := uuid.New()
	paymentRepo.On("GetByID", ctx, paymentID).Return(&models.Payment{
		ID: paymentID, ClientID: uuid.New(), FreelancerID: uuid.New(),
	}, nil)

	_, err := svc.GetPayment(ctx, Actor{ID: uuid.New(), Role: models.RoleFreelancer}, paymentID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestPaymentService_ListTransactions_ByRole(t *testing.T) {
	paymentRepo := new(mockPaymentRepo)
	svc := NewPaymentService(paymentRepo)
	ctx := context.Background()

	freelancer := Actor{ID: uuid.New(), Role: models.RoleFreelancer}
	client := Actor{ID: uuid.New(), Role: models.RoleClient}

	paymentRepo.On("ListByFreelancer", ctx, freelancer.ID, 20, 0).Return([]models.Payment{{ID: uuid.New()}}, nil)
	paymentRepo.On("ListByClient", ctx, client.ID, 20, 0).Return([]models.Payment{}, nil)

	incoming, err := svc.ListTransactions(ctx, freelancer, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, incoming, 1)

	outgoing, err := svc.ListTransactions(ctx, client, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, outgoing, 0)
}
