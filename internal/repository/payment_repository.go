package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/repository/common"
)

// Ошибки уровня репозитория.
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentNotPending = errors.New("payment is not pending")
)

// PaymentRepository отвечает за платёжные записи.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository создаёт новый экземпляр.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// GetByID возвращает платёж по идентификатору.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return common.GetByID[models.Payment](ctx, r.db, "payments", id, ErrPaymentNotFound)
}

// GetByJobID возвращает платёж по заданию.
func (r *PaymentRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, `SELECT * FROM payments WHERE job_id = $1`, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("payment repository: get by job %w", err)
	}
	return &payment, nil
}

// PayAndRelease проводит оплату и выпуск средств одной транзакцией:
// pending -> paid -> released, задание -> completed. Оба перехода фиксируют
// свои отметки времени; откат любого шага откатывает всё действие целиком,
// поэтому платёж не может застрять в промежуточном paid.
// Платёж не в статусе pending даёт ErrPaymentNotPending без мутаций.
func (r *PaymentRepository) PayAndRelease(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE payments SET status = 'paid', paid_at = NOW()
			WHERE id = $1 AND status = 'pending'
		`, id)
		if err != nil {
			return fmt.Errorf("payment repository: mark paid %w", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("payment repository: mark paid rows affected %w", err)
		} else if affected == 0 {
			return ErrPaymentNotPending
		}

		query := `
			UPDATE payments SET status = 'released', released_at = NOW()
			WHERE id = $1 AND status = 'paid'
			RETURNING *
		`
		if err := tx.GetContext(ctx, &payment, query, id); err != nil {
			return fmt.Errorf("payment repository: release %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE jobs SET status = 'completed', updated_at = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`, payment.JobID); err != nil {
			return fmt.Errorf("payment repository: complete job %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// ListByClient возвращает платежи клиента, новые первыми.
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	payments := []models.Payment{}
	query := `SELECT * FROM payments WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &payments, query, clientID, limit, offset); err != nil {
		return nil, fmt.Errorf("payment repository: list by client %w", err)
	}
	return payments, nil
}

// ListByFreelancer возвращает платежи фрилансеру, новые первыми.
func (r *PaymentRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	payments := []models.Payment{}
	query := `SELECT * FROM payments WHERE freelancer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &payments, query, freelancerID, limit, offset); err != nil {
		return nil, fmt.Errorf("payment repository: list by freelancer %w", err)
	}
	return payments, nil
}

// SumReleasedByClient возвращает сумму освобождённых платежей клиента.
func (r *PaymentRepository) SumReleasedByClient(ctx context.Context, clientID uuid.UUID) (float64, error) {
	var sum float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE client_id = $1 AND status = 'released'`
	if err := r.db.GetContext(ctx, &sum, query, clientID); err != nil {
		return 0, fmt.Errorf("payment repository: sum released by client %w", err)
	}
	return sum, nil
}

// SumReleasedByFreelancer возвращает заработок фрилансера по освобождённым платежам.
func (r *PaymentRepository) SumReleasedByFreelancer(ctx context.Context, freelancerID uuid.UUID) (float64, error) {
	var sum float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE freelancer_id = $1 AND status = 'released'`
	if err := r.db.GetContext(ctx, &sum, query, freelancerID); err != nil {
		return 0, fmt.Errorf("payment repository: sum released by freelancer %w", err)
	}
	return sum, nil
}
