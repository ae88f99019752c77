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
	ErrSubmissionNotFound     = errors.New("work submission not found")
	ErrSubmissionNotSubmitted = errors.New("work submission is not in submitted state")
	ErrSubmissionPending      = errors.New("job already has a submission awaiting review")
	ErrPaymentExists          = errors.New("payment already exists for this job")
)

// WorkRepository отвечает за сданные работы.
type WorkRepository struct {
	db *sqlx.DB
}

// NewWorkRepository создаёт новый экземпляр.
func NewWorkRepository(db *sqlx.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

// CreateSubmission сохраняет новую сдачу работы в статусе submitted.
// История отклонённых сдач сохраняется: каждая пересдача — отдельная строка.
func (r *WorkRepository) CreateSubmission(ctx context.Context, sub *models.WorkSubmission) error {
	query := `
		INSERT INTO work_submissions (job_id, file_path, description, status)
		VALUES ($1, $2, $3, 'submitted')
		RETURNING id, status, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		sub.JobID, sub.FilePath, sub.Description,
	).Scan(&sub.ID, &sub.Status, &sub.CreatedAt); err != nil {
		if common.IsUniqueViolation(err) {
			return ErrSubmissionPending
		}
		return fmt.Errorf("work repository: create submission %w", err)
	}

	return nil
}

// GetSubmissionByID возвращает сдачу по идентификатору.
func (r *WorkRepository) GetSubmissionByID(ctx context.Context, id uuid.UUID) (*models.WorkSubmission, error) {
	return common.GetByID[models.WorkSubmission](ctx, r.db, "work_submissions", id, ErrSubmissionNotFound)
}

// GetLatestByJob возвращает последнюю сдачу по заданию.
func (r *WorkRepository) GetLatestByJob(ctx context.Context, jobID uuid.UUID) (*models.WorkSubmission, error) {
	var sub models.WorkSubmission
	query := `SELECT * FROM work_submissions WHERE job_id = $1 ORDER BY created_at DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &sub, query, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("work repository: get latest %w", err)
	}
	return &sub, nil
}

// ListByJob возвращает все сдачи по заданию, новые первыми.
func (r *WorkRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.WorkSubmission, error) {
	subs := []models.WorkSubmission{}
	query := `SELECT * FROM work_submissions WHERE job_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &subs, query, jobID); err != nil {
		return nil, fmt.Errorf("work repository: list by job %w", err)
	}
	return subs, nil
}

// ApproveAndCreatePayment атомарно одобряет сдачу и создаёт платёж pending
// на сумму принятого отклика. Условный UPDATE защищает от повторного
// одобрения: уже проверенная сдача даст ноль затронутых строк.
func (r *WorkRepository) ApproveAndCreatePayment(ctx context.Context, submissionID uuid.UUID, payment *models.Payment) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE work_submissions SET status = 'approved'
			WHERE id = $1 AND status = 'submitted'
		`, submissionID)
		if err != nil {
			return fmt.Errorf("work repository: approve %w", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("work repository: approve rows affected %w", err)
		} else if affected == 0 {
			return ErrSubmissionNotSubmitted
		}

		query := `
			INSERT INTO payments (job_id, client_id, freelancer_id, amount, status)
			VALUES ($1, $2, $3, $4, 'pending')
			RETURNING id, status, created_at
		`
		if err := tx.QueryRowxContext(
			ctx, query,
			payment.JobID, payment.ClientID, payment.FreelancerID, payment.Amount,
		).Scan(&payment.ID, &payment.Status, &payment.CreatedAt); err != nil {
			if common.IsUniqueViolation(err) {
				return ErrPaymentExists
			}
			return fmt.Errorf("work repository: create payment %w", err)
		}

		return nil
	})
}

// RejectSubmission отклоняет сдачу; задание остаётся in_progress и ждёт пересдачи.
func (r *WorkRepository) RejectSubmission(ctx context.Context, submissionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE work_submissions SET status = 'rejected'
		WHERE id = $1 AND status = 'submitted'
	`, submissionID)
	if err != nil {
		return fmt.Errorf("work repository: reject %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("work repository: reject rows affected %w", err)
	}
	if affected == 0 {
		return ErrSubmissionNotSubmitted
	}

	return nil
}
