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
	ErrBidNotFound        = errors.New("bid not found")
	ErrBidNotPending      = errors.New("bid is not pending")
	ErrDuplicateActiveBid = errors.New("freelancer already has an active bid on this job")
)

// BidRepository отвечает за работу с откликами.
type BidRepository struct {
	db *sqlx.DB
}

// NewBidRepository создаёт новый экземпляр.
func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create сохраняет отклик в статусе pending.
// Частичный уникальный индекс не даст фрилансеру второй активный отклик
// на то же задание; после отклонения повторный отклик разрешён.
func (r *BidRepository) Create(ctx context.Context, bid *models.Bid) error {
	query := `
		INSERT INTO bids (job_id, freelancer_id, amount, proposal, delivery_days, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, status, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		bid.JobID, bid.FreelancerID, bid.Amount, bid.Proposal, bid.DeliveryDays,
	).Scan(&bid.ID, &bid.Status, &bid.CreatedAt); err != nil {
		if common.IsUniqueViolation(err) {
			return ErrDuplicateActiveBid
		}
		return fmt.Errorf("bid repository: create %w", err)
	}

	return nil
}

// GetByID возвращает отклик по идентификатору.
func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	return common.GetByID[models.Bid](ctx, r.db, "bids", id, ErrBidNotFound)
}

// GetActiveByJobAndFreelancer возвращает активный отклик фрилансера на задание, если есть.
func (r *BidRepository) GetActiveByJobAndFreelancer(ctx context.Context, jobID, freelancerID uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	query := `
		SELECT * FROM bids
		WHERE job_id = $1 AND freelancer_id = $2 AND status IN ('pending', 'accepted')
	`
	if err := r.db.GetContext(ctx, &bid, query, jobID, freelancerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("bid repository: get active %w", err)
	}
	return &bid, nil
}

// ListByJob возвращает отклики на задание, новые первыми.
func (r *BidRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Bid, error) {
	bids := []models.Bid{}
	query := `SELECT * FROM bids WHERE job_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &bids, query, jobID); err != nil {
		return nil, fmt.Errorf("bid repository: list by job %w", err)
	}
	return bids, nil
}

// ListByFreelancer возвращает отклики фрилансера с фильтром по статусу.
func (r *BidRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, status string, limit, offset int) ([]models.Bid, error) {
	bids := []models.Bid{}

	if status != "" {
		query := `
			SELECT * FROM bids WHERE freelancer_id = $1 AND status = $2
			ORDER BY created_at DESC LIMIT $3 OFFSET $4
		`
		if err := r.db.SelectContext(ctx, &bids, query, freelancerID, status, limit, offset); err != nil {
			return nil, fmt.Errorf("bid repository: list by freelancer %w", err)
		}
		return bids, nil
	}

	query := `
		SELECT * FROM bids WHERE freelancer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &bids, query, freelancerID, limit, offset); err != nil {
		return nil, fmt.Errorf("bid repository: list by freelancer %w", err)
	}
	return bids, nil
}

// Reject переводит pending отклик в rejected (прямое отклонение клиентом).
func (r *BidRepository) Reject(ctx context.Context, bidID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bids SET status = 'rejected' WHERE id = $1 AND status = 'pending'
	`, bidID)
	if err != nil {
		return fmt.Errorf("bid repository: reject %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bid repository: reject rows affected %w", err)
	}
	if affected == 0 {
		return ErrBidNotPending
	}

	return nil
}

// CountByStatusForFreelancer возвращает распределение откликов фрилансера по статусам.
func (r *BidRepository) CountByStatusForFreelancer(ctx context.Context, freelancerID uuid.UUID) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT status, COUNT(*) AS count FROM bids WHERE freelancer_id = $1 GROUP BY status
	`, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("bid repository: count by status %w", err)
	}
	defer rows.Close()

	stats := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("bid repository: scan status count %w", err)
		}
		stats[status] = count
	}

	return stats, rows.Err()
}
