package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/repository/common"
)

// Ошибки уровня репозитория.
var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobNotOpen  = errors.New("job is not open")
)

// JobRepository отвечает за работу с заданиями.
type JobRepository struct {
	db *sqlx.DB
}

// NewJobRepository создаёт новый экземпляр.
func NewJobRepository(db *sqlx.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create сохраняет новое задание в статусе open.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (client_id, title, description, budget, category, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'open')
		RETURNING id, status, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		job.ClientID, job.Title, job.Description, job.Budget, job.Category, job.Deadline,
	).Scan(&job.ID, &job.Status, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return fmt.Errorf("job repository: create %w", err)
	}

	return nil
}

// GetByID возвращает задание по идентификатору.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return common.GetByID[models.Job](ctx, r.db, "jobs", id, ErrJobNotFound)
}

// ListFilterParams параметры выборки заданий.
type ListFilterParams struct {
	Status   string
	Category string
	Search   string
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

// ListResult страница заданий с общим количеством.
type ListResult struct {
	Jobs  []models.Job `json:"jobs"`
	Total int          `json:"total"`
}

// List возвращает страницу заданий по фильтрам, новые первыми.
// Количество откликов подтягивается одним запросом.
func (r *JobRepository) List(ctx context.Context, params ListFilterParams) (*ListResult, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("j.category = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(j.title ILIKE $%d OR j.description ILIKE $%d)", len(args), len(args)))
	}
	if params.ClientID != nil {
		args = append(args, *params.ClientID)
		conditions = append(conditions, fmt.Sprintf("j.client_id = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM jobs j WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("job repository: count %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT j.*, COUNT(b.id) AS bids_count
		FROM jobs j
		LEFT JOIN bids b ON b.job_id = j.id
		WHERE %s
		GROUP BY j.id
		ORDER BY j.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	jobs := []models.Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("job repository: list %w", err)
	}

	return &ListResult{Jobs: jobs, Total: total}, nil
}

// Cancel переводит открытое задание в cancelled.
// Условный UPDATE: если задание уже не open, строк не затронуто.
func (r *JobRepository) Cancel(ctx context.Context, jobID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE jobs SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`, jobID)
	if err != nil {
		return fmt.Errorf("job repository: cancel %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("job repository: cancel rows affected %w", err)
	}
	if affected == 0 {
		return ErrJobNotOpen
	}

	return nil
}

// AcceptBid атомарно принимает отклик: задание open -> in_progress,
// отклик pending -> accepted, остальные pending отклики -> rejected.
// Первый условный UPDATE сериализует конкурирующие вызовы: второй увидит
// ноль затронутых строк и получит ErrJobNotOpen.
func (r *JobRepository) AcceptBid(ctx context.Context, jobID, bidID uuid.UUID) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE jobs SET status = 'in_progress', accepted_bid_id = $2, updated_at = NOW()
			WHERE id = $1 AND status = 'open'
		`, jobID, bidID)
		if err != nil {
			return fmt.Errorf("job repository: accept bid update job %w", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("job repository: accept bid rows affected %w", err)
		} else if affected == 0 {
			return ErrJobNotOpen
		}

		res, err = tx.ExecContext(ctx, `
			UPDATE bids SET status = 'accepted'
			WHERE id = $1 AND job_id = $2 AND status = 'pending'
		`, bidID, jobID)
		if err != nil {
			return fmt.Errorf("job repository: accept bid update bid %w", err)
		}
		if affected, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("job repository: accept bid rows affected %w", err)
		} else if affected == 0 {
			return ErrBidNotPending
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE bids SET status = 'rejected'
			WHERE job_id = $1 AND id <> $2 AND status = 'pending'
		`, jobID, bidID); err != nil {
			return fmt.Errorf("job repository: accept bid reject others %w", err)
		}

		return nil
	})
}

// CountByStatusForClient возвращает распределение заданий клиента по статусам.
func (r *JobRepository) CountByStatusForClient(ctx context.Context, clientID uuid.UUID) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT status, COUNT(*) AS count FROM jobs WHERE client_id = $1 GROUP BY status
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("job repository: count by status %w", err)
	}
	defer rows.Close()

	stats := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("job repository: scan status count %w", err)
		}
		stats[status] = count
	}

	return stats, rows.Err()
}

// ListActiveContracts возвращает действующие договоры клиента:
// задания in_progress с принятым откликом.
func (r *JobRepository) ListActiveContracts(ctx context.Context, clientID uuid.UUID) ([]models.ActiveContract, error) {
	contracts := []models.ActiveContract{}
	query := `
		SELECT j.id AS job_id, j.title AS job_title, b.freelancer_id, j.deadline, b.amount,
		       (SELECT w.status FROM work_submissions w WHERE w.job_id = j.id ORDER BY w.created_at DESC LIMIT 1) AS work_status
		FROM jobs j
		JOIN bids b ON b.id = j.accepted_bid_id
		WHERE j.client_id = $1 AND j.status = 'in_progress'
		ORDER BY j.deadline
	`
	if err := r.db.SelectContext(ctx, &contracts, query, clientID); err != nil {
		return nil, fmt.Errorf("job repository: list active contracts %w", err)
	}
	return contracts, nil
}

// ListActiveJobsForFreelancer возвращает задания, по которым отклик фрилансера принят
// и работа ещё не завершена.
func (r *JobRepository) ListActiveJobsForFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.ActiveJob, error) {
	jobs := []models.ActiveJob{}
	query := `
		SELECT j.id AS job_id, j.title, j.client_id, j.status, j.deadline, b.id AS bid_id, b.amount AS bid_amount
		FROM bids b
		JOIN jobs j ON j.id = b.job_id
		WHERE b.freelancer_id = $1 AND b.status = 'accepted' AND j.status = 'in_progress'
		ORDER BY j.deadline
	`
	if err := r.db.SelectContext(ctx, &jobs, query, freelancerID); err != nil {
		return nil, fmt.Errorf("job repository: list active jobs %w", err)
	}
	return jobs, nil
}

// CountHiredFreelancers считает уникальных фрилансеров, нанятых клиентом.
func (r *JobRepository) CountHiredFreelancers(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(DISTINCT b.freelancer_id)
		FROM jobs j
		JOIN bids b ON b.id = j.accepted_bid_id
		WHERE j.client_id = $1 AND j.status IN ('in_progress', 'completed')
	`
	if err := r.db.GetContext(ctx, &count, query, clientID); err != nil {
		return 0, fmt.Errorf("job repository: count hired %w", err)
	}
	return count, nil
}

// CountOpenJobs возвращает число открытых заданий для публичной статистики.
func (r *JobRepository) CountOpenJobs(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM jobs WHERE status = 'open'`); err != nil {
		return 0, fmt.Errorf("job repository: count open %w", err)
	}
	return count, nil
}

// ListRecentOpen возвращает последние открытые задания для главной страницы.
func (r *JobRepository) ListRecentOpen(ctx context.Context, limit int) ([]models.Job, error) {
	jobs := []models.Job{}
	query := `SELECT * FROM jobs WHERE status = 'open' ORDER BY created_at DESC LIMIT $1`
	if err := r.db.SelectContext(ctx, &jobs, query, limit); err != nil {
		return nil, fmt.Errorf("job repository: list recent open %w", err)
	}
	return jobs, nil
}
