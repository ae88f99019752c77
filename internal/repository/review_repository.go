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
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists for this job")
)

// ReviewRepository отвечает за отзывы и пересчёт рейтинга.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository создаёт новый экземпляр.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create атомарно сохраняет отзыв и пересчитывает рейтинг фрилансера.
// Средняя оценка считается заново по всем отзывам, а не инкрементально,
// чтобы не накапливать ошибку округления.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO reviews (job_id, client_id, freelancer_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`
		if err := tx.QueryRowxContext(
			ctx, query,
			review.JobID, review.ClientID, review.FreelancerID, review.Rating, review.Comment,
		).Scan(&review.ID, &review.CreatedAt); err != nil {
			if common.IsUniqueViolation(err) {
				return ErrReviewExists
			}
			return fmt.Errorf("review repository: create %w", err)
		}

		recalc := `
			INSERT INTO freelancer_profiles (user_id, avg_rating, total_reviews)
			SELECT $1, AVG(rating), COUNT(*)
			FROM reviews WHERE freelancer_id = $1
			ON CONFLICT (user_id) DO UPDATE
			SET avg_rating = EXCLUDED.avg_rating,
				total_reviews = EXCLUDED.total_reviews,
				updated_at = NOW()
		`
		if _, err := tx.ExecContext(ctx, recalc, review.FreelancerID); err != nil {
			return fmt.Errorf("review repository: recalc rating %w", err)
		}

		return nil
	})
}

// GetByJobID возвращает отзыв по заданию, nil если отзыва ещё нет.
func (r *ReviewRepository) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.GetContext(ctx, &review, `SELECT * FROM reviews WHERE job_id = $1`, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("review repository: get by job %w", err)
	}
	return &review, nil
}

// ListByFreelancer возвращает отзывы о фрилансере, новые первыми.
func (r *ReviewRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Review, error) {
	reviews := []models.Review{}
	query := `SELECT * FROM reviews WHERE freelancer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &reviews, query, freelancerID, limit, offset); err != nil {
		return nil, fmt.Errorf("review repository: list by freelancer %w", err)
	}
	return reviews, nil
}

// ListByClient возвращает отзывы, оставленные клиентом.
func (r *ReviewRepository) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]models.Review, error) {
	reviews := []models.Review{}
	query := `SELECT * FROM reviews WHERE client_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &reviews, query, clientID, limit, offset); err != nil {
		return nil, fmt.Errorf("review repository: list by client %w", err)
	}
	return reviews, nil
}
