package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/repository/common"
)

// Ошибки уровня репозитория.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already taken")
	ErrProfileNotFound = errors.New("freelancer profile not found")
)

// UserRepository отвечает за работу с таблицами users и freelancer_profiles.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		if common.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}

	return &user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", id, ErrUserNotFound)
}

// GetProfileByUserID возвращает профиль фрилансера.
func (r *UserRepository) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.FreelancerProfile, error) {
	var profile models.FreelancerProfile
	if err := r.db.GetContext(ctx, &profile, `SELECT * FROM freelancer_profiles WHERE user_id = $1`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("user repository: get profile %w", err)
	}

	return &profile, nil
}

// UpsertProfile создаёт профиль при первом редактировании или обновляет существующий.
func (r *UserRepository) UpsertProfile(ctx context.Context, profile *models.FreelancerProfile) error {
	query := `
		INSERT INTO freelancer_profiles (user_id, bio, skills, portfolio_link, profile_image)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			portfolio_link = EXCLUDED.portfolio_link,
			profile_image = COALESCE(EXCLUDED.profile_image, freelancer_profiles.profile_image),
			updated_at = NOW()
		RETURNING id, avg_rating, total_reviews, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		profile.UserID,
		profile.Bio,
		pq.Array(profile.Skills),
		profile.PortfolioLink,
		profile.ProfileImage,
	).Scan(&profile.ID, &profile.AvgRating, &profile.TotalReviews, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		return fmt.Errorf("user repository: upsert profile %w", err)
	}

	return nil
}

// UpdateProfileImage сохраняет ссылку на загруженное фото профиля.
func (r *UserRepository) UpdateProfileImage(ctx context.Context, userID uuid.UUID, imagePath string) error {
	query := `
		INSERT INTO freelancer_profiles (user_id, profile_image)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET profile_image = EXCLUDED.profile_image, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, userID, imagePath); err != nil {
		return fmt.Errorf("user repository: update profile image %w", err)
	}
	return nil
}

// CountUsers возвращает общее число пользователей и число фрилансеров.
func (r *UserRepository) CountUsers(ctx context.Context) (total int, freelancers int, err error) {
	var counts struct {
		Total       int `db:"total"`
		Freelancers int `db:"freelancers"`
	}
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE role = 'freelancer') AS freelancers
		FROM users
	`
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return 0, 0, fmt.Errorf("user repository: count users %w", err)
	}
	return counts.Total, counts.Freelancers, nil
}
