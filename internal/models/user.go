package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User описывает пользователя платформы: заказчика или фрилансера.
// Роль фиксируется при регистрации и не меняется.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsClient проверяет роль заказчика.
func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// IsFreelancer проверяет роль фрилансера.
func (u *User) IsFreelancer() bool {
	return u.Role == RoleFreelancer
}

// FreelancerProfile хранит публичный профиль фрилансера.
// AvgRating и TotalReviews — производные поля, пересчитываются при каждом отзыве.
type FreelancerProfile struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	UserID        uuid.UUID      `db:"user_id" json:"user_id"`
	Bio           *string        `db:"bio" json:"bio,omitempty"`
	Skills        pq.StringArray `db:"skills" json:"skills"`
	PortfolioLink *string        `db:"portfolio_link" json:"portfolio_link,omitempty"`
	ProfileImage  *string        `db:"profile_image" json:"profile_image,omitempty"`
	AvgRating     float64        `db:"avg_rating" json:"avg_rating"`
	TotalReviews  int            `db:"total_reviews" json:"total_reviews"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
