package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignatzorin/freelance-market/internal/logger"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/validation"
)

// ProfileRepository описывает зависимости ProfileService от слоя хранилища.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.FreelancerProfile, error)
	UpsertProfile(ctx context.Context, profile *models.FreelancerProfile) error
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, imagePath string) error
}

// ReviewRepoForProfiles отзывы для публичной страницы фрилансера.
type ReviewRepoForProfiles interface {
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Review, error)
}

// ProfileService профили фрилансеров. Профиль создаётся лениво:
// первая запись данных создаёт строку, до этого отдаётся пустой профиль.
type ProfileService struct {
	users   ProfileRepository
	reviews ReviewRepoForProfiles
}

// NewProfileService создаёт сервис профилей.
func NewProfileService(users ProfileRepository, reviews ReviewRepoForProfiles) *ProfileService {
	return &ProfileService{users: users, reviews: reviews}
}

// UpdateProfileInput данные профиля фрилансера.
type UpdateProfileInput struct {
	Bio           *string
	Skills        []string
	PortfolioLink *string
}

// UpdateProfile сохраняет профиль фрилансера, создавая его при первом вызове.
func (s *ProfileService) UpdateProfile(ctx context.Context, actor Actor, in UpdateProfileInput) (*models.FreelancerProfile, error) {
	if !actor.IsFreelancer() {
		return nil, apperror.Forbidden("профиль есть только у фрилансеров")
	}

	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}
	if err := validation.ValidateSkills(in.Skills); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if in.PortfolioLink != nil {
		if err := validation.ValidatePortfolioLink(*in.PortfolioLink); err != nil {
			return nil, apperror.Validation(err.Error())
		}
	}

	skills := make([]string, 0, len(in.Skills))
	for _, skill := range in.Skills {
		skills = append(skills, strings.TrimSpace(skill))
	}

	profile := &models.FreelancerProfile{
		UserID:        actor.ID,
		Bio:           in.Bio,
		Skills:        pq.StringArray(skills),
		PortfolioLink: in.PortfolioLink,
	}

	if err := s.users.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	logger.Log.WithField("user_id", actor.ID).Info("профиль обновлён")

	return profile, nil
}

// SetProfileImage сохраняет путь к загруженному аватару.
func (s *ProfileService) SetProfileImage(ctx context.Context, actor Actor, imagePath string) error {
	if !actor.IsFreelancer() {
		return apperror.Forbidden("профиль есть только у фрилансеров")
	}
	return s.users.UpdateProfileImage(ctx, actor.ID, imagePath)
}

// PublicProfile публичная страница фрилансера.
type PublicProfile struct {
	User    *models.User              `json:"user"`
	Profile *models.FreelancerProfile `json:"profile"`
	Reviews []models.Review           `json:"reviews"`
}

// GetPublicProfile возвращает публичный профиль фрилансера с отзывами.
// Если профиль ещё не заполнялся, отдаётся пустой с нулевым рейтингом.
func (s *ProfileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("пользователь не найден")
		}
		return nil, err
	}

	if !user.IsFreelancer() {
		return nil, apperror.NotFound("профиль фрилансера не найден")
	}

	profile, err := s.users.GetProfileByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrProfileNotFound) {
			return nil, err
		}
		profile = &models.FreelancerProfile{UserID: userID, Skills: pq.StringArray{}}
	}

	reviews, err := s.reviews.ListByFreelancer(ctx, userID, 20, 0)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{User: user, Profile: profile, Reviews: reviews}, nil
}
