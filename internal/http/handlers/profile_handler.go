package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/dto"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/repository"
	"github.com/ignatzorin/freelance-market/internal/service"
	"github.com/ignatzorin/freelance-market/internal/storage"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	users    *repository.UserRepository
	files    *storage.FileStorage
}

// NewProfileHandler создаёт хэндлер профилей.
func NewProfileHandler(profiles *service.ProfileService, users *repository.UserRepository, files *storage.FileStorage) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users, files: files}
}

// GetMe обрабатывает GET /profile.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fail(c, apperror.ErrUnauthorized)
			return
		}
		fail(c, err)
		return
	}

	resp := gin.H{"user": dto.NewUserResponse(user)}

	if user.IsFreelancer() {
		profile, err := h.users.GetProfileByUserID(c.Request.Context(), actor.ID)
		if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
			fail(c, err)
			return
		}
		if profile == nil {
			profile = &models.FreelancerProfile{UserID: actor.ID}
		}
		resp["profile"] = profile
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateProfile обрабатывает PUT /profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), actor, service.UpdateProfileInput{
		Bio:           req.Bio,
		Skills:        req.Skills,
		PortfolioLink: req.PortfolioLink,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadProfileImage обрабатывает POST /profile/image.
func (h *ProfileHandler) UploadProfileImage(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, apperror.Validation("файл изображения обязателен"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось открыть загруженный файл"))
		return
	}
	defer file.Close()

	path, _, err := h.files.Save(c.Request.Context(), storage.KindProfileImage, actor.ID, fileHeader.Filename, file)
	if err != nil {
		fail(c, storageError(err))
		return
	}

	if err := h.profiles.SetProfileImage(c.Request.Context(), actor, path); err != nil {
		_ = h.files.Delete(c.Request.Context(), path)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile_image": path})
}

// GetPublicProfile обрабатывает GET /users/:id.
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	public, err := h.profiles.GetPublicProfile(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    dto.NewUserResponse(public.User),
		"profile": public.Profile,
		"reviews": public.Reviews,
	})
}
