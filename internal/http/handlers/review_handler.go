package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/dto"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler создаёт хэндлер отзывов.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// CreateReview обрабатывает POST /jobs/:id/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	var req dto.CreateReviewRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	review, err := h.reviews.SubmitReview(c.Request.Context(), actor, service.SubmitReviewInput{
		JobID:   jobID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetJobReview обрабатывает GET /jobs/:id/reviews.
func (h *ReviewHandler) GetJobReview(c *gin.Context) {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	review, err := h.reviews.GetJobReview(c.Request.Context(), jobID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// ListUserReviews обрабатывает GET /users/:id/reviews.
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	freelancerID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	limit, offset := pageParams(c)

	reviews, err := h.reviews.ListFreelancerReviews(c.Request.Context(), freelancerID, limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
