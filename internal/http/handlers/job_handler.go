package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/dto"
	"github.com/ignatzorin/freelance-market/internal/models"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/service"
)

type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler создаёт хэндлер заданий.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// CreateJob обрабатывает POST /jobs.
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	var req dto.CreateJobRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	deadline, err := req.ParseDeadline()
	if err != nil {
		fail(c, apperror.Validation("deadline должен быть в формате RFC3339"))
		return
	}

	job, err := h.jobs.PostJob(c.Request.Context(), actor, service.PostJobInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Category:    req.Category,
		Deadline:    deadline,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// ListJobs обрабатывает GET /jobs: каталог открытых заданий.
func (h *JobHandler) ListJobs(c *gin.Context) {
	limit, offset := pageParams(c)

	result, err := h.jobs.ListJobs(c.Request.Context(), c.Query("category"), c.Query("search"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobListResponse{
		Jobs:   result.Jobs,
		Total:  result.Total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetJob обрабатывает GET /jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	job, err := h.jobs.GetJob(c.Request.Context(), jobID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListMyJobs обрабатывает GET /jobs/my.
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	limit, offset := pageParams(c)

	result, err := h.jobs.ListMyJobs(c.Request.Context(), actor, c.Query("status"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.JobListResponse{
		Jobs:   result.Jobs,
		Total:  result.Total,
		Limit:  limit,
		Offset: offset,
	})
}

// CancelJob обрабатывает POST /jobs/:id/cancel.
func (h *JobHandler) CancelJob(c *gin.Context) {
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

	job, err := h.jobs.CancelJob(c.Request.Context(), actor, jobID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// AcceptBid обрабатывает POST /bids/:id/accept.
func (h *JobHandler) AcceptBid(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	bidID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.jobs.AcceptBid(c.Request.Context(), actor, bidID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListCategories обрабатывает GET /jobs/categories: фиксированный
// набор категорий для фильтров каталога.
func (h *JobHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.JobCategories})
}

// LandingStats обрабатывает GET /stats/landing.
func (h *JobHandler) LandingStats(c *gin.Context) {
	stats, err := h.jobs.LandingStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// pageParams разбирает limit/offset из query с дефолтами.
func pageParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
