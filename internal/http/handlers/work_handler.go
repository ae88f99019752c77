package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/service"
	"github.com/ignatzorin/freelance-market/internal/storage"
)

type WorkHandler struct {
	work  *service.WorkService
	files *storage.FileStorage
}

// NewWorkHandler создаёт хэндлер сдачи работы.
func NewWorkHandler(work *service.WorkService, files *storage.FileStorage) *WorkHandler {
	return &WorkHandler{work: work, files: files}
}

// SubmitWork обрабатывает POST /jobs/:id/work: multipart форма
// с файлом работы и необязательным описанием.
func (h *WorkHandler) SubmitWork(c *gin.Context) {
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, apperror.Validation("файл работы обязателен"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось открыть загруженный файл"))
		return
	}
	defer file.Close()

	path, _, err := h.files.Save(c.Request.Context(), storage.KindWorkFile, actor.ID, fileHeader.Filename, file)
	if err != nil {
		fail(c, storageError(err))
		return
	}

	var description *string
	if value := c.PostForm("description"); value != "" {
		description = &value
	}

	sub, err := h.work.SubmitWork(c.Request.Context(), actor, service.SubmitWorkInput{
		JobID:       jobID,
		FilePath:    path,
		Description: description,
	})
	if err != nil {
		// файл без записи о сдаче не нужен
		_ = h.files.Delete(c.Request.Context(), path)
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// GetJobWork обрабатывает GET /jobs/:id/work.
func (h *WorkHandler) GetJobWork(c *gin.Context) {
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

	work, err := h.work.GetJobWork(c.Request.Context(), actor, jobID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, work)
}

// ApproveWork обрабатывает POST /work/:id/approve.
func (h *WorkHandler) ApproveWork(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	submissionID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.work.ApproveWork(c.Request.Context(), actor, submissionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RejectWork обрабатывает POST /work/:id/reject.
func (h *WorkHandler) RejectWork(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	submissionID, err := parseUUIDParam(c, "id")
	if err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	sub, err := h.work.RejectWork(c.Request.Context(), actor, submissionID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// storageError транслирует ошибки хранилища в типизированные.
func storageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return apperror.Validation("размер файла превышает лимит")
	case errors.Is(err, storage.ErrUnsupportedType):
		return apperror.Validation("неподдерживаемый тип файла")
	}
	return err
}
