package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/dto"
	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/service"
)

type BidHandler struct {
	bids *service.BidService
}

// NewBidHandler создаёт хэндлер откликов.
func NewBidHandler(bids *service.BidService) *BidHandler {
	return &BidHandler{bids: bids}
}

// PlaceBid обрабатывает POST /jobs/:id/bids.
func (h *BidHandler) PlaceBid(c *gin.Context) {
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

	var req dto.PlaceBidRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, apperror.Validation(err.Error()))
		return
	}

	bid, err := h.bids.PlaceBid(c.Request.Context(), actor, service.PlaceBidInput{
		JobID:        jobID,
		Amount:       req.Amount,
		Proposal:     req.Proposal,
		DeliveryDays: req.DeliveryDays,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// ListJobBids обрабатывает GET /jobs/:id/bids.
func (h *BidHandler) ListJobBids(c *gin.Context) {
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

	bids, err := h.bids.ListJobBids(c.Request.Context(), actor, jobID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

// ListMyBids обрабатывает GET /bids/my.
func (h *BidHandler) ListMyBids(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	limit, offset := pageParams(c)

	bids, err := h.bids.ListMyBids(c.Request.Context(), actor, c.Query("status"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bids": bids})
}

// RejectBid обрабатывает POST /bids/:id/reject.
func (h *BidHandler) RejectBid(c *gin.Context) {
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

	bid, err := h.bids.RejectBid(c.Request.Context(), actor, bidID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, bid)
}
