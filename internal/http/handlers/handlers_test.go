package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/freelance-market/internal/http/middleware"
	"github.com/ignatzorin/freelance-market/internal/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	return r
}

func withAuth(r *gin.Engine, userID uuid.UUID, role string) {
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextActorKey, service.Actor{ID: userID, Role: role})
		c.Next()
	})
}

func TestJobHandler_CreateJob_Unauthorized(t *testing.T) {
	r := newTestRouter()
	handler := &JobHandler{jobs: nil}
	r.POST("/jobs", handler.CreateJob)

	req, _ := http.NewRequest("POST", "/jobs", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJobHandler_CreateJob_BadBody(t *testing.T) {
	r := newTestRouter()
	withAuth(r, uuid.New(), "client")
	handler := &JobHandler{jobs: nil}
	r.POST("/jobs", handler.CreateJob)

	req, _ := http.NewRequest("POST", "/jobs", strings.NewReader(`{"title":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_CreateJob_BadDeadline(t *testing.T) {
	r := newTestRouter()
	withAuth(r, uuid.New(), "client")
	handler := &JobHandler{jobs: nil}
	r.POST("/jobs", handler.CreateJob)

	body := `{"title":"Сайт","description":"подробное описание","budget":1000,"category":"web","deadline":"завтра"}`
	req, _ := http.NewRequest("POST", "/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "RFC3339")
}

func TestBidHandler_PlaceBid_InvalidJobID(t *testing.T) {
	r := newTestRouter()
	withAuth(r, uuid.New(), "freelancer")
	handler := &BidHandler{bids: nil}
	r.POST("/jobs/:id/bids", handler.PlaceBid)

	req, _ := http.NewRequest("POST", "/jobs/not-a-uuid/bids", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_PayNow_Unauthorized(t *testing.T) {
	r := newTestRouter()
	handler := &PaymentHandler{payments: nil}
	r.POST("/payments/:id/pay", handler.PayNow)

	req, _ := http.NewRequest("POST", "/payments/"+uuid.New().String()+"/pay", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWorkHandler_SubmitWork_MissingFile(t *testing.T) {
	r := newTestRouter()
	withAuth(r, uuid.New(), "freelancer")
	handler := &WorkHandler{work: nil, files: nil}
	r.POST("/jobs/:id/work", handler.SubmitWork)

	req, _ := http.NewRequest("POST", "/jobs/"+uuid.New().String()+"/work", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobHandler_ListCategories(t *testing.T) {
	r := newTestRouter()
	handler := &JobHandler{jobs: nil}
	r.GET("/jobs/categories", handler.ListCategories)

	req, _ := http.NewRequest("GET", "/jobs/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "web")
	assert.Contains(t, w.Body.String(), "other")
}

func TestReviewHandler_CreateReview_InvalidJobID(t *testing.T) {
	r := newTestRouter()
	withAuth(r, uuid.New(), "client")
	handler := &ReviewHandler{reviews: nil}
	r.POST("/jobs/:id/reviews", handler.CreateReview)

	req, _ := http.NewRequest("POST", "/jobs/bad-id/reviews", strings.NewReader(`{"rating":5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
