package dto

import "time"

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateJobRequest represents the request to post a job
type CreateJobRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Budget      float64 `json:"budget" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Deadline    string  `json:"deadline" binding:"required"`
}

// ParseDeadline parses the deadline as RFC3339
func (r *CreateJobRequest) ParseDeadline() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Deadline)
}

// PlaceBidRequest represents the request to bid on a job
type PlaceBidRequest struct {
	Amount       float64 `json:"amount" binding:"required"`
	Proposal     string  `json:"proposal" binding:"required"`
	DeliveryDays int     `json:"delivery_days" binding:"required"`
}

// CreateReviewRequest represents the request to review a completed job
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}

// UpdateProfileRequest represents the freelancer profile payload
type UpdateProfileRequest struct {
	Bio           *string  `json:"bio"`
	Skills        []string `json:"skills"`
	PortfolioLink *string  `json:"portfolio_link"`
}
