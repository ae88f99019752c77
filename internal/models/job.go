package models

import (
	"time"

	"github.com/google/uuid"
)

// Job описывает задание, размещённое заказчиком.
type Job struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ClientID      uuid.UUID  `db:"client_id" json:"client_id"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	Budget        float64    `db:"budget" json:"budget"`
	Category      string     `db:"category" json:"category"`
	Deadline      time.Time  `db:"deadline" json:"deadline"`
	Status        string     `db:"status" json:"status"`
	AcceptedBidID *uuid.UUID `db:"accepted_bid_id" json:"accepted_bid_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
	BidsCount     *int       `db:"bids_count" json:"bids_count,omitempty"`
}

// Bid представляет отклик фрилансера на задание.
// Активным считается отклик в статусе pending или accepted.
type Bid struct {
	ID           uuid.UUID `db:"id" json:"id"`
	JobID        uuid.UUID `db:"job_id" json:"job_id"`
	FreelancerID uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Amount       float64   `db:"amount" json:"amount"`
	Proposal     string    `db:"proposal" json:"proposal"`
	DeliveryDays int       `db:"delivery_days" json:"delivery_days"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
