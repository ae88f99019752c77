package models

import (
	"time"

	"github.com/google/uuid"
)

// ClientDashboard агрегирует показатели кабинета заказчика.
// Считается заново на каждый запрос, состояние не мутирует.
type ClientDashboard struct {
	JobsByStatus     map[string]int     `json:"jobs_by_status"`
	TotalSpent       float64            `json:"total_spent"`
	HiredFreelancers int                `json:"hired_freelancers"`
	RecentJobs       []Job              `json:"recent_jobs"`
	ActiveContracts  []ActiveContract   `json:"active_contracts"`
	RecentPayments   []Payment          `json:"recent_payments"`
	ReviewsGiven     []Review           `json:"reviews_given"`
}

// FreelancerDashboard агрегирует показатели кабинета фрилансера.
type FreelancerDashboard struct {
	BidsByStatus      map[string]int `json:"bids_by_status"`
	TotalEarnings     float64        `json:"total_earnings"`
	AvgRating         float64        `json:"avg_rating"`
	TotalReviews      int            `json:"total_reviews"`
	ActiveJobs        []ActiveJob    `json:"active_jobs"`
	RecentBids        []Bid          `json:"recent_bids"`
	RecentPayments    []Payment      `json:"recent_payments"`
	ReviewsReceived   []Review       `json:"reviews_received"`
	ProfileCompletion int            `json:"profile_completion"`
	MissingItems      []string       `json:"missing_items,omitempty"`
}

// ActiveContract описывает действующий договор заказчика с фрилансером.
type ActiveContract struct {
	JobID        uuid.UUID `db:"job_id" json:"job_id"`
	JobTitle     string    `db:"job_title" json:"job_title"`
	FreelancerID uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Deadline     time.Time `db:"deadline" json:"deadline"`
	WorkStatus   *string   `db:"work_status" json:"work_status,omitempty"`
	Amount       float64   `db:"amount" json:"amount"`
}

// ActiveJob описывает задание, над которым фрилансер работает сейчас.
type ActiveJob struct {
	JobID     uuid.UUID `db:"job_id" json:"job_id"`
	Title     string    `db:"title" json:"title"`
	ClientID  uuid.UUID `db:"client_id" json:"client_id"`
	Status    string    `db:"status" json:"status"`
	Deadline  time.Time `db:"deadline" json:"deadline"`
	BidID     uuid.UUID `db:"bid_id" json:"bid_id"`
	BidAmount float64   `db:"bid_amount" json:"bid_amount"`
}

// LandingStats показатели публичной главной страницы.
type LandingStats struct {
	OpenJobs    int   `json:"open_jobs"`
	Users       int   `json:"users"`
	Freelancers int   `json:"freelancers"`
	RecentJobs  []Job `json:"recent_jobs"`
}
