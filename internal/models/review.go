package models

import (
	"time"

	"github.com/google/uuid"
)

// Review описывает отзыв заказчика о фрилансере после завершения задания.
// На одно задание допускается не более одного отзыва.
type Review struct {
	ID           uuid.UUID `db:"id" json:"id"`
	JobID        uuid.UUID `db:"job_id" json:"job_id"`
	ClientID     uuid.UUID `db:"client_id" json:"client_id"`
	FreelancerID uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Rating       int       `db:"rating" json:"rating"`
	Comment      *string   `db:"comment" json:"comment,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
