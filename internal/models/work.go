package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkSubmission описывает сданную фрилансером работу.
// Отклонённые сдачи не удаляются: повторная сдача создаёт новую запись.
type WorkSubmission struct {
	ID          uuid.UUID `db:"id" json:"id"`
	JobID       uuid.UUID `db:"job_id" json:"job_id"`
	FilePath    string    `db:"file_path" json:"file_path"`
	Description *string   `db:"description" json:"description,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Payment хранит запись о расчёте по заданию. Платёж имитируется:
// pending -> paid -> released, без пропуска состояний.
type Payment struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	JobID        uuid.UUID  `db:"job_id" json:"job_id"`
	ClientID     uuid.UUID  `db:"client_id" json:"client_id"`
	FreelancerID uuid.UUID  `db:"freelancer_id" json:"freelancer_id"`
	Amount       float64    `db:"amount" json:"amount"`
	Status       string     `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	PaidAt       *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	ReleasedAt   *time.Time `db:"released_at" json:"released_at,omitempty"`
}
