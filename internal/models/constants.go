package models

// Роли пользователей
const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

// JobStatus константы статусов заданий
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// BidStatus константы статусов откликов
const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

// WorkStatus константы статусов сданной работы
const (
	WorkStatusSubmitted = "submitted"
	WorkStatusApproved  = "approved"
	WorkStatusRejected  = "rejected"
)

// PaymentStatus константы статусов платежей
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusReleased = "released"
)

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleClient:     {},
	RoleFreelancer: {},
}

// ValidJobStatuses список валидных статусов заданий
var ValidJobStatuses = map[string]struct{}{
	JobStatusOpen:       {},
	JobStatusInProgress: {},
	JobStatusCompleted:  {},
	JobStatusCancelled:  {},
}

// ValidBidStatuses список валидных статусов откликов
var ValidBidStatuses = map[string]struct{}{
	BidStatusPending:  {},
	BidStatusAccepted: {},
	BidStatusRejected: {},
}

// ValidJobCategories фиксированный набор категорий заданий
var ValidJobCategories = map[string]struct{}{
	"web":       {},
	"mobile":    {},
	"design":    {},
	"writing":   {},
	"marketing": {},
	"other":     {},
}

// JobCategories порядок категорий для выдачи в каталог
var JobCategories = []string{"web", "mobile", "design", "writing", "marketing", "other"}
