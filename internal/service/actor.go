package service

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/models"
)

// Actor аутентифицированный инициатор действия: id и роль из токена.
// Сервисы сверяют права актора с владельцами сущностей.
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsClient проверяет роль заказчика.
func (a Actor) IsClient() bool {
	return a.Role == models.RoleClient
}

// IsFreelancer проверяет роль фрилансера.
func (a Actor) IsFreelancer() bool {
	return a.Role == models.RoleFreelancer
}
