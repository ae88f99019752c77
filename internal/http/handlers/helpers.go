package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-market/internal/http/middleware"
	"github.com/ignatzorin/freelance-market/internal/service"
)

var errActorNotFound = errors.New("пользователь не найден в контексте")

// currentActor извлекает аутентифицированного актора из контекста.
func currentActor(c *gin.Context) (service.Actor, error) {
	raw, exists := c.Get(middleware.ContextActorKey)
	if !exists {
		return service.Actor{}, errActorNotFound
	}
	actor, ok := raw.(service.Actor)
	if !ok || actor.ID == uuid.Nil {
		return service.Actor{}, errActorNotFound
	}
	return actor, nil
}

// parseUUIDParam разбирает UUID из параметра пути.
func parseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		return uuid.Nil, fmt.Errorf("параметр %s должен быть валидным UUID", paramName)
	}
	return parsed, nil
}

// fail передаёт ошибку централизованному обработчику.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// bindJSON биндит JSON тело запроса с понятной ошибкой.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}
