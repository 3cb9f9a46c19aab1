package command

import (
	"context"

	"github.com/anahihull/sd-api-ordenes/entities"
)

type StudentRepository interface {
	Create(ctx context.Context, student entities.NewStudent) (entities.Student, error)
}

type EventBus interface {
	Publish(ctx context.Context, event any) error
}

type Handler struct {
	studentRepo StudentRepository
	eventBus    EventBus
}

func NewHandler(studentRepo StudentRepository, eventBus EventBus) Handler {
	if studentRepo == nil {
		panic("studentRepo is required")
	}
	if eventBus == nil {
		panic("eventBus is required")
	}

	return Handler{
		studentRepo: studentRepo,
		eventBus:    eventBus,
	}
}
