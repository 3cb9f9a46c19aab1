package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/anahihull/sd-api-ordenes/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

// Handle applies one queue message body. Unsupported messages are logged and
// swallowed; malformed ones are returned wrapped in ErrMalformedMessage.
func (h Handler) Handle(ctx context.Context, body []byte) error {
	cmd, err := ParseCreateStudent(body)
	if errors.Is(err, ErrUnsupportedMessage) {
		log.FromContext(ctx).WithError(err).Info("Ignoring message")
		return nil
	}
	if err != nil {
		return err
	}

	_, err = h.CreateStudent(ctx, cmd)
	return err
}

func (h Handler) CreateStudent(ctx context.Context, cmd entities.CreateStudent) (entities.Student, error) {
	student, err := h.studentRepo.Create(ctx, entities.NewStudent{
		Name:      cmd.Name,
		BirthDate: cmd.BirthDate,
		CourseID:  cmd.CourseID,
	})
	if err != nil {
		return entities.Student{}, fmt.Errorf("could not create student: %w", err)
	}

	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"student_id": student.ID,
		"course_id":  student.CourseID,
	})
	logger.Info("Student created from queue")

	err = h.eventBus.Publish(ctx, entities.StudentCreated_v1{
		Header:    entities.NewEventHeader(),
		StudentID: student.ID,
		Name:      student.Name,
		BirthDate: student.BirthDate,
		CourseID:  student.CourseID,
	})
	if err != nil {
		// the student is stored at this point, the message counts as processed
		logger.WithError(err).Error("Failed to publish StudentCreated_v1 event")
	}

	return student, nil
}
