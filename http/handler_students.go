package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anahihull/sd-api-ordenes/db"
	"github.com/anahihull/sd-api-ordenes/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

const msgStudentNotFound = "Student not found"

type deleteStudentResponse struct {
	Deleted entities.Student `json:"deleted"`
}

func (h StudentsHandler) GetStudents(c echo.Context) error {
	students, err := h.studentRepo.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed getting students: %w", err)
	}

	return c.JSON(http.StatusOK, students)
}

func (h StudentsHandler) GetStudent(c echo.Context) error {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		// no student can have a non-numeric id
		return echo.NewHTTPError(http.StatusNotFound, msgStudentNotFound)
	}

	student, err := h.studentRepo.Get(c.Request().Context(), studentID)
	if errors.Is(err, db.ErrStudentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msgStudentNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed getting student: %w", err)
	}

	return c.JSON(http.StatusOK, student)
}

func (h StudentsHandler) DeleteStudent(c echo.Context) error {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, msgStudentNotFound)
	}

	ctx := c.Request().Context()

	student, err := h.studentRepo.Delete(ctx, studentID)
	if errors.Is(err, db.ErrStudentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msgStudentNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed deleting student: %w", err)
	}

	err = h.eventBus.Publish(ctx, entities.StudentDeleted_v1{
		Header:    entities.NewEventHeader(),
		StudentID: student.ID,
	})
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("Failed to publish StudentDeleted_v1 event")
	}

	return c.JSON(http.StatusOK, deleteStudentResponse{Deleted: student})
}
