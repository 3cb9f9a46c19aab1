package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/anahihull/sd-api-ordenes/entities"

	"github.com/samber/lo"
)

type IStudentRepository interface {
	List(ctx context.Context) ([]entities.Student, error)
	Get(ctx context.Context, studentID int) (entities.Student, error)
	Create(ctx context.Context, student entities.NewStudent) (entities.Student, error)
	Delete(ctx context.Context, studentID int) (entities.Student, error)
}

// StudentRepository keeps students in memory. Ids come from a counter that
// starts at 1 and never goes back, deletions included.
type StudentRepository struct {
	mu       sync.RWMutex
	students []entities.Student
	nextID   int
}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		nextID: 1,
	}
}

func (r *StudentRepository) List(ctx context.Context) ([]entities.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	students := make([]entities.Student, len(r.students))
	copy(students, r.students)

	return students, nil
}

func (r *StudentRepository) Get(ctx context.Context, studentID int) (entities.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	student, _, ok := r.find(studentID)
	if !ok {
		return entities.Student{}, fmt.Errorf("could not get student %d: %w", studentID, ErrStudentNotFound)
	}

	return student, nil
}

func (r *StudentRepository) Create(ctx context.Context, newStudent entities.NewStudent) (entities.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student := entities.Student{
		ID:        r.nextID,
		Name:      newStudent.Name,
		BirthDate: newStudent.BirthDate,
		CourseID:  newStudent.CourseID,
	}
	r.nextID++
	r.students = append(r.students, student)

	return student, nil
}

func (r *StudentRepository) Delete(ctx context.Context, studentID int) (entities.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, idx, ok := r.find(studentID)
	if !ok {
		return entities.Student{}, fmt.Errorf("could not delete student %d: %w", studentID, ErrStudentNotFound)
	}
	r.students = append(r.students[:idx], r.students[idx+1:]...)

	return student, nil
}

// find must be called with mu held.
func (r *StudentRepository) find(studentID int) (entities.Student, int, bool) {
	return lo.FindIndexOf(r.students, func(s entities.Student) bool {
		return s.ID == studentID
	})
}
