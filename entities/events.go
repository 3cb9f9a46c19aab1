package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

type OrderPlaced_v1 struct {
	Header EventHeader `json:"header"`

	OrderID     string `json:"order_id"`
	OwnerID     string `json:"owner_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderUpdated_v1 struct {
	Header EventHeader `json:"header"`

	OrderID     string `json:"order_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderDeleted_v1 struct {
	Header EventHeader `json:"header"`

	OrderID string `json:"order_id"`
}

type StudentCreated_v1 struct {
	Header EventHeader `json:"header"`

	StudentID int     `json:"student_id"`
	Name      string  `json:"name"`
	BirthDate float64 `json:"birth_date"`
	CourseID  int     `json:"course_id"`
}

type StudentDeleted_v1 struct {
	Header EventHeader `json:"header"`

	StudentID int `json:"student_id"`
}
