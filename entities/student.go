package entities

type Student struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	BirthDate float64 `json:"birthDate"`
	CourseID  int     `json:"courseId"`
}

type NewStudent struct {
	Name      string
	BirthDate float64
	CourseID  int
}

// CreateStudent is the command carried by queue messages with the "create"
// action.
type CreateStudent struct {
	Name      string  `json:"name"`
	BirthDate float64 `json:"birthDate"`
	CourseID  int     `json:"courseId"`
}
