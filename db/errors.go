package db

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrStudentNotFound = errors.New("student not found")
)
