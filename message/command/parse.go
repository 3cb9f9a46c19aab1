package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/anahihull/sd-api-ordenes/entities"
)

const ActionCreate = "create"

var (
	// ErrMalformedMessage marks messages whose body is not JSON or whose
	// payload fields have the wrong types.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrUnsupportedMessage marks well formed messages that carry no command
	// this service handles.
	ErrUnsupportedMessage = errors.New("unsupported message")
)

type envelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ParseCreateStudent decodes a queue message body of the form
// {"action": "create", "payload": {"name": ..., "birthDate": ..., "courseId": ...}}.
func ParseCreateStudent(body []byte) (entities.CreateStudent, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return entities.CreateStudent{}, fmt.Errorf("%w: invalid JSON body: %v", ErrMalformedMessage, err)
	}

	if env.Action != ActionCreate {
		return entities.CreateStudent{}, fmt.Errorf("%w: action %q", ErrUnsupportedMessage, env.Action)
	}

	payload := bytes.TrimSpace(env.Payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return entities.CreateStudent{}, fmt.Errorf("%w: create without payload", ErrUnsupportedMessage)
	}

	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return entities.CreateStudent{}, fmt.Errorf("%w: payload is not an object", ErrMalformedMessage)
	}

	name, ok := fields["name"].(string)
	if !ok {
		return entities.CreateStudent{}, fmt.Errorf("%w: name must be a string", ErrMalformedMessage)
	}

	birthDate, ok := fields["birthDate"].(float64)
	if !ok {
		return entities.CreateStudent{}, fmt.Errorf("%w: birthDate must be a number", ErrMalformedMessage)
	}

	courseID, ok := fields["courseId"].(float64)
	if !ok {
		return entities.CreateStudent{}, fmt.Errorf("%w: courseId must be a number", ErrMalformedMessage)
	}
	if courseID != math.Trunc(courseID) || math.Abs(courseID) > math.MaxInt32 {
		return entities.CreateStudent{}, fmt.Errorf("%w: courseId must be an integer", ErrMalformedMessage)
	}

	return entities.CreateStudent{
		Name:      name,
		BirthDate: birthDate,
		CourseID:  int(courseID),
	}, nil
}
