package gateway

import (
	"context"
	"fmt"
	"net/http"

	"alcyxob/fitness-dashboard/internal/domain"
)

// ListWorkoutPrograms returns the programs visible to the token: a trainer's
// own programs, or the programs assigned to a client.
func (c *Client) ListWorkoutPrograms(ctx context.Context, token string) ([]domain.WorkoutProgram, error) {
	var programs []domain.WorkoutProgram
	err := c.do(ctx, call{
		op:     "list workout programs",
		method: http.MethodGet,
		path:   "/WorkoutPrograms",
		token:  token,
		expect: expectOK,
		out:    &programs,
	})
	if err != nil {
		return nil, err
	}
	return programs, nil
}

// GetWorkoutProgram fetches one program by id.
func (c *Client) GetWorkoutProgram(ctx context.Context, token string, id int) (*domain.WorkoutProgram, error) {
	var program domain.WorkoutProgram
	err := c.do(ctx, call{
		op:     "get workout program",
		method: http.MethodGet,
		path:   fmt.Sprintf("/WorkoutPrograms/%d", id),
		token:  token,
		expect: expectOK,
		out:    &program,
	})
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// CreateWorkoutRequest is the body of POST /WorkoutPrograms.
type CreateWorkoutRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exercises   []domain.Exercise `json:"exercises"`
	ClientID    int               `json:"clientId"`
}

// CreateWorkoutProgram asks the remote API to create a program.
func (c *Client) CreateWorkoutProgram(ctx context.Context, token string, req CreateWorkoutRequest) error {
	return c.do(ctx, call{
		op:     "create workout program",
		method: http.MethodPost,
		path:   "/WorkoutPrograms",
		token:  token,
		body:   req,
		expect: expectCreated,
	})
}

// AppendExercise adds ex to the end of program programID.
func (c *Client) AppendExercise(ctx context.Context, token string, programID int, ex domain.Exercise) error {
	return c.do(ctx, call{
		op:     "append exercise",
		method: http.MethodPost,
		path:   fmt.Sprintf("/Exercises/Program/%d", programID),
		token:  token,
		body:   ex,
		expect: expectCreated,
	})
}
