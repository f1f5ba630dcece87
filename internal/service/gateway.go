package service

import (
	"context"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/gateway"
)

// Gateway is the remote API as the services and handlers use it.
// *gateway.Client implements it.
type Gateway interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListUsers(ctx context.Context, token string, accountType domain.Role) ([]domain.User, error)
	ListClients(ctx context.Context, token string) ([]domain.User, error)
	CreateUser(ctx context.Context, token string, req gateway.CreateUserRequest) error
	ListWorkoutPrograms(ctx context.Context, token string) ([]domain.WorkoutProgram, error)
	GetWorkoutProgram(ctx context.Context, token string, id int) (*domain.WorkoutProgram, error)
	CreateWorkoutProgram(ctx context.Context, token string, req gateway.CreateWorkoutRequest) error
	AppendExercise(ctx context.Context, token string, programID int, ex domain.Exercise) error
}

var _ Gateway = (*gateway.Client)(nil)

// Credentials identify the caller of a submission: the raw token for the
// Authorization header and the claims decoded from it.
type Credentials struct {
	Token  string
	Claims domain.Claims
}
