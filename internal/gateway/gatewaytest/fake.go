// Package gatewaytest provides an in-memory stand-in for the remote API client.
package gatewaytest

import (
	"context"
	"sync"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/gateway"
)

// AppendedExercise records one AppendExercise call.
type AppendedExercise struct {
	ProgramID int
	Exercise  domain.Exercise
}

// Fake answers gateway calls from its fields and records every write.
// Set ReadErr or WriteErr to make the corresponding calls fail.
type Fake struct {
	mu sync.Mutex

	LoginToken string
	LoginErr   error

	Users    []domain.User
	Clients  []domain.User
	Programs []domain.WorkoutProgram
	ReadErr  error
	WriteErr error

	CreatedUsers    []gateway.CreateUserRequest
	CreatedWorkouts []gateway.CreateWorkoutRequest
	Appended        []AppendedExercise
	// Tokens holds the bearer token of every authenticated call, in order.
	Tokens []string
}

// Reject builds the error the real client returns for a non-success status.
func Reject(op string, status int, body string) error {
	return &gateway.StatusError{Op: op, StatusCode: status, Body: body}
}

func (f *Fake) Login(_ context.Context, _, _ string) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	return f.LoginToken, nil
}

func (f *Fake) ListUsers(_ context.Context, token string, accountType domain.Role) ([]domain.User, error) {
	f.seen(token)
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	var out []domain.User
	for _, u := range f.Users {
		if accountType == "" || u.AccountType == accountType {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *Fake) ListClients(_ context.Context, token string) ([]domain.User, error) {
	f.seen(token)
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	return f.Clients, nil
}

func (f *Fake) CreateUser(_ context.Context, token string, req gateway.CreateUserRequest) error {
	f.seen(token)
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatedUsers = append(f.CreatedUsers, req)
	return nil
}

func (f *Fake) ListWorkoutPrograms(_ context.Context, token string) ([]domain.WorkoutProgram, error) {
	f.seen(token)
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	return f.Programs, nil
}

func (f *Fake) GetWorkoutProgram(_ context.Context, token string, id int) (*domain.WorkoutProgram, error) {
	f.seen(token)
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	for i := range f.Programs {
		if f.Programs[i].WorkoutProgramID == id {
			p := f.Programs[i]
			return &p, nil
		}
	}
	return nil, Reject("get workout program", 404, "not found")
}

func (f *Fake) CreateWorkoutProgram(_ context.Context, token string, req gateway.CreateWorkoutRequest) error {
	f.seen(token)
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreatedWorkouts = append(f.CreatedWorkouts, req)
	return nil
}

func (f *Fake) AppendExercise(_ context.Context, token string, programID int, ex domain.Exercise) error {
	f.seen(token)
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Appended = append(f.Appended, AppendedExercise{ProgramID: programID, Exercise: ex})
	return nil
}

// Writes is the number of write calls that reached the fake successfully.
func (f *Fake) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.CreatedUsers) + len(f.CreatedWorkouts) + len(f.Appended)
}

func (f *Fake) seen(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Tokens = append(f.Tokens, token)
}
