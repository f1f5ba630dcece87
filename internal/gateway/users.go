package gateway

import (
	"context"
	"net/http"

	"alcyxob/fitness-dashboard/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWT string `json:"jwt"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, call{
		op:     "login",
		method: http.MethodPost,
		path:   "/Users/login",
		body:   loginRequest{Email: email, Password: password},
		expect: expectOK,
		out:    &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.JWT, nil
}

// ListUsers returns every user visible to the token, optionally narrowed to one account type.
// The remote API has no filter parameter, so narrowing happens here.
func (c *Client) ListUsers(ctx context.Context, token string, accountType domain.Role) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, call{
		op:     "list users",
		method: http.MethodGet,
		path:   "/Users",
		token:  token,
		expect: expectOK,
		out:    &users,
	})
	if err != nil {
		return nil, err
	}
	if accountType == "" {
		return users, nil
	}
	filtered := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.AccountType == accountType {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// ListClients returns the clients of the trainer the token belongs to.
func (c *Client) ListClients(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	err := c.do(ctx, call{
		op:     "list clients",
		method: http.MethodGet,
		path:   "/Users/Clients",
		token:  token,
		expect: expectOK,
		out:    &users,
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUserRequest is the body of POST /Users.
type CreateUserRequest struct {
	FirstName         string      `json:"firstName"`
	LastName          string      `json:"lastName"`
	Email             string      `json:"email"`
	Password          string      `json:"password"`
	AccountType       domain.Role `json:"accountType"`
	PersonalTrainerID *int        `json:"personalTrainerId,omitempty"`
}

// CreateUser asks the remote API to create an account.
func (c *Client) CreateUser(ctx context.Context, token string, req CreateUserRequest) error {
	return c.do(ctx, call{
		op:     "create user",
		method: http.MethodPost,
		path:   "/Users",
		token:  token,
		body:   req,
		expect: expectCreated,
	})
}
