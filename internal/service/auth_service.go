package service

import (
	"context"
	"errors"
	"strings"

	"alcyxob/fitness-dashboard/internal/domain"
	"alcyxob/fitness-dashboard/internal/logging"
	"alcyxob/fitness-dashboard/internal/session"
)

// --- Error Definitions ---
var (
	// ErrLoginFailed covers every reason a sign-in did not produce a usable session.
	ErrLoginFailed = errors.New("invalid email or password")
)

// LoginFailedMessage is shown on the login page for any ErrLoginFailed.
const LoginFailedMessage = "Invalid email or password."

// LoginResult is a successful sign-in: the token to store in the cookie, the
// claims read from it and the role's home page.
type LoginResult struct {
	Token    string
	Claims   domain.Claims
	Redirect string
}

// AuthService signs users in against the remote API.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	gateway Gateway
}

// NewAuthService creates an AuthService backed by gw.
func NewAuthService(gw Gateway) AuthService {
	return &authService{gateway: gw}
}

// Login exchanges credentials for a token via the remote API. A token whose
// claims cannot be read is as useless as a rejected password.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrLoginFailed
	}

	token, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		logging.FromContext(ctx).Info("login rejected", "email", email, "error", err)
		return nil, ErrLoginFailed
	}

	claims, err := session.Decode(token)
	if err != nil {
		logging.FromContext(ctx).Warn("login returned unreadable token", "email", email, "error", err)
		return nil, ErrLoginFailed
	}

	return &LoginResult{Token: token, Claims: claims, Redirect: claims.HomePath()}, nil
}
