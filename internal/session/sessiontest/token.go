// Package sessiontest mints session tokens shaped like the remote API's for use in tests.
package sessiontest

import (
	"strconv"
	"testing"

	"alcyxob/fitness-dashboard/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

const signingKey = "sessiontest-key"

// Token returns a signed token carrying the given claims the way the remote API
// issues them (UserId as a string, FullName, Role).
func Token(t testing.TB, c domain.Claims) string {
	t.Helper()
	return Raw(t, jwt.MapClaims{
		"Role":     string(c.Role),
		"UserId":   strconv.Itoa(c.UserID),
		"FullName": c.DisplayName,
	})
}

// Raw signs an arbitrary claim set.
func Raw(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingKey))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
