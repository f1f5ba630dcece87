// Package session turns the opaque bearer token issued by the remote API into
// the claims the dashboard renders and authorizes with.
//
// The token's signature is not checked here. The remote API validates it on
// every call; the dashboard only reads the payload of a token that arrived in an
// HTTP-only cookie.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"alcyxob/fitness-dashboard/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

// Cookie names shared with the browser.
const (
	TokenCookie = "token" // HTTP-only bearer credential
	RoleCookie  = "role"  // readable mirror of the role for client-side UI only
)

// ErrDecode is returned for any token that cannot be read as session claims.
// Callers treat it exactly like a missing session.
var ErrDecode = errors.New("malformed session token")

// Claim keys, in lookup order.
var (
	roleKeys = []string{"Role", "role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"}
	idKeys   = []string{"UserId", "userId", "sub"}
	nameKeys = []string{"FullName", "name"}
)

var parser = jwt.NewParser(jwt.WithJSONNumber())

// Decode reads the claims from token. It performs no I/O and does not look at
// the clock, so decoding the same token always gives the same result.
func Decode(token string) (domain.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Claims{}, fmt.Errorf("%w: empty token", ErrDecode)
	}

	raw := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, raw); err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	roleStr, _ := lookupString(raw, roleKeys)
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return domain.Claims{}, fmt.Errorf("%w: unknown role %q", ErrDecode, roleStr)
	}

	userID, err := lookupInt(raw, idKeys)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	name, _ := lookupString(raw, nameKeys)
	if name == "" {
		name = role.Label()
	}

	return domain.Claims{Role: role, UserID: userID, DisplayName: name}, nil
}

func lookupString(raw jwt.MapClaims, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// lookupInt accepts both JSON numbers and numeric strings; issuers built on
// .NET serialize every claim as a string.
func lookupInt(raw jwt.MapClaims, keys []string) (int, error) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case json.Number:
			n, err := t.Int64()
			if err != nil {
				return 0, fmt.Errorf("claim %s is not an integer: %s", k, t)
			}
			return int(n), nil
		case string:
			n, err := strconv.Atoi(t)
			if err != nil {
				return 0, fmt.Errorf("claim %s is not an integer: %q", k, t)
			}
			return n, nil
		default:
			return 0, fmt.Errorf("claim %s has unsupported type %T", k, v)
		}
	}
	return 0, errors.New("user id claim missing")
}
